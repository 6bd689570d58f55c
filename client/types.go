package client

import "time"

// Ingredient types as the catalog reports them.
const (
	TypeBun   = "bun"
	TypeMain  = "main"
	TypeSauce = "sauce"
)

// Ingredient is one orderable catalog component. Immutable once fetched.
type Ingredient struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	Proteins      int    `json:"proteins"`
	Fat           int    `json:"fat"`
	Carbohydrates int    `json:"carbohydrates"`
	Calories      int    `json:"calories"`
	Price         int    `json:"price"`
	Image         string `json:"image"`
	ImageMobile   string `json:"image_mobile"`
	ImageLarge    string `json:"image_large"`
}

// Order statuses as the service reports them.
const (
	StatusCreated = "created"
	StatusPending = "pending"
	StatusDone    = "done"
)

// Order is a placed order. Immutable once received; Ingredients keeps the
// submission order, including the bun id at both ends.
type Order struct {
	ID          string    `json:"_id"`
	Status      string    `json:"status"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Number      int       `json:"number"`
	Ingredients []string  `json:"ingredients"`
}

// FeedData is one atomic snapshot of the public order feed.
type FeedData struct {
	Orders     []Order `json:"orders"`
	Total      int     `json:"total"`
	TotalToday int     `json:"totalToday"`
}

// User is the authenticated identity.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// RegisterData is the registration request payload.
type RegisterData struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginData is the login request payload.
type LoginData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserData is a partial profile update; empty fields are omitted.
type UpdateUserData struct {
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password,omitempty"`
}

// AuthResult carries the identity and the freshly minted credential pair
// returned by register and login. Persisting the tokens is the session
// store's job.
type AuthResult struct {
	User         User
	AccessToken  string
	RefreshToken string
}

// Wire response shapes. Every body carries a success flag.

type ingredientsResponse struct {
	Success bool         `json:"success"`
	Data    []Ingredient `json:"data"`
}

type feedResponse struct {
	Success    bool    `json:"success"`
	Orders     []Order `json:"orders"`
	Total      int     `json:"total"`
	TotalToday int     `json:"totalToday"`
}

type ordersResponse struct {
	Success bool    `json:"success"`
	Orders  []Order `json:"orders"`
}

type newOrderResponse struct {
	Success bool   `json:"success"`
	Order   Order  `json:"order"`
	Name    string `json:"name"`
}

type authResponse struct {
	Success      bool   `json:"success"`
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	Success      bool   `json:"success"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type userResponse struct {
	Success bool `json:"success"`
	User    User `json:"user"`
}
