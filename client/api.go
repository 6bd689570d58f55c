package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Ingredients fetches the full catalog.
func (c *Client) Ingredients(ctx context.Context) ([]Ingredient, error) {
	body, err := c.do(ctx, http.MethodGet, "/ingredients", nil, false)
	if err != nil {
		return nil, err
	}
	var resp ingredientsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("client: decode ingredients: %w", err)
	}
	return resp.Data, nil
}

// Feed fetches one snapshot of the public order feed.
func (c *Client) Feed(ctx context.Context) (FeedData, error) {
	body, err := c.do(ctx, http.MethodGet, "/orders/all", nil, false)
	if err != nil {
		return FeedData{}, err
	}
	var resp feedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return FeedData{}, fmt.Errorf("client: decode feed: %w", err)
	}
	return FeedData{Orders: resp.Orders, Total: resp.Total, TotalToday: resp.TotalToday}, nil
}

// UserOrders fetches the authenticated user's order history.
func (c *Client) UserOrders(ctx context.Context) ([]Order, error) {
	body, err := c.authed(ctx, http.MethodGet, "/orders", nil)
	if err != nil {
		return nil, err
	}
	var resp ordersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("client: decode orders: %w", err)
	}
	return resp.Orders, nil
}

// CreateOrder submits an order. ids must be the exact wire sequence,
// bun id first and last.
func (c *Client) CreateOrder(ctx context.Context, ids []string) (Order, error) {
	body, err := c.authed(ctx, http.MethodPost, "/orders", map[string][]string{"ingredients": ids})
	if err != nil {
		return Order{}, err
	}
	var resp newOrderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Order{}, fmt.Errorf("client: decode new order: %w", err)
	}
	return resp.Order, nil
}

// OrderByNumber looks up a single order by its sequence number.
func (c *Client) OrderByNumber(ctx context.Context, number int) (Order, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", number), nil, false)
	if err != nil {
		return Order{}, err
	}
	var resp ordersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Order{}, fmt.Errorf("client: decode order: %w", err)
	}
	if len(resp.Orders) == 0 {
		return Order{}, &Error{
			Kind:    KindServer,
			Message: fmt.Sprintf("order %d not found", number),
			URL:     fmt.Sprintf("%s/orders/%d", c.baseURL, number),
		}
	}
	return resp.Orders[0], nil
}

// Register creates an account and returns the identity with its credential
// pair. The caller persists the tokens.
func (c *Client) Register(ctx context.Context, data RegisterData) (AuthResult, error) {
	return c.auth(ctx, "/auth/register", data)
}

// Login signs in and returns the identity with its credential pair. The
// caller persists the tokens.
func (c *Client) Login(ctx context.Context, data LoginData) (AuthResult, error) {
	return c.auth(ctx, "/auth/login", data)
}

func (c *Client) auth(ctx context.Context, path string, payload any) (AuthResult, error) {
	body, err := c.do(ctx, http.MethodPost, path, payload, false)
	if err != nil {
		return AuthResult{}, err
	}
	var resp authResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return AuthResult{}, fmt.Errorf("client: decode auth response: %w", err)
	}
	return AuthResult{
		User:         resp.User,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}

// User fetches the authenticated identity.
func (c *Client) User(ctx context.Context) (User, error) {
	body, err := c.authed(ctx, http.MethodGet, "/auth/user", nil)
	if err != nil {
		return User{}, err
	}
	var resp userResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return User{}, fmt.Errorf("client: decode user: %w", err)
	}
	return resp.User, nil
}

// UpdateUser patches the authenticated identity with the set fields.
func (c *Client) UpdateUser(ctx context.Context, data UpdateUserData) (User, error) {
	body, err := c.authed(ctx, http.MethodPatch, "/auth/user", data)
	if err != nil {
		return User{}, err
	}
	var resp userResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return User{}, fmt.Errorf("client: decode user: %w", err)
	}
	return resp.User, nil
}

// Logout invalidates the stored refresh token on the server. Clearing the
// local credential pair is the caller's job.
func (c *Client) Logout(ctx context.Context) error {
	refresh, _ := c.creds.RefreshToken()
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", map[string]string{"token": refresh}, false)
	return err
}

// ForgotPassword starts the password-reset flow for the given email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	_, err := c.do(ctx, http.MethodPost, "/password-reset", map[string]string{"email": email}, false)
	return err
}

// ResetPassword completes the password-reset flow with the emailed token.
func (c *Client) ResetPassword(ctx context.Context, password, token string) error {
	_, err := c.do(ctx, http.MethodPost, "/password-reset/reset", map[string]string{
		"password": password,
		"token":    token,
	}, false)
	return err
}
