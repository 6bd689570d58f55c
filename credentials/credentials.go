// Package credentials keeps the two session tokens the remote service
// issues: a short-lived access token held in a cookie-like store and a
// long-lived refresh token held in durable storage.
package credentials

import "time"

const (
	accessTokenKey  = "accessToken"
	refreshTokenKey = "refreshToken"

	// Browsers keep the access cookie for 20 minutes; the in-memory
	// cookie store mirrors that default.
	defaultAccessTTL = 20 * time.Minute
)

// CookieStore holds short-lived values with an optional lifetime.
type CookieStore interface {
	Get(name string) (string, bool)
	Set(name, value string, ttl time.Duration)
	Delete(name string)
}

// DurableStore holds values that survive process restarts.
type DurableStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// Keeper pairs the two stores and fixes the key names, so callers never
// touch raw keys.
type Keeper struct {
	cookies CookieStore
	durable DurableStore
}

// NewKeeper creates a keeper over the given stores.
func NewKeeper(cookies CookieStore, durable DurableStore) *Keeper {
	return &Keeper{cookies: cookies, durable: durable}
}

// NewMemoryKeeper creates a keeper backed entirely by memory. Suitable for
// tests and single-run sessions.
func NewMemoryKeeper() *Keeper {
	return NewKeeper(NewMemoryCookies(), NewMemoryDurable())
}

// AccessToken returns the stored short-lived token.
func (k *Keeper) AccessToken() (string, bool) {
	return k.cookies.Get(accessTokenKey)
}

// SetAccessToken stores the short-lived token with the default lifetime.
func (k *Keeper) SetAccessToken(token string) {
	k.cookies.Set(accessTokenKey, token, defaultAccessTTL)
}

// RefreshToken returns the stored long-lived token.
func (k *Keeper) RefreshToken() (string, bool) {
	return k.durable.Get(refreshTokenKey)
}

// SetRefreshToken stores the long-lived token.
func (k *Keeper) SetRefreshToken(token string) error {
	return k.durable.Set(refreshTokenKey, token)
}

// Clear removes both tokens. Called on logout.
func (k *Keeper) Clear() error {
	k.cookies.Delete(accessTokenKey)
	return k.durable.Delete(refreshTokenKey)
}
