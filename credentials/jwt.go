package credentials

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reports when the access token expires, reading the exp claim
// without verifying the signature. Verification is the server's job; the
// client only needs the timestamp to schedule a silent refresh.
func TokenExpiry(token string) (time.Time, error) {
	// Stored tokens carry the header scheme verbatim.
	token = strings.TrimPrefix(token, "Bearer ")
	if token == "" {
		return time.Time{}, errors.New("credentials: empty token")
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, err
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, errors.New("credentials: token has no exp claim")
	}
	return exp.Time, nil
}
