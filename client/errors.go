package client

import (
	"errors"
	"fmt"
)

// Kind classifies a gateway failure.
type Kind int

const (
	// KindNetwork is a transport-level failure: DNS, connect, timeout.
	KindNetwork Kind = iota + 1
	// KindNonJSON means the service answered with something other than
	// JSON, typically an HTML error page from a proxy.
	KindNonJSON
	// KindServer is a non-success status or a success:false body.
	KindServer
	// KindSessionExpired is the service rejecting a stale access token.
	// It is the only kind the client retries, once, after a refresh.
	KindSessionExpired
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindNonJSON:
		return "non-json"
	case KindServer:
		return "server"
	case KindSessionExpired:
		return "session-expired"
	default:
		return "unknown"
	}
}

// Error is a classified gateway failure. Stores surface Message to users;
// the remaining fields exist for logs and debugging.
type Error struct {
	Kind        Kind
	Status      int
	Message     string
	URL         string
	ContentType string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s error (status %d)", e.Kind, e.Status)
}

// ErrorMessage extracts the user-facing message from a gateway error,
// falling back when the failure carries none.
func ErrorMessage(err error, fallback string) string {
	var ce *Error
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}

// IsSessionExpired reports whether err is a stale-token rejection.
func IsSessionExpired(err error) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == KindSessionExpired
}

// sessionExpiredMessage is the exact message the service sends with a
// stale access token. The match is a wire contract.
const sessionExpiredMessage = "jwt expired"
