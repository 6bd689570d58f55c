// Package order owns the async lifecycle of placing an order.
package order

import (
	"context"
	"sync"

	"github.com/stellarburgers/orderclient/client"
	"github.com/stellarburgers/orderclient/pkg/logger"
)

const defaultErr = "failed to create order"

// Gateway is the slice of the remote gateway submissions need.
type Gateway interface {
	CreateOrder(ctx context.Context, ids []string) (client.Order, error)
}

// Snapshot is a copy of the submission state. InFlight is mutually
// exclusive with a populated Result or Err.
type Snapshot struct {
	InFlight bool
	Result   *client.Order
	Err      string
}

// Store is the submission container. Safe for concurrent use.
//
// Callers guard Submit: no bun, an in-flight submission, or an
// unauthenticated session must be caught at the call site.
type Store struct {
	mu  sync.Mutex
	gw  Gateway
	log *logger.Logger

	inFlight bool
	result   *client.Order
	err      string
}

// New creates an idle submission store over the given gateway.
func New(gw Gateway, log *logger.Logger) *Store {
	if log == nil {
		log = logger.NewDefault("order")
	}
	return &Store{gw: gw, log: log}
}

// Submit places the order. ids must already be the wire sequence produced
// by the build's SubmissionIDs. On success the caller clears the build; on
// failure the build stays untouched so the user can retry.
func (s *Store) Submit(ctx context.Context, ids []string) (client.Order, error) {
	s.mu.Lock()
	s.inFlight = true
	s.result = nil
	s.err = ""
	s.mu.Unlock()

	placed, err := s.gw.CreateOrder(ctx, ids)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if err != nil {
		s.err = client.ErrorMessage(err, defaultErr)
		s.log.WithError(err).Warn("order submission failed")
		return client.Order{}, err
	}
	s.result = &placed
	s.log.WithField("number", placed.Number).Info("order placed")
	return placed, nil
}

// Dismiss resets the store to idle after the result modal is closed.
func (s *Store) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = nil
	s.err = ""
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result *client.Order
	if s.result != nil {
		r := *s.result
		result = &r
	}
	return Snapshot{InFlight: s.inFlight, Result: result, Err: s.err}
}
