// Package feed owns the public live feed of all orders and the
// authenticated user's personal history, plus single-order lookups. The
// two lists refresh independently.
package feed

import (
	"context"
	"sync"

	"github.com/stellarburgers/orderclient/client"
	"github.com/stellarburgers/orderclient/pkg/logger"
)

const (
	feedErr    = "failed to load order feed"
	historyErr = "failed to load order history"
	lookupErr  = "failed to load order"
)

// Gateway is the slice of the remote gateway the feed needs.
type Gateway interface {
	Feed(ctx context.Context) (client.FeedData, error)
	UserOrders(ctx context.Context) ([]client.Order, error)
	OrderByNumber(ctx context.Context, number int) (client.Order, error)
}

// Snapshot is a copy of the feed state.
type Snapshot struct {
	Orders     []client.Order
	Total      int
	TotalToday int
	UserOrders []client.Order
	// CurrentOrder is the last successful single-order lookup; nil after
	// a pending or failed lookup, never stale.
	CurrentOrder *client.Order
	Loading      bool
	Err          string
}

// Store is the feed container. Safe for concurrent use.
type Store struct {
	mu  sync.Mutex
	gw  Gateway
	log *logger.Logger

	orders     []client.Order
	total      int
	totalToday int
	userOrders []client.Order
	current    *client.Order
	loading    bool
	err        string
}

// New creates an empty feed store over the given gateway.
func New(gw Gateway, log *logger.Logger) *Store {
	if log == nil {
		log = logger.NewDefault("feed")
	}
	return &Store{gw: gw, log: log}
}

// FetchFeed loads one snapshot of the public feed, replacing orders, total
// and totalToday together.
func (s *Store) FetchFeed(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	data, err := s.gw.Feed(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = client.ErrorMessage(err, feedErr)
		s.log.WithError(err).Warn("feed fetch failed")
		return err
	}
	s.applyFeedLocked(data)
	return nil
}

// ApplyFeedEvent ingests a live websocket snapshot, same atomic
// replacement as FetchFeed.
func (s *Store) ApplyFeedEvent(data client.FeedData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyFeedLocked(data)
}

func (s *Store) applyFeedLocked(data client.FeedData) {
	s.orders = data.Orders
	s.total = data.Total
	s.totalToday = data.TotalToday
}

// FetchUserOrders loads the personal history. Requires an authenticated
// session; calling it anonymously is a caller error.
func (s *Store) FetchUserOrders(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	orders, err := s.gw.UserOrders(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = client.ErrorMessage(err, historyErr)
		s.log.WithError(err).Warn("order history fetch failed")
		return err
	}
	s.userOrders = orders
	return nil
}

// FetchOrderByNumber looks up one order by its sequence number. The
// current order is cleared while pending and stays absent on failure.
func (s *Store) FetchOrderByNumber(ctx context.Context, number int) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.current = nil
	s.mu.Unlock()

	found, err := s.gw.OrderByNumber(ctx, number)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = client.ErrorMessage(err, lookupErr)
		s.log.WithError(err).WithField("number", number).Warn("order lookup failed")
		return err
	}
	s.current = &found
	return nil
}

// ClearCurrentOrder drops the selected order, e.g. when its modal closes.
func (s *Store) ClearCurrentOrder() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := make([]client.Order, len(s.orders))
	copy(orders, s.orders)
	userOrders := make([]client.Order, len(s.userOrders))
	copy(userOrders, s.userOrders)
	var current *client.Order
	if s.current != nil {
		c := *s.current
		current = &c
	}
	return Snapshot{
		Orders:       orders,
		Total:        s.total,
		TotalToday:   s.totalToday,
		UserOrders:   userOrders,
		CurrentOrder: current,
		Loading:      s.loading,
		Err:          s.err,
	}
}
