package feed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stellarburgers/orderclient/client"
	"github.com/stellarburgers/orderclient/pkg/logger"
)

type fakeGateway struct {
	feed       client.FeedData
	feedErr    error
	userOrders []client.Order
	userErr    error
	lookup     client.Order
	lookupErr  error
}

func (f *fakeGateway) Feed(context.Context) (client.FeedData, error) {
	return f.feed, f.feedErr
}

func (f *fakeGateway) UserOrders(context.Context) ([]client.Order, error) {
	return f.userOrders, f.userErr
}

func (f *fakeGateway) OrderByNumber(context.Context, int) (client.Order, error) {
	return f.lookup, f.lookupErr
}

func TestFetchFeedReplacesAtomically(t *testing.T) {
	gw := &fakeGateway{feed: client.FeedData{
		Orders:     []client.Order{{Number: 1, Status: client.StatusDone}},
		Total:      150,
		TotalToday: 25,
	}}
	s := New(gw, logger.Nop())

	if err := s.FetchFeed(context.Background()); err != nil {
		t.Fatalf("FetchFeed: %v", err)
	}

	sn := s.Snapshot()
	if len(sn.Orders) != 1 || sn.Total != 150 || sn.TotalToday != 25 {
		t.Errorf("snapshot = %+v", sn)
	}
	if sn.Loading || sn.Err != "" {
		t.Errorf("loading/err = %v/%q", sn.Loading, sn.Err)
	}
}

func TestFetchFeedFailureKeepsUserOrders(t *testing.T) {
	gw := &fakeGateway{userOrders: []client.Order{{Number: 9}}}
	s := New(gw, logger.Nop())
	if err := s.FetchUserOrders(context.Background()); err != nil {
		t.Fatal(err)
	}

	gw.feedErr = &client.Error{Kind: client.KindNetwork, Message: "down"}
	_ = s.FetchFeed(context.Background())

	sn := s.Snapshot()
	if sn.Err != "down" {
		t.Errorf("Err = %q", sn.Err)
	}
	// The two lists refresh independently; a feed failure must not
	// disturb the personal history.
	if len(sn.UserOrders) != 1 || sn.UserOrders[0].Number != 9 {
		t.Errorf("UserOrders = %+v", sn.UserOrders)
	}
}

func TestFetchUserOrdersReplacesPersonalListOnly(t *testing.T) {
	gw := &fakeGateway{
		feed:       client.FeedData{Orders: []client.Order{{Number: 1}}, Total: 5},
		userOrders: []client.Order{{Number: 2}, {Number: 3}},
	}
	s := New(gw, logger.Nop())
	if err := s.FetchFeed(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := s.FetchUserOrders(context.Background()); err != nil {
		t.Fatal(err)
	}

	sn := s.Snapshot()
	if len(sn.UserOrders) != 2 {
		t.Errorf("UserOrders = %+v", sn.UserOrders)
	}
	if len(sn.Orders) != 1 || sn.Total != 5 {
		t.Error("public feed disturbed by personal history fetch")
	}
}

func TestFetchOrderByNumber(t *testing.T) {
	gw := &fakeGateway{lookup: client.Order{Number: 4242, Status: client.StatusDone}}
	s := New(gw, logger.Nop())

	if err := s.FetchOrderByNumber(context.Background(), 4242); err != nil {
		t.Fatalf("FetchOrderByNumber: %v", err)
	}
	sn := s.Snapshot()
	if sn.CurrentOrder == nil || sn.CurrentOrder.Number != 4242 {
		t.Errorf("CurrentOrder = %+v", sn.CurrentOrder)
	}
}

func TestFailedLookupClearsCurrentOrder(t *testing.T) {
	gw := &fakeGateway{lookup: client.Order{Number: 4242}}
	s := New(gw, logger.Nop())
	if err := s.FetchOrderByNumber(context.Background(), 4242); err != nil {
		t.Fatal(err)
	}

	gw.lookupErr = &client.Error{Kind: client.KindServer, Message: "order 1 not found"}
	_ = s.FetchOrderByNumber(context.Background(), 1)

	sn := s.Snapshot()
	if sn.CurrentOrder != nil {
		t.Errorf("CurrentOrder = %+v, want nil, never stale", sn.CurrentOrder)
	}
	if sn.Err != "order 1 not found" {
		t.Errorf("Err = %q", sn.Err)
	}
}

func TestLookupFailureWithoutMessageGetsDefault(t *testing.T) {
	gw := &fakeGateway{lookupErr: context.DeadlineExceeded}
	s := New(gw, logger.Nop())
	_ = s.FetchOrderByNumber(context.Background(), 1)

	if got := s.Snapshot().Err; got != "failed to load order" {
		t.Errorf("Err = %q, want the default message", got)
	}
}

func TestPendingClearsPriorError(t *testing.T) {
	gw := &fakeGateway{feedErr: &client.Error{Kind: client.KindNetwork, Message: "down"}}
	s := New(gw, logger.Nop())
	_ = s.FetchFeed(context.Background())

	gw.feedErr = nil
	gw.feed = client.FeedData{Total: 1}
	if err := s.FetchFeed(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := s.Snapshot().Err; got != "" {
		t.Errorf("Err = %q, want cleared", got)
	}
}

func TestClearCurrentOrder(t *testing.T) {
	gw := &fakeGateway{lookup: client.Order{Number: 7}}
	s := New(gw, logger.Nop())
	if err := s.FetchOrderByNumber(context.Background(), 7); err != nil {
		t.Fatal(err)
	}

	s.ClearCurrentOrder()
	if s.Snapshot().CurrentOrder != nil {
		t.Error("CurrentOrder survived ClearCurrentOrder")
	}
}

func TestApplyFeedEvent(t *testing.T) {
	s := New(&fakeGateway{}, logger.Nop())

	s.ApplyFeedEvent(client.FeedData{
		Orders:     []client.Order{{Number: 1, Status: client.StatusPending}},
		Total:      10,
		TotalToday: 2,
	})

	sn := s.Snapshot()
	if sn.Total != 10 || sn.TotalToday != 2 || len(sn.Orders) != 1 {
		t.Errorf("snapshot = %+v", sn)
	}
}

func TestStatusNumberSelectors(t *testing.T) {
	s := New(&fakeGateway{}, logger.Nop())
	s.ApplyFeedEvent(client.FeedData{Orders: []client.Order{
		{Number: 1, Status: client.StatusDone},
		{Number: 2, Status: client.StatusPending},
		{Number: 3, Status: client.StatusDone},
		{Number: 4, Status: client.StatusCreated},
		{Number: 5, Status: client.StatusDone},
	}})

	sn := s.Snapshot()
	assert.Equal(t, []int{1, 3, 5}, sn.ReadyNumbers(0))
	assert.Equal(t, []int{1, 3}, sn.ReadyNumbers(2))
	assert.Equal(t, []int{2}, sn.PendingNumbers(0))
}
