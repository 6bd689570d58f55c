package catalog

import (
	"context"
	"testing"

	"github.com/stellarburgers/orderclient/client"
	"github.com/stellarburgers/orderclient/pkg/logger"
)

type fakeGateway struct {
	items []client.Ingredient
	err   error
	calls int
}

func (f *fakeGateway) Ingredients(context.Context) ([]client.Ingredient, error) {
	f.calls++
	return f.items, f.err
}

func TestFetchSuccess(t *testing.T) {
	gw := &fakeGateway{items: []client.Ingredient{
		{ID: "bun1", Name: "Crater bun", Type: client.TypeBun, Price: 1255},
	}}
	s := New(gw, logger.Nop())

	if err := s.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	sn := s.Snapshot()
	if len(sn.Ingredients) != 1 || sn.Ingredients[0].ID != "bun1" {
		t.Errorf("ingredients = %+v", sn.Ingredients)
	}
	if sn.Loading {
		t.Error("still loading after fetch")
	}
	if sn.Err != "" {
		t.Errorf("err = %q, want empty", sn.Err)
	}
}

func TestFetchFailureLeavesListEmpty(t *testing.T) {
	gw := &fakeGateway{err: &client.Error{Kind: client.KindServer, Message: "boom"}}
	s := New(gw, logger.Nop())

	if err := s.Fetch(context.Background()); err == nil {
		t.Fatal("Fetch returned nil on gateway failure")
	}

	sn := s.Snapshot()
	if len(sn.Ingredients) != 0 {
		t.Errorf("ingredients = %+v, want empty", sn.Ingredients)
	}
	if sn.Err != "boom" {
		t.Errorf("err = %q, want boom", sn.Err)
	}
	if sn.Loading {
		t.Error("still loading after failure")
	}
}

func TestFetchClearsPriorErrorAndReplacesList(t *testing.T) {
	gw := &fakeGateway{err: &client.Error{Kind: client.KindNetwork, Message: "down"}}
	s := New(gw, logger.Nop())
	_ = s.Fetch(context.Background())

	gw.err = nil
	gw.items = []client.Ingredient{{ID: "m1", Type: client.TypeMain}}
	if err := s.Fetch(context.Background()); err != nil {
		t.Fatalf("second Fetch: %v", err)
	}

	sn := s.Snapshot()
	if sn.Err != "" {
		t.Errorf("err = %q, want cleared", sn.Err)
	}
	if len(sn.Ingredients) != 1 || sn.Ingredients[0].ID != "m1" {
		t.Errorf("ingredients = %+v, want full replacement", sn.Ingredients)
	}
}

func TestFetchErrorWithoutMessageGetsDefault(t *testing.T) {
	gw := &fakeGateway{err: context.DeadlineExceeded}
	s := New(gw, logger.Nop())
	_ = s.Fetch(context.Background())

	if got := s.Snapshot().Err; got != "failed to load ingredients" {
		t.Errorf("err = %q, want the default message", got)
	}
}

func TestByType(t *testing.T) {
	gw := &fakeGateway{items: []client.Ingredient{
		{ID: "bun1", Type: client.TypeBun},
		{ID: "m1", Type: client.TypeMain},
		{ID: "s1", Type: client.TypeSauce},
		{ID: "m2", Type: client.TypeMain},
	}}
	s := New(gw, logger.Nop())
	if err := s.Fetch(context.Background()); err != nil {
		t.Fatal(err)
	}

	groups := s.ByType()
	if len(groups[client.TypeMain]) != 2 {
		t.Errorf("mains = %+v", groups[client.TypeMain])
	}
	if groups[client.TypeMain][0].ID != "m1" || groups[client.TypeMain][1].ID != "m2" {
		t.Error("catalog order not preserved within group")
	}
	if len(groups[client.TypeBun]) != 1 || len(groups[client.TypeSauce]) != 1 {
		t.Errorf("groups = %+v", groups)
	}
}
