// Package catalog holds the fetched list of orderable ingredients and its
// load status.
package catalog

import (
	"context"
	"sync"

	"github.com/stellarburgers/orderclient/client"
	"github.com/stellarburgers/orderclient/pkg/logger"
)

const defaultErr = "failed to load ingredients"

// Gateway is the slice of the remote gateway the catalog needs.
type Gateway interface {
	Ingredients(ctx context.Context) ([]client.Ingredient, error)
}

// Snapshot is a copy of the catalog state. A failed fetch leaves
// Ingredients empty with Err set, so the UI can tell "failed to load" from
// "not yet loaded".
type Snapshot struct {
	Ingredients []client.Ingredient
	Loading     bool
	Err         string
}

// Store is the catalog container. Safe for concurrent use.
type Store struct {
	mu  sync.Mutex
	gw  Gateway
	log *logger.Logger

	ingredients []client.Ingredient
	loading     bool
	err         string
}

// New creates an empty catalog over the given gateway.
func New(gw Gateway, log *logger.Logger) *Store {
	if log == nil {
		log = logger.NewDefault("catalog")
	}
	return &Store{gw: gw, log: log}
}

// Fetch loads the catalog, replacing any previous list wholesale. The
// failure is recorded in the snapshot as well as returned.
func (s *Store) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	items, err := s.gw.Ingredients(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.ingredients = nil
		s.err = client.ErrorMessage(err, defaultErr)
		s.log.WithError(err).Warn("catalog fetch failed")
		return err
	}
	s.ingredients = items
	s.log.WithField("count", len(items)).Debug("catalog loaded")
	return nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]client.Ingredient, len(s.ingredients))
	copy(items, s.ingredients)
	return Snapshot{Ingredients: items, Loading: s.loading, Err: s.err}
}

// ByType groups the loaded ingredients by their catalog type (bun, main,
// sauce), preserving catalog order within each group.
func (s *Store) ByType() map[string][]client.Ingredient {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups := make(map[string][]client.Ingredient)
	for _, ing := range s.ingredients {
		groups[ing.Type] = append(groups[ing.Type], ing)
	}
	return groups
}
