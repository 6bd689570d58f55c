// Package build holds the user's in-progress burger assembly: one optional
// bun and an ordered list of fillings. All transitions are synchronous and
// local; nothing here touches the network.
package build

import (
	"sync"

	"github.com/google/uuid"

	"github.com/stellarburgers/orderclient/client"
)

// Item is a catalog ingredient placed into the build. InstanceID tells two
// placements of the same ingredient apart so each is individually
// removable and reorderable.
type Item struct {
	client.Ingredient
	InstanceID string
}

// Snapshot is a copy of the current build.
type Snapshot struct {
	Bun      *Item
	Fillings []Item
}

// Store is the build container. Safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	bun      *Item
	fillings []Item
}

// New creates an empty build.
func New() *Store {
	return &Store{}
}

// Add places an ingredient into the build. A bun replaces any existing bun;
// anything else is appended to the fillings with a fresh instance id.
func (s *Store) Add(ing client.Ingredient) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := Item{Ingredient: ing, InstanceID: uuid.NewString()}
	if ing.Type == client.TypeBun {
		s.bun = &item
		return
	}
	s.fillings = append(s.fillings, item)
}

// Remove deletes the filling with the given instance id. Absent ids are a
// no-op.
func (s *Store) Remove(instanceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, f := range s.fillings {
		if f.InstanceID == instanceID {
			s.fillings = append(s.fillings[:i], s.fillings[i+1:]...)
			return
		}
	}
}

// Move repositions one filling. Moving to its own position is a no-op.
// Indices are the caller's to validate; out-of-range moves do nothing.
func (s *Store) Move(from, to int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if from == to {
		return
	}
	if from < 0 || from >= len(s.fillings) || to < 0 || to >= len(s.fillings) {
		return
	}

	item := s.fillings[from]
	s.fillings = append(s.fillings[:from], s.fillings[from+1:]...)
	s.fillings = append(s.fillings[:to], append([]Item{item}, s.fillings[to:]...)...)
}

// Clear resets to the empty build.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bun = nil
	s.fillings = nil
}

// Snapshot returns a copy of the current build.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var bun *Item
	if s.bun != nil {
		b := *s.bun
		bun = &b
	}
	fillings := make([]Item, len(s.fillings))
	copy(fillings, s.fillings)
	return Snapshot{Bun: bun, Fillings: fillings}
}
