package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/galley/internal/mealdb"
	"github.com/five82/galley/internal/recipe"
)

// Ticket identifies one fetch started by Begin.
type Ticket uint64

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Category            string
	Loading             bool
	Phase               mealdb.Phase
	Recipes             []recipe.Recipe
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed fetches
}

// IsOffline returns true when the API has failed for multiple fetches in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// HasRecipes reports whether a previous fetch delivered data.
func (s Snapshot) HasRecipes() bool {
	return len(s.Recipes) > 0
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	current  Ticket
	snapshot Snapshot
}

// Begin marks a new fetch for category as in flight and returns its ticket.
// Any earlier ticket becomes stale.
func (s *Store) Begin(category string) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current++
	if s.snapshot.Category != category {
		s.snapshot.Recipes = nil
	}
	s.snapshot.Category = category
	s.snapshot.Loading = true
	s.snapshot.Phase = mealdb.PhaseIdle
	return s.current
}

// SetPhase records progress for the fetch identified by t.
func (s *Store) SetPhase(t Ticket, phase mealdb.Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t != s.current {
		return
	}
	s.snapshot.Phase = phase
}

// Finish completes the fetch identified by t. When err is non-nil the previous
// recipes are kept but the error is recorded for visibility. Stale tickets are
// ignored.
func (s *Store) Finish(t Ticket, recipes []recipe.Recipe, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t != s.current {
		return
	}
	s.snapshot.Loading = false
	s.snapshot.LastUpdated = time.Now()

	if err != nil {
		s.snapshot.Phase = mealdb.PhaseFailed
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Phase = mealdb.PhaseSucceeded
	s.snapshot.Recipes = cloneRecipes(recipes)
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Recipes = cloneRecipes(s.snapshot.Recipes)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneRecipes(items []recipe.Recipe) []recipe.Recipe {
	if len(items) == 0 {
		return nil
	}
	dup := make([]recipe.Recipe, len(items))
	copy(dup, items)
	return dup
}
