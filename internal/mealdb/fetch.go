package mealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/five82/galley/internal/recipe"
)

// Phase is the state of one category fetch.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseListing
	PhaseDetails
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseListing:
		return "listing"
	case PhaseDetails:
		return "details"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Terminal reports whether no further transitions follow.
func (p Phase) Terminal() bool {
	return p == PhaseSucceeded || p == PhaseFailed
}

// Orchestrator lists a category and then looks up every listed meal
// concurrently. The result is all-or-nothing.
type Orchestrator struct {
	source RecipeSource
	log    logrus.FieldLogger
}

// NewOrchestrator returns an orchestrator over source.
func NewOrchestrator(source RecipeSource, logger logrus.FieldLogger) *Orchestrator {
	if logger == nil {
		logger = discardLogger()
	}
	return &Orchestrator{source: source, log: logger.WithField("component", "fetch")}
}

// FetchWithDetails runs one fetch cycle. observe, when non-nil, is called on
// every phase transition from the calling goroutine. The first failed lookup
// cancels the remaining ones and becomes the returned error; every lookup
// goroutine has returned by the time FetchWithDetails does.
//
// The returned slice follows listing order, but callers should not depend on
// any ordering.
func (o *Orchestrator) FetchWithDetails(ctx context.Context, category string, observe func(Phase)) ([]recipe.Recipe, error) {
	if o == nil || o.source == nil {
		return nil, fmt.Errorf("orchestrator has no recipe source")
	}
	notify := func(p Phase) {
		if observe != nil {
			observe(p)
		}
	}
	log := o.log.WithField("category", category)
	started := time.Now()

	notify(PhaseListing)
	listing, err := o.source.FetchRecipes(ctx, category)
	if err != nil {
		log.WithError(err).Warn("listing failed")
		notify(PhaseFailed)
		return nil, err
	}

	ids := distinctIDs(listing)
	log = log.WithField("meals", len(ids))
	notify(PhaseDetails)

	results := make([]recipe.Recipe, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			r, err := o.source.FetchRecipe(gctx, id)
			if err != nil {
				return fmt.Errorf("meal %d: %w", id, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.WithError(err).Warn("detail fetch failed")
		notify(PhaseFailed)
		return nil, err
	}

	log.WithField("duration", time.Since(started).String()).Info("category fetched")
	notify(PhaseSucceeded)
	return results, nil
}

func distinctIDs(listing []recipe.Recipe) []int {
	seen := make(map[int]struct{}, len(listing))
	ids := make([]int, 0, len(listing))
	for _, r := range listing {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		ids = append(ids, r.ID)
	}
	return ids
}
