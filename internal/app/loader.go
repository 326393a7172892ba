package app

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/galley/internal/mealdb"
	"github.com/five82/galley/internal/recipe"
	"github.com/five82/galley/internal/state"
)

// Fetcher runs one list-then-lookup cycle. *mealdb.Orchestrator implements it.
type Fetcher interface {
	FetchWithDetails(ctx context.Context, category string, observe func(mealdb.Phase)) ([]recipe.Recipe, error)
}

var _ Fetcher = (*mealdb.Orchestrator)(nil)

// Loader runs at most one fetch at a time and publishes its progress to the
// store. Starting a new load cancels the previous one.
type Loader struct {
	parent  context.Context
	fetcher Fetcher
	store   *state.Store
	log     logrus.FieldLogger

	mu     sync.Mutex
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup
}

// NewLoader returns a Loader whose fetches are bounded by ctx.
func NewLoader(ctx context.Context, fetcher Fetcher, store *state.Store, logger logrus.FieldLogger) *Loader {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Loader{
		parent:  ctx,
		fetcher: fetcher,
		store:   store,
		log:     logger.WithField("component", "loader"),
	}
}

// Load starts fetching category in the background. Blank categories are
// ignored.
func (l *Loader) Load(category string) {
	category = strings.TrimSpace(category)
	if category == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(l.parent)
	l.cancel = cancel
	ticket := l.store.Begin(category)

	log := l.log.WithField("category", category)
	log.Info("load started")

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer cancel()
		started := time.Now()

		recipes, err := l.fetcher.FetchWithDetails(ctx, category, func(p mealdb.Phase) {
			l.store.SetPhase(ticket, p)
		})
		switch {
		case err == nil:
			log.WithFields(logrus.Fields{
				"recipes":  len(recipes),
				"duration": time.Since(started).String(),
			}).Info("load finished")
		case errors.Is(err, context.Canceled) && ctx.Err() != nil:
			log.Debug("load cancelled")
		default:
			log.WithError(err).WithField("kind", mealdb.KindOf(err).String()).Warn("load failed")
		}
		l.store.Finish(ticket, recipes, err)
	}()
}

// Reload repeats the most recent category.
func (l *Loader) Reload() {
	l.Load(l.store.Snapshot().Category)
}

// Wait blocks until every started fetch has returned.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Close cancels the in-flight fetch, waits for it, and rejects further loads.
func (l *Loader) Close() {
	l.mu.Lock()
	l.closed = true
	if l.cancel != nil {
		l.cancel()
	}
	l.mu.Unlock()
	l.wg.Wait()
}
