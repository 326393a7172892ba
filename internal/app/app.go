package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/galley/internal/config"
	"github.com/five82/galley/internal/mealdb"
	"github.com/five82/galley/internal/prefs"
	"github.com/five82/galley/internal/recipe"
	"github.com/five82/galley/internal/state"
	"github.com/five82/galley/internal/ui"
)

const defaultRefreshInterval = 250 * time.Millisecond

// Options configure the galley application.
type Options struct {
	ConfigPath string
	PrefsPath  string    // empty uses default ~/.config/galley/prefs.toml
	Category   string    // overrides the remembered and configured category
	DumpTo     io.Writer // when set, fetch once and write JSON instead of starting the TUI
}

// Run boots galley until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	userPrefs := prefs.Load(opts.PrefsPath)

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	svc, err := newServices(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer svc.Close()

	category := firstNonEmpty(opts.Category, userPrefs.LastCategory, cfg.DefaultCategory)

	if opts.DumpTo != nil {
		return Dump(ctx, opts.DumpTo, svc.orchestrator, category)
	}

	store := &state.Store{}
	loader := NewLoader(ctx, svc.orchestrator, store, log)
	defer loader.Close()
	loader.Load(category)

	return ui.Run(ui.Options{
		Context:      ctx,
		Store:        store,
		Loader:       loader,
		LogPath:      cfg.LogPath(),
		Prefs:        userPrefs,
		PrefsPath:    opts.PrefsPath,
		RefreshEvery: defaultRefreshInterval,
		PurgeCache:   svc.purge,
	})
}

// services holds the network stack built from config.
type services struct {
	orchestrator *mealdb.Orchestrator
	cache        *mealdb.CachingTransport
	stopGC       context.CancelFunc
	log          logrus.FieldLogger
}

func newServices(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (*services, error) {
	var transport mealdb.Transport = mealdb.NewHTTPTransport(cfg.RequestTimeout)
	svc := &services{stopGC: func() {}, log: log}

	if cfg.CacheEnabled() {
		cache, err := mealdb.NewCachingTransport(transport, cfg.CacheDir, cfg.CacheTTL, log)
		if err != nil {
			log.WithError(err).Warn("response cache unavailable, continuing without it")
		} else {
			gcCtx, stop := context.WithCancel(ctx)
			go cache.RunGC(gcCtx, 0)
			svc.cache, svc.stopGC = cache, stop
			transport = cache
		}
	}

	codec := recipe.NewCodec(recipe.Options{IngredientImageBaseURL: cfg.IngredientImageBaseURL})
	client, err := mealdb.NewClient(cfg.APIBaseURL, transport, codec, log)
	if err != nil {
		svc.Close()
		return nil, fmt.Errorf("init mealdb client: %w", err)
	}
	svc.orchestrator = mealdb.NewOrchestrator(client, log)
	return svc, nil
}

// purge clears the response cache. It is a no-op when caching is off.
func (s *services) purge() error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Purge()
}

func (s *services) Close() {
	s.stopGC()
	if s.cache == nil {
		return
	}
	if err := s.cache.Close(); err != nil {
		s.log.WithError(err).Error("error closing response cache")
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
