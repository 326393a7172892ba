package mealdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
)

const (
	defaultCacheTTL = 24 * time.Hour
	cacheKeyPrefix  = "response:"
	gcDiscardRatio  = 0.7
	defaultGCEvery  = 10 * time.Minute
)

// CachingTransport serves successful GET responses from a BadgerDB store
// before falling back to the wrapped Transport. Cache failures are logged and
// bypassed; they never fail a request.
type CachingTransport struct {
	next Transport
	db   *badger.DB
	ttl  time.Duration
	log  logrus.FieldLogger
}

var _ Transport = (*CachingTransport)(nil)

// NewCachingTransport opens (or creates) the cache at dir.
func NewCachingTransport(next Transport, dir string, ttl time.Duration, logger logrus.FieldLogger) (*CachingTransport, error) {
	if next == nil {
		return nil, fmt.Errorf("caching transport requires a transport")
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if logger == nil {
		logger = discardLogger()
	}
	opts := badger.DefaultOptions(dir)
	opts.Logger = &badgerLogger{logger.WithField("component", "badgerdb")}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open response cache at %s: %w", dir, err)
	}
	logger.WithField("path", dir).Info("response cache opened")

	return &CachingTransport{
		next: next,
		db:   db,
		ttl:  ttl,
		log:  logger.WithField("component", "cache"),
	}, nil
}

// Perform implements Transport.
func (c *CachingTransport) Perform(ctx context.Context, req *http.Request) (Response, error) {
	if req.Method != http.MethodGet {
		return c.next.Perform(ctx, req)
	}

	key := cacheKey(req)
	log := c.log.WithField("url", req.URL.String())
	if body, ok := c.lookup(key); ok {
		log.Debug("cache hit")
		return Response{StatusCode: http.StatusOK, Body: body}, nil
	}

	resp, err := c.next.Perform(ctx, req)
	if err != nil || !resp.OK() {
		return resp, err
	}
	if err := c.store(key, resp.Body); err != nil {
		log.WithError(err).Warn("cache store failed")
	}
	return resp, nil
}

func (c *CachingTransport) lookup(key []byte) ([]byte, bool) {
	var body []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		body, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			c.log.WithError(err).WithField("key", string(key)).Warn("cache read failed")
		}
		return nil, false
	}
	return body, true
}

func (c *CachingTransport) store(key, body []byte) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(key, body).WithTTL(c.ttl))
	})
}

// Purge drops every cached response.
func (c *CachingTransport) Purge() error {
	if err := c.db.DropPrefix([]byte(cacheKeyPrefix)); err != nil {
		return fmt.Errorf("purge response cache: %w", err)
	}
	return nil
}

// RunGC reclaims value-log space until ctx is cancelled.
func (c *CachingTransport) RunGC(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = defaultGCEvery
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := c.db.RunValueLogGC(gcDiscardRatio)
			switch {
			case err == nil:
				c.log.Debug("value log gc completed")
			case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrRejected):
			default:
				c.log.WithError(err).Warn("value log gc failed")
			}
		}
	}
}

// Close closes the underlying store.
func (c *CachingTransport) Close() error {
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close response cache: %w", err)
	}
	return nil
}

func cacheKey(req *http.Request) []byte {
	return []byte(cacheKeyPrefix + req.Method + " " + req.URL.String())
}

// badgerLogger adapts logrus to Badger's logger interface.
type badgerLogger struct {
	logger logrus.FieldLogger
}

func (l *badgerLogger) Errorf(f string, v ...interface{}) {
	l.logger.Errorf(f, v...)
}
func (l *badgerLogger) Warningf(f string, v ...interface{}) {
	l.logger.Warningf(f, v...)
}
func (l *badgerLogger) Infof(f string, v ...interface{}) {
	l.logger.Infof(f, v...)
}
func (l *badgerLogger) Debugf(f string, v ...interface{}) {
	l.logger.Debugf(f, v...)
}
