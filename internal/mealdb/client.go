package mealdb

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/galley/internal/recipe"
)

// RecipeSource is the subset of the API the orchestrator needs. *Client
// implements it; tests substitute fakes.
type RecipeSource interface {
	FetchRecipes(ctx context.Context, category string) ([]recipe.Recipe, error)
	FetchRecipe(ctx context.Context, id int) (recipe.Recipe, error)
}

// Ensure Client implements RecipeSource at compile time.
var _ RecipeSource = (*Client)(nil)

// Client talks to TheMealDB over a Transport.
type Client struct {
	baseURL   *url.URL
	transport Transport
	codec     recipe.Codec
	log       logrus.FieldLogger
}

// NewClient builds a Client for the API rooted at baseURL.
func NewClient(baseURL string, transport Transport, codec recipe.Codec, logger logrus.FieldLogger) (*Client, error) {
	base, err := ParseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if transport == nil {
		transport = NewHTTPTransport(0)
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &Client{
		baseURL:   base,
		transport: transport,
		codec:     codec,
		log:       logger.WithField("component", "mealdb"),
	}, nil
}

// FetchRecipes lists the meals of a category. The listing carries only the id,
// name and image of each meal. An unknown category yields an empty list.
func (c *Client) FetchRecipes(ctx context.Context, category string) ([]recipe.Recipe, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	return c.load(ctx, Filter(category))
}

// FetchRecipe looks up one meal with full details.
func (c *Client) FetchRecipe(ctx context.Context, id int) (recipe.Recipe, error) {
	if c == nil {
		return recipe.Recipe{}, fmt.Errorf("client is nil")
	}
	meals, err := c.load(ctx, Lookup(id))
	if err != nil {
		return recipe.Recipe{}, err
	}
	if len(meals) == 0 {
		return recipe.Recipe{}, &Error{Kind: KindNotFound, Op: "lookup", Err: fmt.Errorf("meal %d", id)}
	}
	return meals[0], nil
}

func (c *Client) load(ctx context.Context, endpoint Endpoint) ([]recipe.Recipe, error) {
	op := endpoint.Path
	req, err := endpoint.Request(ctx, c.baseURL)
	if err != nil {
		return nil, err
	}

	log := c.log.WithFields(logrus.Fields{
		"endpoint": endpoint.Path,
		"query":    endpoint.Query.Encode(),
	})
	started := time.Now()
	resp, err := c.transport.Perform(ctx, req)
	if err != nil {
		log.WithError(err).Debug("request failed")
		if KindOf(err) == KindUnknown {
			err = &Error{Kind: KindTransport, Op: op, Err: err}
		}
		return nil, err
	}
	log = log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(started).String(),
	})
	if !resp.OK() {
		log.Debug("request returned error status")
		return nil, &Error{Kind: KindServer, Op: op, StatusCode: resp.StatusCode}
	}

	meals, err := c.codec.DecodeList(resp.Body)
	if err != nil {
		log.WithError(err).Debug("decode failed")
		return nil, decodeFailure(op, err)
	}
	log.WithField("meals", len(meals)).Debug("request completed")
	return meals, nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
