package mealdb

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/galley/internal/recipe"
)

type fakeSource struct {
	listing    []recipe.Recipe
	listingErr error
	lookup     func(ctx context.Context, id int) (recipe.Recipe, error)

	mu      sync.Mutex
	calls   []int
	started atomic.Int32
	done    atomic.Int32
}

func (f *fakeSource) FetchRecipes(ctx context.Context, category string) ([]recipe.Recipe, error) {
	return f.listing, f.listingErr
}

func (f *fakeSource) FetchRecipe(ctx context.Context, id int) (recipe.Recipe, error) {
	f.started.Add(1)
	defer f.done.Add(1)
	f.mu.Lock()
	f.calls = append(f.calls, id)
	f.mu.Unlock()
	if f.lookup != nil {
		return f.lookup(ctx, id)
	}
	return recipe.Recipe{ID: id, Name: "detailed"}, nil
}

func listing(ids ...int) []recipe.Recipe {
	out := make([]recipe.Recipe, 0, len(ids))
	for _, id := range ids {
		out = append(out, recipe.Recipe{ID: id})
	}
	return out
}

func TestFetchWithDetails_Succeeds(t *testing.T) {
	src := &fakeSource{listing: listing(3, 1, 2)}
	var phases []Phase

	got, err := NewOrchestrator(src, nil).FetchWithDetails(context.Background(), "Dessert", func(p Phase) {
		phases = append(phases, p)
	})
	require.NoError(t, err)
	require.Len(t, got, 3)

	ids := map[int]bool{}
	for _, r := range got {
		assert.Equal(t, "detailed", r.Name)
		ids[r.ID] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, ids)
	assert.Equal(t, []Phase{PhaseListing, PhaseDetails, PhaseSucceeded}, phases)
}

func TestFetchWithDetails_DeduplicatesIDs(t *testing.T) {
	src := &fakeSource{listing: listing(7, 7, 8, 7)}
	got, err := NewOrchestrator(src, nil).FetchWithDetails(context.Background(), "Dessert", nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Len(t, src.calls, 2)
}

func TestFetchWithDetails_EmptyListing(t *testing.T) {
	src := &fakeSource{}
	got, err := NewOrchestrator(src, nil).FetchWithDetails(context.Background(), "Nothing", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, src.calls)
}

func TestFetchWithDetails_ListingFailureSkipsDetails(t *testing.T) {
	listErr := &Error{Kind: KindServer, StatusCode: 503}
	src := &fakeSource{listing: listing(1, 2), listingErr: listErr}
	var phases []Phase

	_, err := NewOrchestrator(src, nil).FetchWithDetails(context.Background(), "Dessert", func(p Phase) {
		phases = append(phases, p)
	})
	require.ErrorIs(t, err, listErr)
	assert.Empty(t, src.calls)
	assert.Equal(t, []Phase{PhaseListing, PhaseFailed}, phases)
}

func TestFetchWithDetails_AllOrNothing(t *testing.T) {
	boom := &Error{Kind: KindTransport, Err: errors.New("connection reset")}
	src := &fakeSource{
		listing: listing(1, 2, 3),
		lookup: func(ctx context.Context, id int) (recipe.Recipe, error) {
			if id == 2 {
				return recipe.Recipe{}, boom
			}
			return recipe.Recipe{ID: id}, nil
		},
	}
	var last Phase

	got, err := NewOrchestrator(src, nil).FetchWithDetails(context.Background(), "Dessert", func(p Phase) { last = p })
	require.Error(t, err)
	assert.Nil(t, got, "no partial results on failure")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, KindTransport, KindOf(err))
	assert.True(t, strings.Contains(err.Error(), "meal 2"), "error = %v", err)
	assert.Equal(t, PhaseFailed, last)
}

func TestFetchWithDetails_CancelsInFlightLookups(t *testing.T) {
	boom := &Error{Kind: KindServer, StatusCode: 500}
	src := &fakeSource{
		listing: listing(1, 2, 3, 4, 5),
		lookup: func(ctx context.Context, id int) (recipe.Recipe, error) {
			if id == 3 {
				return recipe.Recipe{}, boom
			}
			select {
			case <-ctx.Done():
				return recipe.Recipe{}, ctx.Err()
			case <-time.After(5 * time.Second):
				return recipe.Recipe{ID: id}, nil
			}
		},
	}

	started := time.Now()
	_, err := NewOrchestrator(src, nil).FetchWithDetails(context.Background(), "Dessert", nil)
	require.ErrorIs(t, err, boom, "first failure wins over cancellation errors")
	assert.Less(t, time.Since(started), 4*time.Second, "in-flight lookups should be cancelled")
	assert.Equal(t, src.started.Load(), src.done.Load(), "every lookup returned before FetchWithDetails")
}

func TestFetchWithDetails_ParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := &fakeSource{
		listing: listing(1, 2),
		lookup: func(ctx context.Context, id int) (recipe.Recipe, error) {
			cancel()
			<-ctx.Done()
			return recipe.Recipe{}, ctx.Err()
		},
	}
	_, err := NewOrchestrator(src, nil).FetchWithDetails(ctx, "Dessert", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchWithDetails_EndToEnd(t *testing.T) {
	server, _ := newMealServer(t, nil)
	c := newTestClient(t, server.URL)

	got, err := NewOrchestrator(c, nil).FetchWithDetails(context.Background(), "Dessert", nil)
	require.NoError(t, err)
	require.Len(t, got, 10)

	var apam *recipe.Recipe
	for i := range got {
		if got[i].ID == 53049 {
			apam = &got[i]
		}
	}
	require.NotNil(t, apam)
	assert.Len(t, apam.Ingredients, 9)
	require.Len(t, apam.Instructions, 4)
	for i, prefix := range []string{"1. ", "2. ", "3. ", "4. "} {
		assert.True(t, strings.HasPrefix(apam.Instructions[i], prefix), "instruction %d = %q", i, apam.Instructions[i])
	}
}

func TestPhase_Terminal(t *testing.T) {
	assert.False(t, PhaseIdle.Terminal())
	assert.False(t, PhaseDetails.Terminal())
	assert.True(t, PhaseSucceeded.Terminal())
	assert.True(t, PhaseFailed.Terminal())
	assert.Equal(t, "details", PhaseDetails.String())
}
