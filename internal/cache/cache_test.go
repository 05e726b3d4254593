package cache

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(16, zerolog.Nop())
}

func TestStore_FetchThenHit(t *testing.T) {
	s := newTestStore(t)
	calls := 0
	fetch := func(ctx context.Context) (any, error) {
		calls++
		return "value", nil
	}
	tags := []Tag{List(TypeIdea)}

	v, err := s.GetOrFetch(context.Background(), "ideas", tags, fetch)
	require.NoError(t, err)
	assert.Equal(t, "value", v)

	v, err = s.GetOrFetch(context.Background(), "ideas", tags, fetch)
	require.NoError(t, err)
	assert.Equal(t, "value", v)
	assert.Equal(t, 1, calls)
}

func TestStore_FetchErrorNotCached(t *testing.T) {
	s := newTestStore(t)
	calls := 0

	_, err := s.GetOrFetch(context.Background(), "k", nil, func(ctx context.Context) (any, error) {
		calls++
		return nil, errors.New("boom")
	})
	require.Error(t, err)

	v, err := s.GetOrFetch(context.Background(), "k", nil, func(ctx context.Context) (any, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 2, calls)
}

func TestStore_ConcurrentReadsCoalesce(t *testing.T) {
	s := newTestStore(t)
	var calls atomic.Int32
	release := make(chan struct{})

	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "shared", nil
	}

	const readers = 8
	var wg sync.WaitGroup
	results := make([]any, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			v, err := s.GetOrFetch(context.Background(), "ideas?page=1", []Tag{List(TypeIdea)}, fetch)
			assert.NoError(t, err)
			results[n] = v
		}(i)
	}

	// Let the readers pile up on the in-flight fetch, then release it.
	for calls.Load() == 0 {
		runtime.Gosched()
	}
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, "shared", v)
	}
}

func TestStore_InvalidateForcesRefetch(t *testing.T) {
	s := newTestStore(t)
	calls := 0
	fetch := func(ctx context.Context) (any, error) {
		calls++
		return fmt.Sprintf("list-v%d", calls), nil
	}
	tags := []Tag{List(TypeIdea)}

	v, err := s.GetOrFetch(context.Background(), "ideas", tags, fetch)
	require.NoError(t, err)
	assert.Equal(t, "list-v1", v)

	s.Invalidate(List(TypeIdea))

	v, err = s.GetOrFetch(context.Background(), "ideas", tags, fetch)
	require.NoError(t, err)
	assert.Equal(t, "list-v2", v)
	assert.Equal(t, 2, calls)
}

func TestStore_InvalidateOnlyMatchingType(t *testing.T) {
	s := newTestStore(t)
	ideaCalls, planCalls := 0, 0

	ctx := context.Background()
	_, err := s.GetOrFetch(ctx, "ideas", []Tag{List(TypeIdea)}, func(ctx context.Context) (any, error) {
		ideaCalls++
		return "ideas", nil
	})
	require.NoError(t, err)
	_, err = s.GetOrFetch(ctx, "plans", []Tag{List(TypeReport)}, func(ctx context.Context) (any, error) {
		planCalls++
		return "plans", nil
	})
	require.NoError(t, err)

	s.Invalidate(List(TypeIdea))

	_, err = s.GetOrFetch(ctx, "plans", []Tag{List(TypeReport)}, func(ctx context.Context) (any, error) {
		planCalls++
		return "plans", nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, planCalls)

	_, err = s.GetOrFetch(ctx, "ideas", []Tag{List(TypeIdea)}, func(ctx context.Context) (any, error) {
		ideaCalls++
		return "ideas", nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, ideaCalls)
}

func TestStore_ListTagCoversEntityEntries(t *testing.T) {
	s := newTestStore(t)
	calls := 0
	tags := []Tag{List(TypeIdea), Entity(TypeIdea, "7")}

	ctx := context.Background()
	_, err := s.GetOrFetch(ctx, "idea/7", tags, func(ctx context.Context) (any, error) {
		calls++
		return "detail", nil
	})
	require.NoError(t, err)

	// Invalidating the list tag reaches the per-entity entry too.
	s.Invalidate(List(TypeIdea))

	_, err = s.GetOrFetch(ctx, "idea/7", tags, func(ctx context.Context) (any, error) {
		calls++
		return "detail", nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestStore_EntityTagDoesNotCoverOtherEntities(t *testing.T) {
	s := newTestStore(t)
	calls := map[string]int{}

	ctx := context.Background()
	get := func(id string) {
		_, err := s.GetOrFetch(ctx, "idea/"+id, []Tag{Entity(TypeIdea, id)}, func(ctx context.Context) (any, error) {
			calls[id]++
			return id, nil
		})
		require.NoError(t, err)
	}

	get("7")
	get("8")
	s.Invalidate(Entity(TypeIdea, "7"))
	get("7")
	get("8")

	assert.Equal(t, 2, calls["7"])
	assert.Equal(t, 1, calls["8"])
}

func TestStore_DistinctParamTuplesAreDistinctKeys(t *testing.T) {
	s := newTestStore(t)
	calls := 0
	fetch := func(ctx context.Context) (any, error) {
		calls++
		return calls, nil
	}

	ctx := context.Background()
	_, err := s.GetOrFetch(ctx, "ideas?page=1&ordering=-created_at", []Tag{List(TypeIdea)}, fetch)
	require.NoError(t, err)
	_, err = s.GetOrFetch(ctx, "ideas?page=2&ordering=-created_at", []Tag{List(TypeIdea)}, fetch)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestStore_EvictsLeastRecentlyUsed(t *testing.T) {
	s := New(2, zerolog.Nop())
	calls := map[string]int{}
	get := func(key string) {
		_, err := s.GetOrFetch(context.Background(), key, nil, func(ctx context.Context) (any, error) {
			calls[key]++
			return key, nil
		})
		require.NoError(t, err)
	}

	get("a")
	get("b")
	get("a") // refresh a
	get("c") // evicts b
	assert.Equal(t, 2, s.Len())

	get("b")
	assert.Equal(t, 2, calls["b"])
	get("a")
	assert.Equal(t, 2, calls["a"]) // a evicted by b's reinsert
}

func TestStore_Clear(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetOrFetch(context.Background(), "k", nil, func(ctx context.Context) (any, error) {
		return 1, nil
	})
	require.NoError(t, err)

	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestFetch_Typed(t *testing.T) {
	s := newTestStore(t)
	type profile struct{ Name string }

	got, err := Fetch(context.Background(), s, "profile", []Tag{List(TypeUser)}, func(ctx context.Context) (*profile, error) {
		return &profile{Name: "demo"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "demo", got.Name)

	// Second read comes from cache with the same concrete type.
	got, err = Fetch(context.Background(), s, "profile", []Tag{List(TypeUser)}, func(ctx context.Context) (*profile, error) {
		t.Fatal("fetch should not run on a warm cache")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "demo", got.Name)
}
