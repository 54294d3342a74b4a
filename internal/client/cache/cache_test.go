package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_DeterministicPerParams(t *testing.T) {
	type params struct {
		Page int    `json:"page"`
		City string `json:"city"`
	}

	k1 := Key("listProperties", params{Page: 1, City: "Austin"})
	k2 := Key("listProperties", params{Page: 1, City: "Austin"})
	k3 := Key("listProperties", params{Page: 2, City: "Austin"})

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.Equal(t, "listProperties", Key("listProperties", nil))
}

func TestQuery_CachesSuccessfulResult(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	var fetches atomic.Int32
	fetch := func(ctx context.Context) (any, error) {
		fetches.Add(1)
		return "payload", nil
	}

	for i := 0; i < 3; i++ {
		v, err := s.Query(ctx, "k", []string{"Property"}, fetch)
		require.NoError(t, err)
		require.Equal(t, "payload", v)
	}

	assert.Equal(t, int32(1), fetches.Load(), "fresh entries must not refetch")
}

func TestQuery_ConcurrentIdenticalCallsShareOneFetch(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	var fetches atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		fetches.Add(1)
		<-release
		return 42, nil
	}

	const callers = 8
	var wg sync.WaitGroup
	results := make([]any, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := s.Query(ctx, "dup", nil, fetch)
			require.NoError(t, err)
			results[i] = v
		}(i)
	}

	// Give the goroutines time to pile up on the in-flight fetch.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), fetches.Load(), "identical concurrent queries must share one request")
	for _, v := range results {
		assert.Equal(t, 42, v)
	}
}

func TestQuery_ErrorIsReturnedAndNextReadRetries(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	var fetches atomic.Int32
	boom := errors.New("backend down")
	fetch := func(ctx context.Context) (any, error) {
		if fetches.Add(1) == 1 {
			return nil, boom
		}
		return "recovered", nil
	}

	_, err := s.Query(ctx, "k", nil, fetch)
	require.ErrorIs(t, err, boom)

	v, err := s.Query(ctx, "k", nil, fetch)
	require.NoError(t, err)
	assert.Equal(t, "recovered", v)
	assert.Equal(t, int32(2), fetches.Load())
}

func TestInvalidate_SubscribedEntryRefetchesAndNotifies(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	var fetches atomic.Int32
	fetch := func(ctx context.Context) (any, error) {
		return int(fetches.Add(1)), nil
	}

	_, err := s.Query(ctx, "pending", []string{"Property"}, fetch)
	require.NoError(t, err)

	got := make(chan Result, 1)
	unsub := s.Subscribe("pending", func(r Result) { got <- r })
	defer unsub()

	s.Invalidate(ctx, "Property")

	select {
	case r := <-got:
		require.NoError(t, r.Err)
		assert.Equal(t, 2, r.Data, "subscriber must see the refetched value")
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber was not notified after invalidation")
	}

	// The next read is served from the refreshed entry, not refetched again.
	v, err := s.Query(ctx, "pending", []string{"Property"}, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestInvalidate_UnsubscribedEntryIsEvicted(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	var fetches atomic.Int32
	fetch := func(ctx context.Context) (any, error) {
		return int(fetches.Add(1)), nil
	}

	_, err := s.Query(ctx, "k", []string{"Property"}, fetch)
	require.NoError(t, err)

	s.Invalidate(ctx, "Property")

	s.mu.Lock()
	_, exists := s.entries["k"]
	s.mu.Unlock()
	assert.False(t, exists, "zero-subscriber stale entries are evicted")

	// A later read fetches fresh data rather than serving anything stale.
	v, err := s.Query(ctx, "k", []string{"Property"}, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestInvalidate_SubscribedEntryWithoutFetchStaysRegistered(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	// Subscribing before the first Query leaves the entry without a fetch
	// function. Tag it directly so Invalidate can reach it.
	unsubscribe := s.Subscribe("k", func(Result) {})
	defer unsubscribe()
	s.mu.Lock()
	s.retagLocked(s.entries["k"], []string{"Property"})
	s.mu.Unlock()

	s.Invalidate(ctx, "Property")

	s.mu.Lock()
	e, exists := s.entries["k"]
	stale := exists && e.stale
	subs := 0
	if exists {
		subs = len(e.subs)
	}
	s.mu.Unlock()
	require.True(t, exists, "subscribed entries survive invalidation")
	assert.True(t, stale)
	assert.Equal(t, 1, subs)
}

func TestInvalidate_UnrelatedTagLeavesEntryFresh(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	var fetches atomic.Int32
	fetch := func(ctx context.Context) (any, error) {
		return int(fetches.Add(1)), nil
	}

	_, err := s.Query(ctx, "k", []string{"Property"}, fetch)
	require.NoError(t, err)

	s.Invalidate(ctx, "User")

	v, err := s.Query(ctx, "k", []string{"Property"}, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, v, "entry must stay cached across unrelated invalidations")
}

func TestMutate_InvalidatesOnlyOnSuccess(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	var fetches atomic.Int32
	fetch := func(ctx context.Context) (any, error) {
		return int(fetches.Add(1)), nil
	}
	_, err := s.Query(ctx, "k", []string{"Property"}, fetch)
	require.NoError(t, err)

	boom := errors.New("rejected")
	err = s.Mutate(ctx, []string{"Property"}, func(ctx context.Context) error { return boom })
	require.ErrorIs(t, err, boom)

	v, err := s.Query(ctx, "k", []string{"Property"}, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, v, "failed mutations must not invalidate")

	require.NoError(t, s.Mutate(ctx, []string{"Property"}, func(ctx context.Context) error { return nil }))

	v, err = s.Query(ctx, "k", []string{"Property"}, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, v, "successful mutations invalidate dependent entries")
}

func TestSubscribe_UnsubscribeStopsNotifications(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	fetch := func(ctx context.Context) (any, error) { return "v", nil }
	_, err := s.Query(ctx, "k", []string{"Property"}, fetch)
	require.NoError(t, err)

	var calls atomic.Int32
	unsub := s.Subscribe("k", func(Result) { calls.Add(1) })
	unsub()
	unsub() // safe to call twice

	s.Invalidate(ctx, "Property")
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, int32(0), calls.Load())
}

func TestQueryAs_TypedResult(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	v, err := QueryAs(ctx, s, "typed", nil, func(ctx context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v)
}
