package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewandler/cacheroo-go/core/store"
)

func TestLoading_LoadsOnceThenHits(t *testing.T) {
	var calls atomic.Int32
	l := NewLoading[string](NewExpiring[string](), 0, func(ctx context.Context, key string) (string, error) {
		calls.Add(1)
		return "value-of-" + key, nil
	})

	v, err := l.Get(t.Context(), "a")
	require.NoError(t, err)
	require.Equal(t, "value-of-a", v)

	v, err = l.Get(t.Context(), "a")
	require.NoError(t, err)
	require.Equal(t, "value-of-a", v)
	require.EqualValues(t, 1, calls.Load())

	l.Invalidate("a")
	_, err = l.Get(t.Context(), "a")
	require.NoError(t, err)
	require.EqualValues(t, 2, calls.Load())
}

func TestLoading_CollapsesConcurrentMisses(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	l := NewLoading[int](NewExpiring[int](), 0, func(ctx context.Context, key string) (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	})

	const callers = 10
	var (
		wg      sync.WaitGroup
		started sync.WaitGroup
	)
	results := make([]int, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		started.Add(1)
		go func(i int) {
			defer wg.Done()
			started.Done()
			v, err := l.Get(context.Background(), "k")
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	started.Wait()
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, v := range results {
		require.Equal(t, 42, v)
	}
	// Late callers may find the value already cached; none may load twice.
	require.EqualValues(t, 1, calls.Load())
}

func TestLoading_ErrorNotCached(t *testing.T) {
	boom := errors.New("boom")
	var fail atomic.Bool
	fail.Store(true)

	l := NewLoading[int](NewExpiring[int](), 0, func(ctx context.Context, key string) (int, error) {
		if fail.Load() {
			return 0, boom
		}
		return 1, nil
	})

	_, err := l.Get(t.Context(), "k")
	require.ErrorIs(t, err, boom)

	fail.Store(false)
	v, err := l.Get(t.Context(), "k")
	require.NoError(t, err)
	require.Equal(t, 1, v)
}

func TestLoading_TTL(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var calls atomic.Int32
	l := NewLoading[int](NewExpiring[int](store.WithClock(clock)), time.Minute, func(ctx context.Context, key string) (int, error) {
		return int(calls.Add(1)), nil
	})

	v, err := l.Get(t.Context(), "k")
	require.NoError(t, err)
	require.Equal(t, 1, v)

	clock.Advance(time.Minute)

	require.Eventually(t, func() bool {
		v, err := l.Get(t.Context(), "k")
		return err == nil && v == 2
	}, time.Second, time.Millisecond)
}

func TestLoading_CallerCancelDoesNotFailOthers(t *testing.T) {
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	l := NewLoading[int](NewExpiring[int](), 0, func(ctx context.Context, key string) (int, error) {
		calls.Add(1)
		close(started)
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-release:
			return 7, nil
		}
	})

	ctxA, cancelA := context.WithCancel(t.Context())
	errA := make(chan error, 1)
	go func() {
		_, err := l.Get(ctxA, "k")
		errA <- err
	}()
	<-started

	type result struct {
		v   int
		err error
	}
	resB := make(chan result, 1)
	go func() {
		v, err := l.Get(context.Background(), "k")
		resB <- result{v, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelA()
	require.ErrorIs(t, <-errA, context.Canceled)

	close(release)
	b := <-resB
	require.NoError(t, b.err)
	require.Equal(t, 7, b.v)
	require.EqualValues(t, 1, calls.Load())

	v, ok := l.cache.Get("k")
	require.True(t, ok, "shared load must still be cached")
	require.Equal(t, 7, v)
}
