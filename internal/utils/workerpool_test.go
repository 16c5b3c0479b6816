package utils

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelForEach(t *testing.T) {
	t.Parallel()

	t.Run("processes all items", func(t *testing.T) {
		items := []int{1, 2, 3, 4, 5}
		var sum atomic.Int64

		errs := ParallelForEach(context.Background(), items, 3, func(_ context.Context, n int) error {
			sum.Add(int64(n))
			return nil
		})

		require.NoError(t, FirstError(errs))
		assert.Equal(t, int64(15), sum.Load())
	})

	t.Run("collects errors per item", func(t *testing.T) {
		items := []int{1, 2, 3}
		wantErr := errors.New("item 2 failed")

		errs := ParallelForEach(context.Background(), items, 2, func(_ context.Context, n int) error {
			if n == 2 {
				return wantErr
			}
			return nil
		})

		require.Len(t, errs, 3)
		assert.NoError(t, errs[0])
		assert.ErrorIs(t, errs[1], wantErr)
		assert.NoError(t, errs[2])
	})

	t.Run("bounds concurrency", func(t *testing.T) {
		const workers = 2
		var active, peak atomic.Int32
		var mu sync.Mutex

		items := make([]int, 20)
		ParallelForEach(context.Background(), items, workers, func(_ context.Context, _ int) error {
			n := active.Add(1)
			mu.Lock()
			if n > peak.Load() {
				peak.Store(n)
			}
			mu.Unlock()
			active.Add(-1)
			return nil
		})

		assert.LessOrEqual(t, peak.Load(), int32(workers))
	})

	t.Run("zero workers clamps to one", func(t *testing.T) {
		var count atomic.Int32
		errs := ParallelForEach(context.Background(), []int{1, 2}, 0, func(_ context.Context, _ int) error {
			count.Add(1)
			return nil
		})
		require.NoError(t, FirstError(errs))
		assert.Equal(t, int32(2), count.Load())
	})

	t.Run("cancelled context stops submission", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		items := make([]int, 100)
		var count atomic.Int32
		ParallelForEach(ctx, items, 4, func(_ context.Context, _ int) error {
			count.Add(1)
			return nil
		})

		assert.Less(t, count.Load(), int32(100))
	})
}

func TestFirstError(t *testing.T) {
	t.Parallel()

	err1 := errors.New("one")
	err2 := errors.New("two")

	assert.NoError(t, FirstError(nil))
	assert.NoError(t, FirstError([]error{nil, nil}))
	assert.ErrorIs(t, FirstError([]error{nil, err1, err2}), err1)
}

func TestCollectErrors(t *testing.T) {
	t.Parallel()

	err1 := errors.New("one")
	err2 := errors.New("two")

	assert.Empty(t, CollectErrors([]error{nil, nil}))
	assert.Equal(t, []error{err1, err2}, CollectErrors([]error{nil, err1, nil, err2}))
}
