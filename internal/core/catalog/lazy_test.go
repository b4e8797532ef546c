// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/fisheye/internal/core/catalog"
	"github.com/taibuivan/fisheye/internal/platform/apperr"
)

/*
TestLazy_SequentialLoads_FetchOnce ensures the second Get is served from memory.
*/
func TestLazy_SequentialLoads_FetchOnce(t *testing.T) {
	var calls atomic.Int32
	lazy := catalog.NewLazy("numbers", func(context.Context) ([]int, error) {
		calls.Add(1)
		return []int{1, 2, 3}, nil
	})

	assert.Equal(t, catalog.StateUninitialized, lazy.State())

	first, err := lazy.Get(context.Background())
	require.NoError(t, err)
	second, err := lazy.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, catalog.StateReady, lazy.State())
}

/*
TestLazy_ConcurrentFirstLoads_FetchOnce holds the fetch open until every caller
is waiting, then checks that only one fetch happened.
*/
func TestLazy_ConcurrentFirstLoads_FetchOnce(t *testing.T) {
	const callers = 32

	var calls atomic.Int32
	release := make(chan struct{})
	lazy := catalog.NewLazy("numbers", func(context.Context) ([]int, error) {
		calls.Add(1)
		<-release
		return []int{42}, nil
	})

	var started, done sync.WaitGroup
	started.Add(callers)
	done.Add(callers)

	results := make([][]int, callers)
	for i := range callers {
		go func() {
			defer done.Done()
			started.Done()
			value, err := lazy.Get(context.Background())
			assert.NoError(t, err)
			results[i] = value
		}()
	}

	started.Wait()
	require.Eventually(t, func() bool { return lazy.State() == catalog.StateLoading }, time.Second, time.Millisecond)
	close(release)
	done.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, value := range results {
		assert.Equal(t, []int{42}, value)
	}
}

/*
TestLazy_FailureThenRetry moves through Failed and recovers on the next Get.
*/
func TestLazy_FailureThenRetry(t *testing.T) {
	boom := apperr.FetchFailed("test", errors.New("connection refused"))

	var calls atomic.Int32
	lazy := catalog.NewLazy("numbers", func(context.Context) ([]int, error) {
		if calls.Add(1) == 1 {
			return nil, boom
		}
		return []int{7}, nil
	})

	_, err := lazy.Get(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeFetchFailed))
	assert.Equal(t, catalog.StateFailed, lazy.State())
	assert.Equal(t, boom, lazy.Err())

	value, err := lazy.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{7}, value)
	assert.Equal(t, catalog.StateReady, lazy.State())
	assert.NoError(t, lazy.Err())
}

/*
TestLazy_CallerCancellation stops waiting without aborting the shared load.
*/
func TestLazy_CallerCancellation(t *testing.T) {
	release := make(chan struct{})
	lazy := catalog.NewLazy("numbers", func(ctx context.Context) ([]int, error) {
		<-release
		return []int{1}, ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := lazy.Get(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	require.Eventually(t, func() bool { return lazy.State() == catalog.StateReady }, time.Second, time.Millisecond)
}

/*
TestLazy_Set rejects a second initialisation.
*/
func TestLazy_Set(t *testing.T) {
	lazy := catalog.NewLazy("numbers", func(context.Context) ([]int, error) {
		t.Fatal("fetch must not run after Set")
		return nil, nil
	})

	require.NoError(t, lazy.Set([]int{1}))

	err := lazy.Set([]int{2})
	assert.True(t, apperr.HasCode(err, apperr.CodeAlreadyInitialized))

	value, err := lazy.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1}, value)
}

/*
TestLazy_Update swaps the cached value and refuses to run before a load.
*/
func TestLazy_Update(t *testing.T) {
	lazy := catalog.NewLazy("numbers", func(context.Context) ([]int, error) {
		return []int{1, 2}, nil
	})

	err := lazy.Update(func(current []int) ([]int, error) { return current, nil })
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = lazy.Get(context.Background())
	require.NoError(t, err)

	require.NoError(t, lazy.Update(func(current []int) ([]int, error) {
		return append([]int{0}, current...), nil
	}))

	value, err := lazy.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, value)
}
