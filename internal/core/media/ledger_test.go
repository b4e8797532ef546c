// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media_test

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/fisheye/internal/core/media"
)

func newRedisLedger(t *testing.T) (*media.RedisLedger, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return media.NewRedisLedger(client), server
}

func TestLedgers(t *testing.T) {
	ledgers := map[string]func(t *testing.T) media.Ledger{
		"memory": func(*testing.T) media.Ledger { return media.NewMemoryLedger() },
		"redis": func(t *testing.T) media.Ledger {
			ledger, _ := newRedisLedger(t)
			return ledger
		},
	}

	for name, build := range ledgers {
		t.Run(name, func(t *testing.T) {
			ledger := build(t)
			ctx := context.Background()

			counts, err := ledger.Counts(ctx, []int{1, 2})
			require.NoError(t, err)
			assert.Empty(t, counts)

			likes, err := ledger.Increment(ctx, 1, 5)
			require.NoError(t, err)
			assert.Equal(t, 6, likes)

			// The base only seeds a missing counter.
			likes, err = ledger.Increment(ctx, 1, 100)
			require.NoError(t, err)
			assert.Equal(t, 7, likes)

			counts, err = ledger.Counts(ctx, []int{1, 2})
			require.NoError(t, err)
			assert.Equal(t, map[int]int{1: 7}, counts)

			counts, err = ledger.Counts(ctx, nil)
			require.NoError(t, err)
			assert.Empty(t, counts)
		})
	}
}

func TestLedgers_ConcurrentIncrements(t *testing.T) {
	const likes = 50

	redisLedger, _ := newRedisLedger(t)
	for name, ledger := range map[string]media.Ledger{"memory": media.NewMemoryLedger(), "redis": redisLedger} {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			for range likes {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := ledger.Increment(context.Background(), 9, 0)
					assert.NoError(t, err)
				}()
			}
			wg.Wait()

			counts, err := ledger.Counts(context.Background(), []int{9})
			require.NoError(t, err)
			assert.Equal(t, likes, counts[9])
		})
	}
}

func TestRedisLedger_KeyLayout(t *testing.T) {
	ledger, server := newRedisLedger(t)

	_, err := ledger.Increment(context.Background(), 342550, 62)
	require.NoError(t, err)

	value, err := server.Get("media:likes:342550")
	require.NoError(t, err)
	assert.Equal(t, "63", value)
}
