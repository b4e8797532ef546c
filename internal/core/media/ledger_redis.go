// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/fisheye/internal/platform/apperr"
	"github.com/taibuivan/fisheye/internal/platform/constants"
)

// RedisLedger stores one counter key per media ("media:likes:{id}").
type RedisLedger struct {
	client *redis.Client
}

// NewRedisLedger wraps a connected client.
func NewRedisLedger(client *redis.Client) *RedisLedger {
	return &RedisLedger{client: client}
}

func likesKey(mediaID int) string {
	return constants.RedisPrefixMediaLikes + strconv.Itoa(mediaID)
}

// Counts implements [Ledger] with a single MGET.
func (ledger *RedisLedger) Counts(ctx context.Context, mediaIDs []int) (map[int]int, error) {
	counts := make(map[int]int)
	if len(mediaIDs) == 0 {
		return counts, nil
	}

	keys := make([]string, len(mediaIDs))
	for i, id := range mediaIDs {
		keys[i] = likesKey(id)
	}

	values, err := ledger.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("redis mget likes: %w", err))
	}

	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		likes, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperr.Internal(fmt.Errorf("redis likes of media %d: %w", mediaIDs[i], err))
		}
		counts[mediaIDs[i]] = likes
	}
	return counts, nil
}

// Increment implements [Ledger]. SETNX seeds the counter and INCR bumps it
// inside one MULTI/EXEC, so concurrent likes never lose an increment.
func (ledger *RedisLedger) Increment(ctx context.Context, mediaID, base int) (int, error) {
	key := likesKey(mediaID)

	var incr *redis.IntCmd
	_, err := ledger.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, key, base, 0)
		incr = pipe.Incr(ctx, key)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, apperr.Internal(fmt.Errorf("redis incr likes of media %d: %w", mediaID, err))
	}

	return int(incr.Val()), nil
}
