// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"sync"
)

// # Like Ledger

// Ledger persists like counters. It is the source of truth for likes once a
// media has been liked at least once.
type Ledger interface {
	// Counts returns the stored counters of the given ids. Ids that were never
	// liked are absent from the map.
	Counts(ctx context.Context, mediaIDs []int) (map[int]int, error)

	// Increment atomically adds one to the counter of mediaID and returns the
	// new value. A missing counter starts from base.
	Increment(ctx context.Context, mediaID, base int) (int, error)
}

// MemoryLedger keeps counters in process memory.
type MemoryLedger struct {
	mu     sync.Mutex
	counts map[int]int
}

// NewMemoryLedger returns an empty [MemoryLedger].
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{counts: make(map[int]int)}
}

// Counts implements [Ledger].
func (ledger *MemoryLedger) Counts(_ context.Context, mediaIDs []int) (map[int]int, error) {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	counts := make(map[int]int)
	for _, id := range mediaIDs {
		if likes, ok := ledger.counts[id]; ok {
			counts[id] = likes
		}
	}
	return counts, nil
}

// Increment implements [Ledger].
func (ledger *MemoryLedger) Increment(_ context.Context, mediaID, base int) (int, error) {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	likes, ok := ledger.counts[mediaID]
	if !ok {
		likes = base
	}
	likes++
	ledger.counts[mediaID] = likes
	return likes, nil
}
