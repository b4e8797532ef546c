// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/fisheye/internal/core/catalog"
	"github.com/taibuivan/fisheye/internal/core/media"
	"github.com/taibuivan/fisheye/internal/platform/apperr"
)

func TestStore_SequentialLoads_FetchOnce(t *testing.T) {
	source := newDocumentSource(scenario()...)
	store := media.NewStore(source, media.NewMemoryLedger())

	first, err := store.Load(context.Background())
	require.NoError(t, err)
	second, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), source.calls.Load())
}

func TestStore_ConcurrentLoads_FetchOnce(t *testing.T) {
	source := newDocumentSource(scenario()...)
	store := media.NewStore(source, media.NewMemoryLedger())

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.FindAllByOwner(context.Background(), 7)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), source.calls.Load())
}

func TestStore_FindByIDAndOwner(t *testing.T) {
	records := append(scenario(), image(40, 8, 1, "Dune", "2018-06-01"))
	store := media.NewStore(newDocumentSource(records...), media.NewMemoryLedger())

	m, err := store.FindByID(context.Background(), 40)
	require.NoError(t, err)
	assert.Equal(t, 8, m.PhotographerID)

	_, err = store.FindByID(context.Background(), 404)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	owned, err := store.FindAllByOwner(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ids(owned))

	none, err := store.FindAllByOwner(context.Background(), 999)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestStore_LoadFailureIsAtomic(t *testing.T) {
	records := scenario()
	records[2].Image = "Cascade.bmp"
	source := newDocumentSource(records...)
	store := media.NewStore(source, media.NewMemoryLedger())

	_, err := store.Load(context.Background())
	assert.True(t, apperr.HasCode(err, apperr.CodeUnrecognizedMediaKind))
	assert.Equal(t, catalog.StateFailed, store.State())

	// Fixing the source lets the next load succeed.
	source.replace(scenario()...)
	sequence, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, sequence, 3)
	assert.Equal(t, catalog.StateReady, store.State())
}

func TestStore_FetchFailed(t *testing.T) {
	source := newDocumentSource()
	source.err = apperr.FetchFailed("document", errors.New("dial tcp: refused"))
	store := media.NewStore(source, media.NewMemoryLedger())

	_, err := store.FindAllByOwner(context.Background(), 7)
	assert.True(t, apperr.HasCode(err, apperr.CodeFetchFailed))
	assert.True(t, apperr.HasCode(store.Err(), apperr.CodeFetchFailed))
}

func TestStore_LedgerOverlay(t *testing.T) {
	ledger := media.NewMemoryLedger()
	_, err := ledger.Increment(context.Background(), 3, 40)
	require.NoError(t, err)

	store := media.NewStore(newDocumentSource(scenario()...), ledger)

	m, err := store.FindByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 41, m.Likes)
}

func TestStore_ReplaceLikes(t *testing.T) {
	store := media.NewStore(newDocumentSource(scenario()...), media.NewMemoryLedger())

	_, err := store.ReplaceLikes(1, 6)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound), "nothing cached yet")

	before, err := store.Load(context.Background())
	require.NoError(t, err)

	updated, err := store.ReplaceLikes(1, 6)
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Likes)

	after, err := store.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 6, after.Likes)
	assert.Equal(t, 5, before[0].Likes, "earlier readers keep their snapshot")

	_, err = store.ReplaceLikes(77, 1)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestStore_ReplaceLikes_NeverDecreases keeps the highest count when likes
report back out of order.
*/
func TestStore_ReplaceLikes_NeverDecreases(t *testing.T) {
	store := media.NewStore(newDocumentSource(scenario()...), media.NewMemoryLedger())
	_, err := store.Load(context.Background())
	require.NoError(t, err)

	_, err = store.ReplaceLikes(1, 8)
	require.NoError(t, err)

	late, err := store.ReplaceLikes(1, 7)
	require.NoError(t, err)
	assert.Equal(t, 8, late.Likes)

	cached, err := store.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 8, cached.Likes)
}

func TestStore_FindAllByOwnerIn_AppliesLedger(t *testing.T) {
	ctx := context.Background()
	ledger := media.NewMemoryLedger()
	_, err := ledger.Increment(ctx, 2, 10)
	require.NoError(t, err)

	store := media.NewStore(newDocumentSource(), ledger)
	owned, err := store.FindAllByOwnerIn(ctx, newDocumentSource(scenario()...), 7)
	require.NoError(t, err)

	require.Len(t, owned, 3)
	assert.Equal(t, 11, owned[1].Likes)
	assert.Equal(t, catalog.StateUninitialized, store.State(), "the cache is not touched")
}

func TestStore_Seed(t *testing.T) {
	source := newDocumentSource()
	store := media.NewStore(source, media.NewMemoryLedger())

	require.NoError(t, store.Seed(mustMedia(t, scenario()...)))
	err := store.Seed(nil)
	assert.True(t, apperr.HasCode(err, apperr.CodeAlreadyInitialized))

	owned, err := store.FindAllByOwner(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, owned, 3)
	assert.Equal(t, int32(0), source.calls.Load())
}
