// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"fmt"
	"slices"

	"github.com/taibuivan/fisheye/internal/core/catalog"
	"github.com/taibuivan/fisheye/internal/core/navigation"
	"github.com/taibuivan/fisheye/internal/platform/apperr"
	"github.com/taibuivan/fisheye/pkg/slice"
)

// resourceName is used in NOT_FOUND and ALREADY_INITIALIZED messages.
const resourceName = "Media"

// Store caches every media of the source document in load order.
//
// # Concurrency
//
// Store is safe for concurrent use. Loading is single-flight, and
// [Store.ReplaceLikes] swaps in a new sequence instead of editing the old one.
type Store struct {
	cache  *catalog.Lazy[[]Media]
	ledger Ledger
}

// NewStore returns an uninitialized store. Counters persisted in the ledger
// take precedence over the likes of the source document.
func NewStore(source catalog.Source, ledger Ledger) *Store {
	store := &Store{ledger: ledger}
	store.cache = catalog.NewLazy(resourceName+" store", func(ctx context.Context) ([]Media, error) {
		return store.read(ctx, source)
	})
	return store
}

// read builds the media of a document with the ledger counts applied.
func (store *Store) read(ctx context.Context, source catalog.Source) ([]Media, error) {
	doc, err := source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	sequence, err := FromRecords(doc.Media)
	if err != nil {
		return nil, err
	}

	return overlayCounts(ctx, store.ledger, sequence)
}

// Load returns every media in load order, fetching on first use.
func (store *Store) Load(context context.Context) ([]Media, error) {
	sequence, err := store.cache.Get(context)
	if err != nil {
		return nil, err
	}
	return slices.Clone(sequence), nil
}

// FindByID returns the media with the given id.
func (store *Store) FindByID(context context.Context, id int) (Media, error) {
	sequence, err := store.cache.Get(context)
	if err != nil {
		return Media{}, err
	}

	index, ok := navigation.IndexOf(id, sequence)
	if !ok {
		return Media{}, apperr.NotFound(resourceName)
	}
	return sequence[index], nil
}

// FindAllByOwner returns the media of a photographer in load order.
// The result is empty, never nil, when the photographer has none.
func (store *Store) FindAllByOwner(context context.Context, photographerID int) ([]Media, error) {
	sequence, err := store.cache.Get(context)
	if err != nil {
		return nil, err
	}
	return ownedBy(sequence, photographerID), nil
}

// FindAllByOwnerIn reads the media of a photographer straight from source,
// bypassing the cache. Ledger counts apply exactly as they do at load.
func (store *Store) FindAllByOwnerIn(ctx context.Context, source catalog.Source, photographerID int) ([]Media, error) {
	sequence, err := store.read(ctx, source)
	if err != nil {
		return nil, err
	}
	return ownedBy(sequence, photographerID), nil
}

// ReplaceLikes writes a like count into the cached sequence and returns the
// updated media. Counts never decrease: a count lower than the cached one
// comes from a like that finished out of order and leaves the cache as is.
// It fails with NOT_FOUND when the id is not cached.
func (store *Store) ReplaceLikes(mediaID, likes int) (Media, error) {
	var updated Media

	err := store.cache.Update(func(current []Media) ([]Media, error) {
		index, ok := navigation.IndexOf(mediaID, current)
		if !ok {
			return nil, apperr.NotFound(resourceName)
		}

		if likes <= current[index].Likes {
			updated = current[index]
			return current, nil
		}

		next := slices.Clone(current)
		next[index].Likes = likes
		updated = next[index]
		return next, nil
	})
	if err != nil {
		return Media{}, err
	}

	return updated, nil
}

// Seed populates the store without fetching.
func (store *Store) Seed(sequence []Media) error {
	return store.cache.Set(slices.Clone(sequence))
}

// State reports the load state.
func (store *Store) State() catalog.State { return store.cache.State() }

// Err returns the last load failure while the store is in the failed state.
func (store *Store) Err() error { return store.cache.Err() }

func ownedBy(sequence []Media, photographerID int) []Media {
	owned := slice.Filter(sequence, func(m Media) bool {
		return m.PhotographerID == photographerID
	})
	if owned == nil {
		return []Media{}
	}
	return owned
}

func overlayCounts(ctx context.Context, ledger Ledger, sequence []Media) ([]Media, error) {
	ids := slice.Map(sequence, Media.Identity)

	counts, err := ledger.Counts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("media: read like ledger: %w", err)
	}

	for i := range sequence {
		if likes, ok := counts[sequence[i].ID]; ok {
			sequence[i].Likes = likes
		}
	}
	return sequence, nil
}
