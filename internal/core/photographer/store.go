// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package photographer

import (
	"context"
	"slices"

	"github.com/taibuivan/fisheye/internal/core/catalog"
	"github.com/taibuivan/fisheye/internal/core/navigation"
	"github.com/taibuivan/fisheye/internal/platform/apperr"
)

// resourceName is used in NOT_FOUND and ALREADY_INITIALIZED messages.
const resourceName = "Photographer"

// Store caches every photographer of the source document.
//
// # Concurrency
//
// Store is safe for concurrent use. The first Load fetches the document; later
// calls and concurrent first calls share that single fetch.
type Store struct {
	cache *catalog.Lazy[[]Photographer]
}

// NewStore returns an uninitialized store reading from source.
func NewStore(source catalog.Source) *Store {
	return &Store{
		cache: catalog.NewLazy(resourceName+" store", func(ctx context.Context) ([]Photographer, error) {
			doc, err := source.Fetch(ctx)
			if err != nil {
				return nil, err
			}
			return FromRecords(doc.Photographers)
		}),
	}
}

// Load returns every photographer in source order, fetching on first use.
func (store *Store) Load(context context.Context) ([]Photographer, error) {
	photographers, err := store.cache.Get(context)
	if err != nil {
		return nil, err
	}
	return slices.Clone(photographers), nil
}

// FindByID returns the photographer with the given id.
func (store *Store) FindByID(context context.Context, id int) (Photographer, error) {
	photographers, err := store.cache.Get(context)
	if err != nil {
		return Photographer{}, err
	}

	index, ok := navigation.IndexOf(id, photographers)
	if !ok {
		return Photographer{}, apperr.NotFound(resourceName)
	}
	return photographers[index], nil
}

// Seed populates the store without fetching.
func (store *Store) Seed(photographers []Photographer) error {
	return store.cache.Set(slices.Clone(photographers))
}

// State reports the load state.
func (store *Store) State() catalog.State { return store.cache.State() }

// Err returns the last load failure while the store is in the failed state.
func (store *Store) Err() error { return store.cache.Err() }
