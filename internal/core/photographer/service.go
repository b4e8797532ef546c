// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package photographer

import (
	"context"
	"log/slog"

	"github.com/taibuivan/fisheye/internal/core/catalog"
	"github.com/taibuivan/fisheye/internal/core/navigation"
	"github.com/taibuivan/fisheye/internal/platform/apperr"
)

// # Service Layer

// Service answers photographer lookups for the pages.
type Service struct {
	store  *Store
	origin catalog.Source
	logger *slog.Logger
}

// NewService constructs a [Service]. The origin must be an unmemoised source;
// it is read when the cache misses.
func NewService(store *Store, origin catalog.Source, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		origin: origin,
		logger: logger,
	}
}

// ListPhotographers returns every photographer in source order.
func (service *Service) ListPhotographers(context context.Context) ([]Photographer, error) {
	return service.store.Load(context)
}

/*
GetPhotographer finds a photographer by id.

Description: The cached store answers first. On a miss the source document is
fetched again, so a photographer published after the cache was filled is
still served.

Returns:
  - Photographer: The matching record
  - error: NOT_FOUND when neither the cache nor the source knows the id
*/
func (service *Service) GetPhotographer(context context.Context, id int) (Photographer, error) {
	photographer, err := service.store.FindByID(context, id)
	if err == nil || !apperr.HasCode(err, apperr.CodeNotFound) {
		return photographer, err
	}

	return service.Canonical(context, id)
}

// Canonical reads the photographer straight from the source document.
func (service *Service) Canonical(context context.Context, id int) (Photographer, error) {
	doc, err := service.origin.Fetch(context)
	if err != nil {
		return Photographer{}, err
	}

	photographers, err := FromRecords(doc.Photographers)
	if err != nil {
		return Photographer{}, err
	}

	index, ok := navigation.IndexOf(id, photographers)
	if !ok {
		return Photographer{}, apperr.NotFound(resourceName)
	}

	service.logger.Info("photographer_found_on_refetch", slog.Int("photographer_id", id))
	return photographers[index], nil
}
