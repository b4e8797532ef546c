// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"log/slog"

	"github.com/taibuivan/fisheye/internal/core/catalog"
	"github.com/taibuivan/fisheye/internal/core/navigation"
	"github.com/taibuivan/fisheye/internal/platform/apperr"
	"github.com/taibuivan/fisheye/pkg/slice"
)

// # View Models

// Gallery is the sorted media of one photographer.
type Gallery struct {
	PhotographerID int     `json:"photographerId"`
	Sort           SortKey `json:"sort"`
	Media          []Media `json:"media"`
	TotalLikes     int     `json:"totalLikes"`
}

// Lightbox is one media with the ids around it.
type Lightbox struct {
	Media     Media                `json:"media"`
	Neighbors navigation.Neighbors `json:"neighbors"`
}

// LikeResult is the outcome of a like.
type LikeResult struct {
	Media      Media `json:"media"`
	TotalLikes int   `json:"totalLikes"`
}

// TotalLikes sums the likes of a sequence.
func TotalLikes(sequence []Media) int {
	return slice.Reduce(sequence, 0, func(total int, m Media) int {
		return total + m.Likes
	})
}

// # Service Layer

// Service serves galleries, lightbox navigation and likes.
type Service struct {
	store  *Store
	origin catalog.Source
	sorter *Sorter
	likes  *LikeController
	logger *slog.Logger
}

// NewService constructs a [Service]. The origin must be an unmemoised source;
// it is read when a photographer has no cached media.
func NewService(store *Store, origin catalog.Source, sorter *Sorter, likes *LikeController, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		origin: origin,
		sorter: sorter,
		likes:  likes,
		logger: logger,
	}
}

/*
OwnerSequence returns the media of a photographer in load order.

Description: The cache answers first. When it holds nothing for the
photographer, the source document is read again before concluding that the
gallery is empty.
*/
func (service *Service) OwnerSequence(context context.Context, photographerID int) ([]Media, error) {
	sequence, err := service.store.FindAllByOwner(context, photographerID)
	if err != nil || len(sequence) > 0 {
		return sequence, err
	}

	sequence, err = service.store.FindAllByOwnerIn(context, service.origin, photographerID)
	if err != nil {
		return nil, err
	}

	if len(sequence) > 0 {
		service.logger.Info("media_found_on_refetch",
			slog.Int("photographer_id", photographerID),
			slog.Int("count", len(sequence)),
		)
	}
	return sequence, nil
}

// Gallery returns the media of a photographer sorted by key.
func (service *Service) Gallery(context context.Context, photographerID int, key SortKey) (Gallery, error) {
	sequence, err := service.OwnerSequence(context, photographerID)
	if err != nil {
		return Gallery{}, err
	}

	return Gallery{
		PhotographerID: photographerID,
		Sort:           key,
		Media:          service.sorter.Sort(sequence, key),
		TotalLikes:     TotalLikes(sequence),
	}, nil
}

// NeighborsInLoadOrder opens a media in the lightbox, resolving previous and
// next in the order of the source document.
func (service *Service) NeighborsInLoadOrder(context context.Context, photographerID, mediaID int) (Lightbox, error) {
	sequence, err := service.OwnerSequence(context, photographerID)
	if err != nil {
		return Lightbox{}, err
	}
	return lightbox(sequence, mediaID)
}

// NeighborsInDisplayOrder opens a media in the lightbox, resolving previous
// and next in the gallery order selected by key.
func (service *Service) NeighborsInDisplayOrder(context context.Context, photographerID, mediaID int, key SortKey) (Lightbox, error) {
	sequence, err := service.OwnerSequence(context, photographerID)
	if err != nil {
		return Lightbox{}, err
	}
	return lightbox(service.sorter.Sort(sequence, key), mediaID)
}

// Like adds one like and returns the media with the new total of its owner.
func (service *Service) Like(context context.Context, photographerID, mediaID int) (LikeResult, error) {
	updated, err := service.likes.IncrementLike(context, mediaID, photographerID)
	if err != nil {
		return LikeResult{}, err
	}

	sequence, err := service.OwnerSequence(context, photographerID)
	if err != nil {
		return LikeResult{}, err
	}

	// A sequence read around the cache does not carry the new count yet.
	if index, ok := navigation.IndexOf(updated.ID, sequence); ok && updated.Likes > sequence[index].Likes {
		sequence[index] = updated
	}

	return LikeResult{Media: updated, TotalLikes: TotalLikes(sequence)}, nil
}

func lightbox(sequence []Media, mediaID int) (Lightbox, error) {
	index, ok := navigation.IndexOf(mediaID, sequence)
	if !ok {
		return Lightbox{}, apperr.NotFound(resourceName)
	}
	return Lightbox{
		Media:     sequence[index],
		Neighbors: navigation.Resolve(mediaID, sequence),
	}, nil
}
