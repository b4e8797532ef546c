// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package portfolio assembles the pages of the site from the photographer and
media services and exposes them over HTTP.

# Pages

  - Landing: every photographer as a card, paginated.
  - Photographer: the header card, the sorted gallery and the likes insert.
  - Lightbox: one media with previous and next targets.
*/
package portfolio

import (
	"context"
	"strings"

	"github.com/taibuivan/fisheye/internal/core/media"
	"github.com/taibuivan/fisheye/internal/core/photographer"
	"github.com/taibuivan/fisheye/internal/render"
	"github.com/taibuivan/fisheye/pkg/pagination"
)

// # Navigation Order

// Order selects the sequence used to resolve lightbox neighbours.
type Order string

const (
	// OrderLoad follows the order of the source document.
	OrderLoad Order = "load"
	// OrderDisplay follows the gallery sort currently shown.
	OrderDisplay Order = "display"
)

// ParseOrder maps a query value to an [Order]. Anything but "display" means
// load order.
func ParseOrder(raw string) Order {
	if strings.EqualFold(strings.TrimSpace(raw), string(OrderDisplay)) {
		return OrderDisplay
	}
	return OrderLoad
}

// # View Models

// Insert is the sticky box showing total likes and the daily rate.
type Insert struct {
	TotalLikes  int    `json:"totalLikes"`
	PricePerDay string `json:"pricePerDay"`
}

// GalleryView is the sorted gallery of a photographer.
type GalleryView struct {
	Sort       media.SortKey      `json:"sort"`
	Media      []render.MediaCard `json:"media"`
	TotalLikes int                `json:"totalLikes"`
}

// PageView bootstraps the photographer page in one call.
type PageView struct {
	Photographer render.PhotographerCard `json:"photographer"`
	Gallery      GalleryView             `json:"gallery"`
	Insert       Insert                  `json:"insert"`
}

// LikeView is returned after a like.
type LikeView struct {
	Media      render.MediaCard `json:"media"`
	TotalLikes int              `json:"totalLikes"`
}

// # Service Layer

// Service builds page view models.
type Service struct {
	photographers *photographer.Service
	media         *media.Service
	renderer      render.Renderer
}

// NewService constructs a [Service].
func NewService(photographers *photographer.Service, media *media.Service, renderer render.Renderer) *Service {
	return &Service{
		photographers: photographers,
		media:         media,
		renderer:      renderer,
	}
}

// ListPhotographers returns one page of landing cards and the total count.
func (service *Service) ListPhotographers(context context.Context, params pagination.Params) ([]render.PhotographerCard, int, error) {
	photographers, err := service.photographers.ListPhotographers(context)
	if err != nil {
		return nil, 0, err
	}

	cards := make([]render.PhotographerCard, 0, params.Limit)
	for _, p := range pagination.Window(photographers, params) {
		cards = append(cards, service.renderer.PhotographerCard(p))
	}
	return cards, len(photographers), nil
}

// Photographer returns the header card of a photographer.
func (service *Service) Photographer(context context.Context, id int) (render.PhotographerCard, error) {
	p, err := service.photographers.GetPhotographer(context, id)
	if err != nil {
		return render.PhotographerCard{}, err
	}
	return service.renderer.PhotographerCard(p), nil
}

// Gallery returns the sorted media cards of a photographer.
func (service *Service) Gallery(context context.Context, id int, key media.SortKey) (GalleryView, error) {
	owner, err := service.photographers.GetPhotographer(context, id)
	if err != nil {
		return GalleryView{}, err
	}
	return service.gallery(context, owner, key)
}

// Page returns everything the photographer page needs.
func (service *Service) Page(context context.Context, id int, key media.SortKey) (PageView, error) {
	owner, err := service.photographers.GetPhotographer(context, id)
	if err != nil {
		return PageView{}, err
	}

	gallery, err := service.gallery(context, owner, key)
	if err != nil {
		return PageView{}, err
	}

	return PageView{
		Photographer: service.renderer.PhotographerCard(owner),
		Gallery:      gallery,
		Insert: Insert{
			TotalLikes:  gallery.TotalLikes,
			PricePerDay: owner.PricePerDay(),
		},
	}, nil
}

// Lightbox opens a media and resolves its neighbours in the given order.
func (service *Service) Lightbox(context context.Context, id, mediaID int, key media.SortKey, order Order) (render.LightboxCard, error) {
	owner, err := service.photographers.GetPhotographer(context, id)
	if err != nil {
		return render.LightboxCard{}, err
	}

	var lightbox media.Lightbox
	if order == OrderDisplay {
		lightbox, err = service.media.NeighborsInDisplayOrder(context, id, mediaID, key)
	} else {
		lightbox, err = service.media.NeighborsInLoadOrder(context, id, mediaID)
	}
	if err != nil {
		return render.LightboxCard{}, err
	}

	return service.renderer.LightboxCard(owner, lightbox), nil
}

// Like adds one like to a media of the photographer.
func (service *Service) Like(context context.Context, id, mediaID int) (LikeView, error) {
	owner, err := service.photographers.GetPhotographer(context, id)
	if err != nil {
		return LikeView{}, err
	}

	result, err := service.media.Like(context, id, mediaID)
	if err != nil {
		return LikeView{}, err
	}

	cards := service.renderer.MediaCards(owner, []media.Media{result.Media})
	return LikeView{Media: cards[0], TotalLikes: result.TotalLikes}, nil
}

func (service *Service) gallery(context context.Context, owner photographer.Photographer, key media.SortKey) (GalleryView, error) {
	gallery, err := service.media.Gallery(context, owner.ID, key)
	if err != nil {
		return GalleryView{}, err
	}

	return GalleryView{
		Sort:       gallery.Sort,
		Media:      service.renderer.MediaCards(owner, gallery.Media),
		TotalLikes: gallery.TotalLikes,
	}, nil
}
