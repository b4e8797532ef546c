// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package portfolio

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/fisheye/internal/core/media"
	requestutil "github.com/taibuivan/fisheye/internal/platform/request"
	"github.com/taibuivan/fisheye/internal/platform/respond"
	"github.com/taibuivan/fisheye/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer of the portfolio pages.
type Handler struct {
	service *Service
}

// NewHandler constructs a new portfolio [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the portfolio endpoints, meant to be
// mounted under the versioned API prefix.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Photographers
	router.Route("/photographers", func(photographers chi.Router) {
		photographers.Get("/", handler.listPhotographers)
		photographers.Get("/{id}", handler.getPhotographer)
		photographers.Get("/{id}/media", handler.getGallery)
		photographers.Get("/{id}/media/{mediaID}/lightbox", handler.getLightbox)
		photographers.Post("/{id}/media/{mediaID}/likes", handler.likeMedia)
	})

	// ## Page Bootstrap
	router.Get("/pages/photographer", handler.getPhotographerPage)

	return router
}

func (handler *Handler) listPhotographers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	cards, total, err := handler.service.ListPhotographers(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, cards, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getPhotographer(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id", "Photographer")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	card, err := handler.service.Photographer(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, card)
}

func (handler *Handler) getGallery(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id", "Photographer")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	key := media.ParseSortKey(requestutil.Query(request, "sort"))

	gallery, err := handler.service.Gallery(request.Context(), id, key)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, gallery)
}

func (handler *Handler) getLightbox(writer http.ResponseWriter, request *http.Request) {
	id, mediaID, err := mediaPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	key := media.ParseSortKey(requestutil.Query(request, "sort"))
	order := ParseOrder(requestutil.Query(request, "order"))

	card, err := handler.service.Lightbox(request.Context(), id, mediaID, key, order)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, card)
}

func (handler *Handler) likeMedia(writer http.ResponseWriter, request *http.Request) {
	id, mediaID, err := mediaPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	liked, err := handler.service.Like(request.Context(), id, mediaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, liked)
}

// getPhotographerPage serves GET /pages/photographer?id=243.
// A missing or non-numeric id is reported as NOT_FOUND.
func (handler *Handler) getPhotographerPage(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.QueryID(request, "id", "Photographer")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	key := media.ParseSortKey(requestutil.Query(request, "sort"))

	page, err := handler.service.Page(request.Context(), id, key)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, page)
}

func mediaPath(request *http.Request) (int, int, error) {
	id, err := requestutil.IntParam(request, "id", "Photographer")
	if err != nil {
		return 0, 0, err
	}
	mediaID, err := requestutil.IntParam(request, "mediaID", "Media")
	if err != nil {
		return 0, 0, err
	}
	return id, mediaID, nil
}
