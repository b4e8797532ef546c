// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package render turns catalog entities into the cards displayed by the site.

The cards are plain JSON view models: the landing page photographer card, the
gallery media card and the lightbox card. Rendering is also where media files
are located on disk, since their folder depends on the owning photographer.
*/
package render

import (
	"fmt"
	"path"
	"strings"

	"github.com/taibuivan/fisheye/internal/core/media"
	"github.com/taibuivan/fisheye/internal/core/photographer"
	"github.com/taibuivan/fisheye/internal/platform/constants"
	"github.com/taibuivan/fisheye/pkg/pointer"
	"github.com/taibuivan/fisheye/pkg/slice"
)

// # Card Models

// PhotographerCard is shown on the landing page and in the portfolio header.
type PhotographerCard struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Tagline     string `json:"tagline"`
	PricePerDay string `json:"pricePerDay"`
	Portrait    string `json:"portrait"`
	Page        string `json:"page"`
}

// MediaCard is one tile of the gallery.
type MediaCard struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Kind   string `json:"kind"`
	Source string `json:"src"`
	Likes  int    `json:"likes"`
	Date   string `json:"date"`
	Price  int    `json:"price"`
}

// LightboxCard is the enlarged view of a media with its navigation targets.
type LightboxCard struct {
	Media    MediaCard `json:"media"`
	Previous *int      `json:"previousId"`
	Next     *int      `json:"nextId"`
}

// Renderer builds cards.
type Renderer interface {
	PhotographerCard(p photographer.Photographer) PhotographerCard
	MediaCards(owner photographer.Photographer, sequence []media.Media) []MediaCard
	LightboxCard(owner photographer.Photographer, lightbox media.Lightbox) LightboxCard
}

// # Default Renderer

// Cards is the default [Renderer]. Asset paths are prefixed with a base that
// may be empty (relative paths), a directory, or a CDN URL.
type Cards struct {
	assetsBase string
}

// NewCards returns a [Cards] renderer.
func NewCards(assetsBase string) *Cards {
	return &Cards{assetsBase: strings.TrimSuffix(assetsBase, "/")}
}

// PhotographerCard implements [Renderer].
func (cards *Cards) PhotographerCard(p photographer.Photographer) PhotographerCard {
	return PhotographerCard{
		ID:          p.ID,
		Name:        p.Name,
		Location:    p.Location(),
		Tagline:     p.Tagline,
		PricePerDay: p.PricePerDay(),
		Portrait:    cards.asset(p.PortraitPath()),
		Page:        fmt.Sprintf("photographer.html?id=%d", p.ID),
	}
}

// MediaFolder is the folder holding the media files of a photographer,
// with a trailing slash, e.g. "assets/images/Mimi/".
func (cards *Cards) MediaFolder(owner photographer.Photographer) string {
	return cards.asset(path.Join(constants.ImageFolder, owner.FirstName())) + "/"
}

// MediaCards implements [Renderer]. Each media is placed in the owner's
// folder; the input sequence is not modified.
func (cards *Cards) MediaCards(owner photographer.Photographer, sequence []media.Media) []MediaCard {
	folder := cards.MediaFolder(owner)
	return slice.Map(sequence, func(m media.Media) MediaCard {
		return mediaCard(m.WithFolder(folder))
	})
}

// LightboxCard implements [Renderer].
func (cards *Cards) LightboxCard(owner photographer.Photographer, lightbox media.Lightbox) LightboxCard {
	located := lightbox.Media.WithFolder(cards.MediaFolder(owner))
	return LightboxCard{
		Media:    mediaCard(located),
		Previous: copyID(lightbox.Neighbors.Previous),
		Next:     copyID(lightbox.Neighbors.Next),
	}
}

func mediaCard(m media.Media) MediaCard {
	return MediaCard{
		ID:     m.ID,
		Title:  m.Title,
		Kind:   m.Kind.String(),
		Source: m.Folder + m.Filename,
		Likes:  m.Likes,
		Date:   m.Date.Format(constants.DateLayout),
		Price:  m.Price,
	}
}

func (cards *Cards) asset(relative string) string {
	if cards.assetsBase == "" {
		return relative
	}
	return cards.assetsBase + "/" + relative
}

func copyID(id *int) *int {
	if id == nil {
		return nil
	}
	return pointer.To(*id)
}
