// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package render_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/fisheye/internal/core/media"
	"github.com/taibuivan/fisheye/internal/core/navigation"
	"github.com/taibuivan/fisheye/internal/core/photographer"
	"github.com/taibuivan/fisheye/internal/render"
	"github.com/taibuivan/fisheye/pkg/pointer"
)

var mimi = photographer.Photographer{
	ID: 243, Name: "Mimi Keel", City: "London", Country: "UK",
	Tagline: "Voir le beau dans le quotidien", Price: 400, Portrait: "MimiKeel.jpg",
}

var rainbow = media.Media{
	ID: 342550, PhotographerID: 243, Title: "Arc-en-ciel", Filename: "Travel_Rainbow.jpg",
	Kind: media.KindImage, Likes: 62, Date: time.Date(2011, 12, 8, 0, 0, 0, 0, time.UTC), Price: 55,
}

// Compile-time check that Cards satisfies Renderer.
var _ render.Renderer = (*render.Cards)(nil)

func TestPhotographerCard(t *testing.T) {
	card := render.NewCards("").PhotographerCard(mimi)

	assert.Equal(t, "London, UK", card.Location)
	assert.Equal(t, "400€/Jour", card.PricePerDay)
	assert.Equal(t, "assets/photographers/MimiKeel.jpg", card.Portrait)
	assert.Equal(t, "photographer.html?id=243", card.Page)
}

func TestMediaFolder(t *testing.T) {
	tests := []struct {
		name string
		base string
		want string
	}{
		{"relative", "", "assets/images/Mimi/"},
		{"cdn", "https://cdn.example.com/", "https://cdn.example.com/assets/images/Mimi/"},
		{"directory", "/srv/static", "/srv/static/assets/images/Mimi/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render.NewCards(tt.base).MediaFolder(mimi))
		})
	}
}

func TestMediaCards(t *testing.T) {
	sequence := []media.Media{rainbow}

	cards := render.NewCards("").MediaCards(mimi, sequence)
	require.Len(t, cards, 1)

	assert.Equal(t, "assets/images/Mimi/Travel_Rainbow.jpg", cards[0].Source)
	assert.Equal(t, "image", cards[0].Kind)
	assert.Equal(t, "2011-12-08", cards[0].Date)
	assert.Empty(t, sequence[0].Folder, "input sequence must stay untouched")
}

func TestLightboxCard(t *testing.T) {
	lightbox := media.Lightbox{
		Media:     rainbow,
		Neighbors: navigation.Neighbors{Previous: pointer.To(1), Next: nil},
	}

	card := render.NewCards("").LightboxCard(mimi, lightbox)

	assert.Equal(t, 342550, card.Media.ID)
	require.NotNil(t, card.Previous)
	assert.Equal(t, 1, *card.Previous)
	assert.Nil(t, card.Next)
}
