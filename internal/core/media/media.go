// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package media holds the gallery side of the catalog: the media entity, its
store, the sort engine, and the like flow.

# Value Semantics

[Media] is a plain value. Stores hand out copies, and the like flow returns an
updated copy. The cached sequence is replaced on write and never edited in
place, so a reader never observes a half-applied like.

# Like Flow

	LikeController.IncrementLike
	  ├── refetch canonical record from the source
	  ├── Ledger.Increment (exactly +1, persisted)
	  ├── Store.ReplaceLikes (cache reconciliation)
	  └── LikePublisher.PublishLike (best effort)
*/
package media

import (
	"fmt"
	"path"
	"regexp"
	"time"

	"github.com/taibuivan/fisheye/internal/core/catalog"
	"github.com/taibuivan/fisheye/internal/platform/apperr"
	"github.com/taibuivan/fisheye/internal/platform/constants"
)

// # Media Kind

// Kind tells whether a media file is a picture or a movie.
type Kind int

const (
	KindImage Kind = iota + 1
	KindVideo
)

var (
	imagePattern = regexp.MustCompile(`(?i)\.(gif|jpg|jpeg|tiff|png)$`)
	videoPattern = regexp.MustCompile(`(?i)\.(mp4|avi|mpg|webm|mov)$`)
)

// String returns "image" or "video".
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind as its name in JSON.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// KindOf infers the kind from the filename extension.
// The media id only serves the error message.
func KindOf(mediaID int, filename string) (Kind, error) {
	switch {
	case imagePattern.MatchString(filename):
		return KindImage, nil
	case videoPattern.MatchString(filename):
		return KindVideo, nil
	default:
		return 0, apperr.UnrecognizedMediaKind(mediaID, filename)
	}
}

// # Entity

// Media is a picture or video published by a photographer.
type Media struct {
	ID             int       `json:"id"`
	PhotographerID int       `json:"photographerId"`
	Title          string    `json:"title"`
	Filename       string    `json:"filename"`
	Kind           Kind      `json:"kind"`
	Likes          int       `json:"likes"`
	Date           time.Time `json:"date"`
	Price          int       `json:"price"`

	// Folder is the directory holding the file. It is set by the render layer.
	Folder string `json:"folder,omitempty"`
}

// Identity implements navigation.Identifiable.
func (m Media) Identity() int { return m.ID }

// Path joins the folder and the filename.
func (m Media) Path() string {
	return path.Join(m.Folder, m.Filename)
}

// WithFolder returns a copy located in folder.
func (m Media) WithFolder(folder string) Media {
	m.Folder = folder
	return m
}

// # Construction

// FromRecord builds a [Media] from a source record.
//
// A record carrying both or neither of image and video, or a filename with an
// unknown extension, fails with UNRECOGNIZED_MEDIA_KIND. Invalid fields fail
// with VALIDATION_ERROR.
func FromRecord(record catalog.MediaRecord) (Media, error) {
	filename, ok := record.Filename()
	if !ok {
		return Media{}, apperr.UnrecognizedMediaKind(record.ID, filename)
	}

	kind, err := KindOf(record.ID, filename)
	if err != nil {
		return Media{}, err
	}

	if err := record.Validate(); err != nil {
		return Media{}, err
	}

	date, err := time.Parse(constants.DateLayout, record.Date)
	if err != nil {
		return Media{}, apperr.ValidationError("Invalid date", apperr.FieldError{Field: "date", Message: err.Error()})
	}

	return Media{
		ID:             record.ID,
		PhotographerID: record.PhotographerID,
		Title:          record.Title,
		Filename:       filename,
		Kind:           kind,
		Likes:          record.Likes,
		Date:           date,
		Price:          record.Price,
	}, nil
}

// FromRecords converts every record in order. The first bad record aborts the
// conversion and nothing is returned.
func FromRecords(records []catalog.MediaRecord) ([]Media, error) {
	sequence := make([]Media, 0, len(records))
	for _, record := range records {
		media, err := FromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("media %d: %w", record.ID, err)
		}
		sequence = append(sequence, media)
	}
	return sequence, nil
}
