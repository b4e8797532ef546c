// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog owns the raw source document of the portfolio and the
load-once machinery shared by every entity store.

# Architecture

  - Document: The JSON payload holding photographers and media records.
  - Source: Where the document comes from (file, http(s), s3).
  - Lazy: A single-flight, fetch-once cache with an explicit state machine.

The entity packages (photographer, media) never talk to a transport directly;
they receive a [Source] and turn its records into validated entities.
*/
package catalog

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/taibuivan/fisheye/internal/platform/apperr"
	"github.com/taibuivan/fisheye/internal/platform/constants"
	"github.com/taibuivan/fisheye/internal/platform/validate"
)

// # Wire Format

// Document is the decoded source document.
type Document struct {
	Photographers []PhotographerRecord `json:"photographers"`
	Media         []MediaRecord        `json:"media"`
}

// PhotographerRecord is one entry of the "photographers" array.
type PhotographerRecord struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Tagline  string `json:"tagline"`
	Price    int    `json:"price"`
	Portrait string `json:"portrait"`
}

// MediaRecord is one entry of the "media" array.
//
// Exactly one of Image and Video is expected to be set. Which one is present
// is not trusted on its own: the media kind is inferred from the filename.
type MediaRecord struct {
	ID             int    `json:"id"`
	PhotographerID int    `json:"photographerId"`
	Title          string `json:"title"`
	Image          string `json:"image,omitempty"`
	Video          string `json:"video,omitempty"`
	Likes          int    `json:"likes"`
	Date           string `json:"date"`
	Price          int    `json:"price"`
}

// Decode reads a [Document] from r. A malformed payload is reported as
// FETCH_FAILED for the named source.
func Decode(source string, r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, apperr.FetchFailed(source, fmt.Errorf("decode document: %w", err))
	}
	return &doc, nil
}

// # Record Validation

// Validate checks the fields of a photographer record.
func (r PhotographerRecord) Validate() error {
	v := &validate.Validator{}
	return v.
		Custom("id", r.ID <= 0, "Must be a positive integer").
		Required("name", r.Name).
		MaxLen("name", r.Name, 200).
		NonNegative("price", r.Price).
		Err()
}

// Validate checks the fields of a media record. The filename is not checked
// here; an unusable filename is a media kind fault, not a validation one.
func (r MediaRecord) Validate() error {
	v := &validate.Validator{}
	return v.
		Custom("id", r.ID <= 0, "Must be a positive integer").
		Custom("photographerId", r.PhotographerID <= 0, "Must be a positive integer").
		Required("title", r.Title).
		NonNegative("likes", r.Likes).
		NonNegative("price", r.Price).
		Date("date", r.Date, constants.DateLayout).
		Err()
}

// Filename returns the single filename carried by the record and whether the
// record is well-formed in that respect (exactly one of image or video).
func (r MediaRecord) Filename() (string, bool) {
	switch {
	case r.Image != "" && r.Video == "":
		return r.Image, true
	case r.Video != "" && r.Image == "":
		return r.Video, true
	default:
		return r.Image + r.Video, false
	}
}
