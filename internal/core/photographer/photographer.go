// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package photographer holds the photographer entity, its in-memory store and the
lookup service used by the landing and portfolio pages.

A [Photographer] is an immutable value built once per source record.
*/
package photographer

import (
	"fmt"
	"path"
	"strings"

	"github.com/taibuivan/fisheye/internal/core/catalog"
	"github.com/taibuivan/fisheye/internal/platform/constants"
)

// # Entity

// Photographer is an artist listed on the site.
type Photographer struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Tagline  string `json:"tagline"`
	Price    int    `json:"price"`
	Portrait string `json:"portrait"`
}

// Identity implements navigation.Identifiable.
func (p Photographer) Identity() int { return p.ID }

// Location formats the city and country, e.g. "London, UK".
func (p Photographer) Location() string {
	return p.City + ", " + p.Country
}

// PricePerDay formats the daily rate, e.g. "400€/Jour".
func (p Photographer) PricePerDay() string {
	return fmt.Sprintf("%d€/Jour", p.Price)
}

// PortraitPath is the portrait location relative to the asset root.
func (p Photographer) PortraitPath() string {
	return path.Join(constants.PortraitFolder, p.Portrait)
}

// FirstName is the first word of the name. Media files of a photographer live
// in a folder named after it.
func (p Photographer) FirstName() string {
	fields := strings.Fields(p.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// # Construction

// FromRecord validates a source record and builds a [Photographer].
func FromRecord(record catalog.PhotographerRecord) (Photographer, error) {
	if err := record.Validate(); err != nil {
		return Photographer{}, err
	}

	return Photographer{
		ID:       record.ID,
		Name:     strings.TrimSpace(record.Name),
		City:     record.City,
		Country:  record.Country,
		Tagline:  record.Tagline,
		Price:    record.Price,
		Portrait: record.Portrait,
	}, nil
}

// FromRecords converts every record in order. The first invalid record aborts
// the conversion and nothing is returned.
func FromRecords(records []catalog.PhotographerRecord) ([]Photographer, error) {
	photographers := make([]Photographer, 0, len(records))
	for _, record := range records {
		photographer, err := FromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("photographer %d: %w", record.ID, err)
		}
		photographers = append(photographers, photographer)
	}
	return photographers, nil
}
