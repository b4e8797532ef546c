// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// # Sort Keys

// SortKey selects the gallery order.
type SortKey string

const (
	SortPopularity SortKey = "popularity"
	SortDate       SortKey = "date"
	SortTitle      SortKey = "title"
)

// ParseSortKey maps a query value to a [SortKey]. Unknown or empty values
// fall back to popularity.
func ParseSortKey(raw string) SortKey {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "date":
		return SortDate
	case "title":
		return SortTitle
	default:
		// "popular", "popularity", "likes" and anything unknown.
		return SortPopularity
	}
}

// # Sort Engine

// Sorter orders media sequences. Titles are collated for its locale.
type Sorter struct {
	locale language.Tag
}

// NewSorter builds a [Sorter] for a BCP 47 locale such as "fr" or "en-GB".
func NewSorter(locale string) (*Sorter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("media: invalid sort locale %q: %w", locale, err)
	}
	return &Sorter{locale: tag}, nil
}

// defaultSorter collates titles the way the site's French audience expects.
var defaultSorter = &Sorter{locale: language.French}

// SortBy sorts with the French collation. See [Sorter.Sort].
func SortBy(sequence []Media, key SortKey) []Media {
	return defaultSorter.Sort(sequence, key)
}

// Sort returns a sorted copy of sequence. The sort is stable: media that
// compare equal keep their relative order. The input is left untouched.
func (sorter *Sorter) Sort(sequence []Media, key SortKey) []Media {
	sorted := slices.Clone(sequence)
	slices.SortStableFunc(sorted, sorter.Comparator(key))
	return sorted
}

// Comparator returns the ordering function for key.
//
// The title comparator owns a collator, which is not safe for concurrent use:
// obtain one comparator per sort.
func (sorter *Sorter) Comparator(key SortKey) func(a, b Media) int {
	switch key {
	case SortDate:
		return func(a, b Media) int {
			return b.Date.Compare(a.Date)
		}
	case SortTitle:
		collator := collate.New(sorter.locale)
		return func(a, b Media) int {
			return collator.CompareString(a.Title, b.Title)
		}
	default:
		return func(a, b Media) int {
			return cmp.Compare(b.Likes, a.Likes)
		}
	}
}
