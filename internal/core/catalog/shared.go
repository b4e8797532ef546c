// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "context"

// SharedSource memoises the document of another [Source] so that every store
// built on it is served by one fetch.
type SharedSource struct {
	origin Source
	doc    *Lazy[*Document]
}

// Shared wraps origin.
func Shared(origin Source) *SharedSource {
	return &SharedSource{
		origin: origin,
		doc:    NewLazy("Catalog document", origin.Fetch),
	}
}

// Fetch returns the memoised document.
func (s *SharedSource) Fetch(ctx context.Context) (*Document, error) {
	return s.doc.Get(ctx)
}

// Name implements [Source].
func (s *SharedSource) Name() string { return s.origin.Name() }

// Origin returns the wrapped source. Reads through it always hit the
// transport, which is what canonical refetches need.
func (s *SharedSource) Origin() Source { return s.origin }

// State reports the load state of the memoised document.
func (s *SharedSource) State() State { return s.doc.State() }
