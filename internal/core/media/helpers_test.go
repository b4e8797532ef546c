// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/taibuivan/fisheye/internal/core/catalog"
	"github.com/taibuivan/fisheye/internal/core/media"
)

// documentSource serves a replaceable document and counts fetches.
type documentSource struct {
	mu    sync.Mutex
	calls atomic.Int32
	doc   *catalog.Document
	err   error
}

func newDocumentSource(records ...catalog.MediaRecord) *documentSource {
	return &documentSource{doc: &catalog.Document{Media: records}}
}

func (s *documentSource) Fetch(context.Context) (*catalog.Document, error) {
	s.calls.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc, s.err
}

func (s *documentSource) Name() string { return "document" }

func (s *documentSource) replace(records ...catalog.MediaRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = &catalog.Document{Media: records}
}

func image(id, owner, likes int, title, date string) catalog.MediaRecord {
	return catalog.MediaRecord{
		ID: id, PhotographerID: owner, Title: title,
		Image: title + ".jpg", Likes: likes, Date: date, Price: 50,
	}
}

// scenario is the three-media gallery of photographer 7.
func scenario() []catalog.MediaRecord {
	return []catalog.MediaRecord{
		image(1, 7, 5, "Aurore", "2020-01-01"),
		image(2, 7, 10, "Brume", "2021-01-01"),
		image(3, 7, 2, "Cascade", "2019-01-01"),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// publisherSpy records published events.
type publisherSpy struct {
	mu     sync.Mutex
	events []int
	err    error
}

func (p *publisherSpy) PublishLike(_ context.Context, event media.LikeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event.Likes)
	return p.err
}
