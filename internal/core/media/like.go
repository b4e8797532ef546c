// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/fisheye/internal/core/catalog"
	"github.com/taibuivan/fisheye/internal/platform/apperr"
	"github.com/taibuivan/fisheye/internal/platform/ctxutil"
	"github.com/taibuivan/fisheye/pkg/slice"
)

// # Like Controller

// LikeController records likes.
type LikeController struct {
	store     *Store
	origin    catalog.Source
	ledger    Ledger
	publisher LikePublisher
	logger    *slog.Logger
}

// NewLikeController wires the like flow. origin must bypass any memoisation:
// every like re-reads the canonical record.
func NewLikeController(store *Store, origin catalog.Source, ledger Ledger, publisher LikePublisher, logger *slog.Logger) *LikeController {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &LikeController{
		store:     store,
		origin:    origin,
		ledger:    ledger,
		publisher: publisher,
		logger:    logger,
	}
}

/*
IncrementLike adds exactly one like to a media.

Description: The media is looked up in a fresh read of the source document by
the pair (mediaID, photographerID). The ledger counter is incremented
atomically, seeded with the source count on the first like. The new count
is then written into the cached sequence, which never moves backwards when
likes finish out of order, and a "media.liked" event is published.

Returns:
  - Media: The media carrying the new like count
  - error: NOT_FOUND, AMBIGUOUS_MATCH, FETCH_FAILED or a ledger failure
*/
func (controller *LikeController) IncrementLike(ctx context.Context, mediaID, photographerID int) (Media, error) {
	logger := ctxutil.GetLoggerOr(ctx, controller.logger)

	canonical, err := controller.canonical(ctx, mediaID, photographerID)
	if err != nil {
		return Media{}, err
	}

	likes, err := controller.ledger.Increment(ctx, mediaID, canonical.Likes)
	if err != nil {
		return Media{}, err
	}

	updated, err := controller.store.ReplaceLikes(mediaID, likes)
	if err != nil {
		if !apperr.HasCode(err, apperr.CodeNotFound) {
			return Media{}, err
		}
		// The cache was empty or stale. The ledger already holds the like.
		logger.Warn("media_like_cache_miss",
			slog.Int("media_id", mediaID),
			slog.Int("photographer_id", photographerID),
		)
		updated = canonical
		updated.Likes = likes
	}

	event := LikeEvent{
		MediaID:        mediaID,
		PhotographerID: photographerID,
		Likes:          likes,
		LikedAt:        time.Now().UTC(),
	}
	if err := controller.publisher.PublishLike(ctx, event); err != nil {
		logger.Error("media_like_publish_failed", slog.Int("media_id", mediaID), slog.Any("error", err))
	}

	logger.Info("media_liked", slog.Int("media_id", mediaID), slog.Int("likes", likes))
	return updated, nil
}

func (controller *LikeController) canonical(ctx context.Context, mediaID, photographerID int) (Media, error) {
	doc, err := controller.origin.Fetch(ctx)
	if err != nil {
		return Media{}, err
	}

	matches := slice.Filter(doc.Media, func(record catalog.MediaRecord) bool {
		return record.ID == mediaID && record.PhotographerID == photographerID
	})

	switch len(matches) {
	case 0:
		return Media{}, apperr.NotFound(resourceName)
	case 1:
		return FromRecord(matches[0])
	default:
		return Media{}, apperr.AmbiguousMatch(resourceName, len(matches), fmt.Sprintf("(%d, %d)", mediaID, photographerID))
	}
}
