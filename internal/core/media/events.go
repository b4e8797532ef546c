// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/taibuivan/fisheye/internal/platform/constants"
)

// # Like Events

// LikeEvent is emitted after a like has been recorded.
type LikeEvent struct {
	MediaID        int       `json:"mediaId"`
	PhotographerID int       `json:"photographerId"`
	Likes          int       `json:"likes"`
	LikedAt        time.Time `json:"likedAt"`
}

// LikePublisher delivers like events to other systems.
type LikePublisher interface {
	PublishLike(ctx context.Context, event LikeEvent) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

// PublishLike implements [LikePublisher].
func (NopPublisher) PublishLike(context.Context, LikeEvent) error { return nil }

// MessagePublisher is the broker side of [QueuePublisher]. The rabbitmq
// client implements it.
type MessagePublisher interface {
	Publish(ctx context.Context, messageType string, body []byte) error
}

// QueuePublisher encodes like events as JSON messages.
type QueuePublisher struct {
	broker MessagePublisher
}

// NewQueuePublisher wraps a broker client.
func NewQueuePublisher(broker MessagePublisher) *QueuePublisher {
	return &QueuePublisher{broker: broker}
}

// PublishLike implements [LikePublisher].
func (publisher *QueuePublisher) PublishLike(ctx context.Context, event LikeEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("media: encode like event: %w", err)
	}
	return publisher.broker.Publish(ctx, constants.EventMediaLiked, body)
}
