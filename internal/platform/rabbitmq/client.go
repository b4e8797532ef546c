// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package rabbitmq provides a managed AMQP 0-9-1 publisher.

It fans out catalog events (such as "media.liked") to downstream consumers.
The publisher owns one connection, one channel and one durable queue.

Core Responsibilities:

  - Idempotency: The queue is declared on connect and may already exist.
  - Bounded Latency: Every publish runs under its own timeout.
  - Serialisation: amqp channels are not safe for concurrent publishing,
    so Publish holds a mutex around the channel.
*/
package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/taibuivan/fisheye/internal/platform/constants"
)

// Client publishes messages to a single durable queue.
type Client struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	logger  *slog.Logger
}

// NewClient dials the broker, opens a channel and declares the queue.
//
// # Parameters
//   - url: amqp:// or amqps:// broker URL.
//   - queueName: Durable queue receiving every published message.
//   - logger: Structured logger for connection events.
func NewClient(url, queueName string, logger *slog.Logger) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: failed to connect: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: failed to open channel: %w", err)
	}

	queue, err := channel.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: failed to declare queue %q: %w", queueName, err)
	}

	logger.Info("rabbitmq_client_connected",
		slog.String("queue", queue.Name),
		slog.Int("pending_messages", queue.Messages),
	)

	return &Client{conn: conn, channel: channel, queue: queue, logger: logger}, nil
}

// Publish sends a persistent JSON message. The type is carried in the AMQP
// Type property so consumers can route without decoding the body.
func (c *Client) Publish(ctx context.Context, messageType string, body []byte) error {
	publishCtx, cancel := context.WithTimeout(ctx, constants.PublishTimeout)
	defer cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.channel.PublishWithContext(
		publishCtx,
		"",           // default exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Type:         messageType,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("rabbitmq: publish %s: %w", messageType, err)
	}

	return nil
}

// Close releases the channel and the connection.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Warn("rabbitmq_channel_close_failed", slog.Any("error", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.logger.Warn("rabbitmq_connection_close_failed", slog.Any("error", err))
		}
	}
}
