package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/moonman369/Crowd-Funding-Contract/internal/core/domain"
)

// DefaultChannel is the Redis channel ledger events are published on.
const DefaultChannel = "events:ledger"

// RedisPublisher publishes each event as a JSON message on a Redis channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{client: client, channel: channel}
}

// Publish implements port.EventPublisher. It stops at the first event Redis
// refuses.
func (p *RedisPublisher) Publish(ctx context.Context, events ...domain.Event) error {
	for _, e := range events {
		data, err := json.Marshal(e)
		if err != nil {
			return err
		}
		if err = p.client.Publish(ctx, p.channel, string(data)).Err(); err != nil {
			return fmt.Errorf("publish event %d: %w", e.Seq, err)
		}
	}
	return nil
}

// RedisSubscriber receives events published by RedisPublisher.
type RedisSubscriber struct {
	client  *redis.Client
	channel string
	log     *slog.Logger
}

func NewRedisSubscriber(client *redis.Client, channel string, log *slog.Logger) *RedisSubscriber {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisSubscriber{client: client, channel: channel, log: log}
}

// Subscribe calls handler for every event until ctx is done or the
// subscription is closed. Malformed messages are logged and skipped.
func (s *RedisSubscriber) Subscribe(ctx context.Context, handler func(domain.Event)) error {
	pubsub := s.client.Subscribe(ctx, s.channel)
	defer pubsub.Close()

	// Wait for the server to confirm the subscription.
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", s.channel, err)
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var event domain.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				s.log.ErrorContext(ctx, "failed to unmarshal event", slog.Any("error", err))
				continue
			}
			handler(event)
		}
	}
}
