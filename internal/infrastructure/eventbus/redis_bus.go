// Package eventbus provides fire-and-forget event publication over Redis
// pub/sub or RabbitMQ. Publish failures are counted and logged, never
// returned: the relational transaction that triggered the event has
// already committed by the time the bus sees the message.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/mutugading/catalog-service/internal/domain/event"
	"github.com/mutugading/catalog-service/internal/infrastructure/config"
)

// publishTimeout bounds each background publish so a dead broker cannot
// accumulate goroutines indefinitely.
const publishTimeout = 5 * time.Second

// RedisBus publishes events to a Redis pub/sub channel.
type RedisBus struct {
	client  *redis.Client
	channel string
}

var _ event.Bus = (*RedisBus)(nil)

// NewRedisBus creates a Redis-backed event bus and verifies connectivity.
func NewRedisBus(cfg *config.RedisConfig, channel string) (*RedisBus, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info().Str("addr", cfg.Address()).Str("channel", channel).Msg("Redis event bus initialized")

	return &RedisBus{client: client, channel: channel}, nil
}

// Close closes the underlying Redis client.
func (b *RedisBus) Close() error {
	return b.client.Close()
}

// Publish sends a single message in the background.
func (b *RedisBus) Publish(ctx context.Context, msg event.Message) {
	go b.publish(msg)
}

// PublishMany sends a batch of messages in the background. Messages are
// independent; one failure does not stop the rest.
func (b *RedisBus) PublishMany(ctx context.Context, msgs []event.Message) {
	go func() {
		for _, msg := range msgs {
			b.publish(msg)
		}
	}()
}

func (b *RedisBus) publish(msg event.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	body, err := json.Marshal(msg)
	if err != nil {
		publishFailedTotal.WithLabelValues("redis", msg.Entity).Inc()
		log.Error().Err(err).Str("event_id", msg.ID).Msg("failed to marshal event message")
		return
	}

	if err := b.client.Publish(ctx, b.channel, body).Err(); err != nil {
		publishFailedTotal.WithLabelValues("redis", msg.Entity).Inc()
		log.Error().Err(err).
			Str("event_id", msg.ID).
			Str("entity", msg.Entity).
			Str("method", msg.Method).
			Msg("failed to publish event to redis")
		return
	}

	publishedTotal.WithLabelValues("redis", msg.Entity).Inc()
	log.Debug().
		Str("event_id", msg.ID).
		Str("entity", msg.Entity).
		Str("method", msg.Method).
		Int64("entity_id", msg.EntityID).
		Msg("event published")
}
