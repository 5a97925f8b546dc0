package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/mutugading/catalog-service/internal/domain/event"
	"github.com/mutugading/catalog-service/internal/infrastructure/config"
)

// AMQPBus publishes events to a RabbitMQ topic exchange. Routing keys are
// "{channel}.{entity}.{method}" so consumers can bind to exactly the
// changes they care about.
type AMQPBus struct {
	conn     *amqp.Connection
	exchange string
	channel  string

	mu sync.Mutex
	ch *amqp.Channel
}

var _ event.Bus = (*AMQPBus)(nil)

// NewAMQPBus connects to RabbitMQ and declares the topic exchange.
func NewAMQPBus(cfg *config.AMQPConfig, channel string) (*AMQPBus, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open amqp channel: %w", err)
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	log.Info().Str("exchange", cfg.Exchange).Str("channel", channel).Msg("AMQP event bus initialized")

	return &AMQPBus{conn: conn, exchange: cfg.Exchange, channel: channel, ch: ch}, nil
}

// Close closes the AMQP channel and connection.
func (b *AMQPBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ch != nil {
		_ = b.ch.Close()
	}
	return b.conn.Close()
}

// Publish sends a single message in the background.
func (b *AMQPBus) Publish(ctx context.Context, msg event.Message) {
	go b.publish(msg)
}

// PublishMany sends a batch of messages in the background.
func (b *AMQPBus) PublishMany(ctx context.Context, msgs []event.Message) {
	go func() {
		for _, msg := range msgs {
			b.publish(msg)
		}
	}()
}

func (b *AMQPBus) publish(msg event.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	body, err := json.Marshal(msg)
	if err != nil {
		publishFailedTotal.WithLabelValues("amqp", msg.Entity).Inc()
		log.Error().Err(err).Str("event_id", msg.ID).Msg("failed to marshal event message")
		return
	}

	routingKey := fmt.Sprintf("%s.%s.%s", b.channel, msg.Entity, msg.Method)

	b.mu.Lock()
	err = b.ch.PublishWithContext(ctx, b.exchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   msg.ID,
		Timestamp:   time.Now(),
		Body:        body,
	})
	b.mu.Unlock()

	if err != nil {
		publishFailedTotal.WithLabelValues("amqp", msg.Entity).Inc()
		log.Error().Err(err).
			Str("event_id", msg.ID).
			Str("routing_key", routingKey).
			Msg("failed to publish event to rabbitmq")
		return
	}

	publishedTotal.WithLabelValues("amqp", msg.Entity).Inc()
	log.Debug().
		Str("event_id", msg.ID).
		Str("routing_key", routingKey).
		Int64("entity_id", msg.EntityID).
		Msg("event published")
}
