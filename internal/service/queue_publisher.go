// Package service holds adapters to services outside the process.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	q "github.com/iliyamo/venue-booking/internal/queue"
)

// EventPublisher publishes activity events.  Callers log failures and carry
// on; a broker outage never fails the request that caused the event.
type EventPublisher interface {
	Publish(ctx context.Context, ev q.ActivityEvent) error
}

// NopPublisher discards events.  It is used when EVENTS_ENABLED is false.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, q.ActivityEvent) error { return nil }

// AMQPPublisher sends events to the activity queue on RabbitMQ.  Each
// publish opens its own connection, so there is no shared state to guard.
type AMQPPublisher struct {
	URL         string
	DialTimeout time.Duration
}

// NewAMQPPublisher returns a publisher for the broker at url.
func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{URL: url, DialTimeout: 2 * time.Second}
}

// Publish marshals ev and publishes it as a persistent message.  An empty
// OccurredAt is stamped with the current UTC time.
func (p *AMQPPublisher) Publish(ctx context.Context, ev q.ActivityEvent) error {
	if ev.OccurredAt == "" {
		ev.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	conn, err := amqp.DialConfig(p.URL, amqp.Config{Dial: amqp.DefaultDial(p.DialTimeout)})
	if err != nil {
		log.Warn().Err(err).Str("kind", ev.Kind).Msg("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// durable so messages survive broker restarts
	if _, err := ch.QueueDeclare(q.ActivityQueue, true, false, false, false, nil); err != nil {
		log.Warn().Err(err).Msg("rabbitmq: queue declare failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", q.ActivityQueue, false, false, pub); err != nil {
		log.Warn().Err(err).Str("kind", ev.Kind).Msg("rabbitmq: publish failed")
		return err
	}
	return nil
}
