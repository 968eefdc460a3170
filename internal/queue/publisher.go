// Package queue publishes booking events to RabbitMQ for downstream
// consumers. Publication is best effort; a failed publish never blocks or
// rolls back the booking change it describes.
package queue

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"motorent-backend/internal/config"
	"motorent-backend/internal/domain"
)

// Publisher writes booking events to a durable queue. A Publisher built from
// an empty URL is disabled and drops every event silently.
type Publisher struct {
	url   string
	queue string
}

func NewPublisher(cfg config.RabbitMQConfig) *Publisher {
	return &Publisher{url: cfg.URL, queue: cfg.Queue}
}

// Enabled reports whether a broker is configured.
func (p *Publisher) Enabled() bool {
	return p != nil && p.url != ""
}

// Publish sends one event to the broker. The connection is established per
// call; the dispatcher runs on a seconds-scale poll so connection churn is
// acceptable.
func (p *Publisher) Publish(ctx context.Context, event *domain.BookingEvent) error {
	if !p.Enabled() {
		return nil
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return err
	}

	return ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Type:         string(event.Type),
			Timestamp:    time.Now().UTC(),
			Body:         event.Payload,
		},
	)
}
