package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher interface {
	PublishMessageSent(ctx context.Context, event MessageSentEvent) error
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishMessageSent(context.Context, MessageSentEvent) error { return nil }

// RabbitPublisher opens a short-lived connection per event and publishes a
// persistent JSON message to a durable queue on the default exchange.
type RabbitPublisher struct {
	url   string
	queue string
	dial  func(url string) (*amqp.Connection, error)
}

func NewRabbitPublisher(url, queue string) *RabbitPublisher {
	return &RabbitPublisher{url: url, queue: queue, dial: amqp.Dial}
}

func (p *RabbitPublisher) PublishMessageSent(ctx context.Context, event MessageSentEvent) error {
	body, err := encodeEvent(event)
	if err != nil {
		return err
	}

	conn, err := p.dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel open failed: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue declare failed: %w", err)
	}

	err = ch.PublishWithContext(ctx, "", p.queue, false, false, newPublishing(body))
	if err != nil {
		return fmt.Errorf("rabbitmq publish failed: %w", err)
	}

	return nil
}

func encodeEvent(event MessageSentEvent) ([]byte, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	return body, nil
}

func newPublishing(body []byte) amqp.Publishing {
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
}
