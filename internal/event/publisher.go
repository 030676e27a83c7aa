package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// publishChannel is the subset of *amqp.Channel the publisher uses.
type publishChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RegistrationPublisher publishes registration events to RabbitMQ. An amqp
// channel is not safe for concurrent publishing, so calls are serialized.
type RegistrationPublisher struct {
	conn    *RabbitMQConnection
	channel publishChannel

	mu                sync.Mutex
	declared          bool
	messagesPublished int64
	messagesFailed    int64
	lastPublishTime   time.Time
}

func NewRegistrationPublisher(conn *RabbitMQConnection) *RegistrationPublisher {
	return &RegistrationPublisher{
		conn:            conn,
		channel:         conn.Channel,
		lastPublishTime: time.Now(),
	}
}

// PublishEvent sends event to the registration_events queue as a persistent
// JSON message, declaring the durable queue on first use.
func (p *RegistrationPublisher) PublishEvent(ctx context.Context, event RegistrationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.declared {
		_, err := p.channel.QueueDeclare(
			RegistrationQueue, // queue name
			true,              // durable
			false,             // delete when unused
			false,             // exclusive
			false,             // no-wait
			nil,               // arguments
		)
		if err != nil {
			p.messagesFailed++
			return fmt.Errorf("failed to declare queue: %w", err)
		}
		p.declared = true
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to marshal registration event: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		"",                // exchange
		RegistrationQueue, // routing key (queue name)
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    event.ID,
			Type:         string(event.EventType),
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to publish registration event: %w", err)
	}

	p.messagesPublished++
	p.lastPublishTime = time.Now()

	slog.Info("Registration event published",
		"queue", RegistrationQueue,
		"event_type", event.EventType,
		"registration_id", event.RegistrationID,
	)

	return nil
}

func (p *RegistrationPublisher) GetMetrics() map[string]any {
	p.mu.Lock()
	defer p.mu.Unlock()

	return map[string]any{
		"messages_published": p.messagesPublished,
		"messages_failed":    p.messagesFailed,
		"last_publish_time":  p.lastPublishTime,
		"queue":              RegistrationQueue,
	}
}

func (p *RegistrationPublisher) HealthCheck() PublisherHealthStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	isHealthy := p.conn != nil && p.conn.Connection != nil && !p.conn.Connection.IsClosed()

	return PublisherHealthStatus{
		IsHealthy:         isHealthy,
		MessagesPublished: p.messagesPublished,
		MessagesFailed:    p.messagesFailed,
		LastPublishTime:   p.lastPublishTime,
		Queue:             RegistrationQueue,
	}
}

type PublisherHealthStatus struct {
	IsHealthy         bool      `json:"is_healthy"`
	MessagesPublished int64     `json:"messages_published"`
	MessagesFailed    int64     `json:"messages_failed"`
	LastPublishTime   time.Time `json:"last_publish_time"`
	Queue             string    `json:"queue"`
}
