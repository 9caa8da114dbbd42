package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/tair/kitchen-stock/pkg/logger"
)

const (
	AlertExchange = "dx.user-alerts"
	HeadChefQueue = "q.head-chef"
)

// RabbitQueue publishes alerts to the head chef's durable queue and drains it
// on demand.
type RabbitQueue struct {
	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewRabbitQueue dials the broker and declares the exchange, queue and binding.
func NewRabbitQueue(url string) (*RabbitQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}

	if err := declareTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	logger.Logger.Info().
		Str("exchange", AlertExchange).
		Str("queue", HeadChefQueue).
		Msg("RabbitMQ alert queue initialized")

	return &RabbitQueue{conn: conn, ch: ch}, nil
}

func declareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(AlertExchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", AlertExchange, err)
	}
	if _, err := ch.QueueDeclare(HeadChefQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", HeadChefQueue, err)
	}
	if err := ch.QueueBind(HeadChefQueue, HeadChefQueue, AlertExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", HeadChefQueue, err)
	}
	return nil
}

func (q *RabbitQueue) Publish(ctx context.Context, a Alert) error {
	body, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	err = q.ch.PublishWithContext(ctx,
		AlertExchange,
		HeadChefQueue,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Timestamp:    a.Timestamp,
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("failed to publish alert to %s: %w", AlertExchange, err)
	}

	logger.Debug(ctx).
		Str("queue", HeadChefQueue).
		Str("code", string(a.Code)).
		Msg("Alert queued")
	return nil
}

// Drain pulls messages one by one until the queue is empty. Undecodable
// messages are acknowledged and skipped.
func (q *RabbitQueue) Drain(ctx context.Context) ([]Alert, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var alerts []Alert
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		msg, ok, err := q.ch.Get(HeadChefQueue, true)
		if err != nil {
			return nil, fmt.Errorf("failed to read from %s: %w", HeadChefQueue, err)
		}
		if !ok {
			break
		}

		var a Alert
		if err := json.Unmarshal(msg.Body, &a); err != nil {
			logger.Warn(ctx).Err(err).Msg("Skipping malformed alert message")
			continue
		}
		alerts = append(alerts, a)
	}

	for i, j := 0, len(alerts)-1; i < j; i, j = i+1, j-1 {
		alerts[i], alerts[j] = alerts[j], alerts[i]
	}
	return alerts, nil
}

// IsAlive reports whether the connection and channel are open.
func (q *RabbitQueue) IsAlive() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.conn != nil && !q.conn.IsClosed() && q.ch != nil && !q.ch.IsClosed()
}

func (q *RabbitQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.ch != nil && !q.ch.IsClosed() {
		if err := q.ch.Close(); err != nil {
			return fmt.Errorf("close rabbitmq channel: %w", err)
		}
	}
	if q.conn != nil && !q.conn.IsClosed() {
		if err := q.conn.Close(); err != nil {
			return fmt.Errorf("close rabbitmq connection: %w", err)
		}
	}
	return nil
}
