package alert

import (
	"context"

	"github.com/tair/kitchen-stock/kafka"
)

// EventSender is satisfied by *kafka.Publisher.
type EventSender interface {
	PublishAlert(ctx context.Context, event kafka.AlertEvent) error
}

// Broadcast forwards alerts to the Kafka alert topic.
type Broadcast struct {
	sender EventSender
}

func NewBroadcast(sender EventSender) *Broadcast {
	return &Broadcast{sender: sender}
}

func (b *Broadcast) Publish(ctx context.Context, a Alert) error {
	return b.sender.PublishAlert(ctx, kafka.AlertEvent{
		Code:      string(a.Code),
		Title:     a.Title,
		Message:   a.Message,
		Timestamp: a.Timestamp,
	})
}
