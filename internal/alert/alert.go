// Package alert carries notifications to the head chef. Alerts go to a
// point-to-point queue the head chef drains and, optionally, to a broadcast
// topic for any other listener.
package alert

import (
	"context"
	"fmt"
	"time"
)

// Alert is one notification.
type Alert struct {
	Code      Code      `json:"code"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher delivers an alert to a channel.
type Publisher interface {
	Publish(ctx context.Context, a Alert) error
}

// Inbox is the head chef's queue.
type Inbox interface {
	// Drain removes and returns every queued alert, newest first.
	Drain(ctx context.Context) ([]Alert, error)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, a Alert) error

func (f PublisherFunc) Publish(ctx context.Context, a Alert) error {
	return f(ctx, a)
}

func OrderReady(at time.Time) Alert {
	return Alert{
		Code:      CodeOrderReady,
		Title:     "New order generated",
		Message:   "A new order has been generated and is ready for approval",
		Timestamp: at,
	}
}

func OrderPlaced(orderID string, at time.Time) Alert {
	return Alert{
		Code:      CodeOrderPlaced,
		Title:     "Order placed",
		Message:   fmt.Sprintf("Order %s was approved and sent!", orderID),
		Timestamp: at,
	}
}

func OrderDelivered(orderID string, at time.Time) Alert {
	return Alert{
		Code:      CodeOrderDelivered,
		Title:     "Order delivered",
		Message:   fmt.Sprintf("Order %s was just delivered!", orderID),
		Timestamp: at,
	}
}

func CheckResult(orderID string, passed bool, at time.Time) Alert {
	outcome := "failed"
	if passed {
		outcome = "passed"
	}
	return Alert{
		Code:      CodeCheckingFunctionResult,
		Title:     "Checking function " + outcome,
		Message:   fmt.Sprintf("Checking function %s for order %s", outcome, orderID),
		Timestamp: at,
	}
}

func ItemsToExpire(at time.Time) Alert {
	return Alert{
		Code:      CodeItemsToExpire,
		Title:     "Expiring items",
		Message:   "Some items in the fridge are due to expire within the next 3 days",
		Timestamp: at,
	}
}
