package kafka

import "time"

// AlertEvent is the broadcast form of a kitchen alert. Code is the alert
// code name, not its wire int.
type AlertEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Code      string    `json:"code"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeAlertRaised = "alert.raised"
)

// Kafka topics
const (
	DefaultAlertTopic = "kitchen-alerts"
)
