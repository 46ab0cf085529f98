package events

import "encoding/json"

// Event type constants for delivery lifecycle events.
const (
	EventDeliveryReceived  = "delivery.received"
	EventDeliveryCompleted = "delivery.completed"
)

// DeliveryReceived is published when an inbound webhook passes validation
// and its background processing has been spawned.
type DeliveryReceived struct {
	BaseEvent
	WebhookEvent string `json:"webhook_event"` // raw eventType from the payload
	Product      string `json:"product,omitempty"`
	Title        string `json:"title,omitempty"`
}

// DeliveryCompleted is published when a delivery's background flow has run
// to completion, whatever the outcome. Results holds the delivery's
// aggregate result structure as JSON.
type DeliveryCompleted struct {
	BaseEvent
	WebhookEvent string          `json:"webhook_event"` // normalized eventType
	Product      string          `json:"product,omitempty"`
	Title        string          `json:"title,omitempty"`
	ScanPath     string          `json:"scan_path,omitempty"`
	Status       string          `json:"status"`
	Results      json.RawMessage `json:"results,omitempty"`
}
