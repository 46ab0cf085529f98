package events

import "time"

// Event is the base interface all events implement.
type Event interface {
	EventType() string
	DeliveryID() string
	OccurredAt() time.Time
}

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	Type      string    `json:"type"`
	Delivery  string    `json:"delivery_id"`
	Timestamp time.Time `json:"occurred_at"`
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) DeliveryID() string    { return e.Delivery }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// NewBaseEvent creates a BaseEvent with the current timestamp.
func NewBaseEvent(eventType, deliveryID string) BaseEvent {
	return BaseEvent{
		Type:      eventType,
		Delivery:  deliveryID,
		Timestamp: time.Now(),
	}
}
