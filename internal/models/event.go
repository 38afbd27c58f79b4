package models

import "time"

// Customer event types published after a successful mutation
const (
	EventCustomerCreated = "customer.created"
	EventCustomerUpdated = "customer.updated"
	EventCustomerDeleted = "customer.deleted"
)

// CustomerEvent is the queue payload describing a customer mutation
type CustomerEvent struct {
	Type       string    `json:"type"`
	CustomerID int64     `json:"customer_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Attempt    int       `json:"attempt"`
}

// NewCustomerEvent creates an event stamped with the current time
func NewCustomerEvent(eventType string, customerID int64) *CustomerEvent {
	return &CustomerEvent{
		Type:       eventType,
		CustomerID: customerID,
		OccurredAt: time.Now().UTC(),
	}
}
