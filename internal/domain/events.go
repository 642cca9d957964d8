package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType is the kind of lifecycle event emitted after a committed transition
type EventType string

const (
	EventEstimateSubmitted EventType = "ESTIMATE_SUBMITTED"
	EventEstimateAccepted  EventType = "ESTIMATE_ACCEPTED"
	EventEstimateRejected  EventType = "ESTIMATE_REJECTED"
	EventRequestCancelled  EventType = "REQUEST_CANCELLED"
	EventRequestCompleted  EventType = "REQUEST_COMPLETED"
)

// IsValid checks if the EventType is a valid enum value
func (t EventType) IsValid() bool {
	switch t {
	case EventEstimateSubmitted, EventEstimateAccepted, EventEstimateRejected,
		EventRequestCancelled, EventRequestCompleted:
		return true
	}
	return false
}

// LifecycleEvent is handed to the notification dispatcher once a transition has committed
type LifecycleEvent struct {
	ID           uuid.UUID   `json:"id"`
	Type         EventType   `json:"type"`
	RequestID    uuid.UUID   `json:"requestId"`
	EstimateID   *uuid.UUID  `json:"estimateId,omitempty"`
	RecipientIDs []uuid.UUID `json:"recipientIds"`
	OccurredAt   time.Time   `json:"occurredAt"`
}

// NewLifecycleEvent builds an event with a fresh ID
func NewLifecycleEvent(eventType EventType, requestID uuid.UUID, estimateID *uuid.UUID, recipients []uuid.UUID, at time.Time) LifecycleEvent {
	return LifecycleEvent{
		ID:           uuid.New(),
		Type:         eventType,
		RequestID:    requestID,
		EstimateID:   estimateID,
		RecipientIDs: recipients,
		OccurredAt:   at,
	}
}

// Title returns a short human readable headline for the event
func (e LifecycleEvent) Title() string {
	switch e.Type {
	case EventEstimateSubmitted:
		return "New estimate received"
	case EventEstimateAccepted:
		return "Estimate accepted"
	case EventEstimateRejected:
		return "Estimate not selected"
	case EventRequestCancelled:
		return "Quote request cancelled"
	case EventRequestCompleted:
		return "Repair completed"
	default:
		return string(e.Type)
	}
}

// Message returns the body text used by inbox and chat channels
func (e LifecycleEvent) Message() string {
	short := e.RequestID.String()[:8]
	switch e.Type {
	case EventEstimateSubmitted:
		return fmt.Sprintf("A repair center sent an estimate for your request %s.", short)
	case EventEstimateAccepted:
		return fmt.Sprintf("The owner accepted your estimate for request %s.", short)
	case EventEstimateRejected:
		return fmt.Sprintf("Your estimate for request %s was not selected.", short)
	case EventRequestCancelled:
		return fmt.Sprintf("The owner cancelled request %s.", short)
	case EventRequestCompleted:
		return fmt.Sprintf("The repair for request %s has been marked as done.", short)
	default:
		return fmt.Sprintf("Request %s was updated.", short)
	}
}
