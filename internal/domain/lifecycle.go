package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a requested status change is not legal from the current status
var ErrInvalidTransition = errors.New("invalid status transition")

// QuoteRequestStatus represents the lifecycle status of a quote request
type QuoteRequestStatus string

const (
	QuoteRequestStatusOpen      QuoteRequestStatus = "OPEN"
	QuoteRequestStatusHasOffers QuoteRequestStatus = "HAS_OFFERS"
	QuoteRequestStatusConfirmed QuoteRequestStatus = "CONFIRMED"
	QuoteRequestStatusCompleted QuoteRequestStatus = "COMPLETED"
	QuoteRequestStatusCancelled QuoteRequestStatus = "CANCELLED"
)

// EstimateStatus represents the lifecycle status of an estimate
type EstimateStatus string

const (
	EstimateStatusPending  EstimateStatus = "PENDING"
	EstimateStatusAccepted EstimateStatus = "ACCEPTED"
	EstimateStatusRejected EstimateStatus = "REJECTED"
	EstimateStatusExpired  EstimateStatus = "EXPIRED"
)

var quoteRequestTransitions = map[QuoteRequestStatus][]QuoteRequestStatus{
	QuoteRequestStatusOpen:      {QuoteRequestStatusHasOffers, QuoteRequestStatusCancelled},
	QuoteRequestStatusHasOffers: {QuoteRequestStatusConfirmed, QuoteRequestStatusCancelled},
	QuoteRequestStatusConfirmed: {QuoteRequestStatusCompleted, QuoteRequestStatusCancelled},
}

var estimateTransitions = map[EstimateStatus][]EstimateStatus{
	EstimateStatusPending: {EstimateStatusAccepted, EstimateStatusRejected, EstimateStatusExpired},
}

// ActiveQuoteRequestStatuses are the statuses that count as an owner's open lifecycle
var ActiveQuoteRequestStatuses = []QuoteRequestStatus{
	QuoteRequestStatusOpen,
	QuoteRequestStatusHasOffers,
	QuoteRequestStatusConfirmed,
}

// IsValid checks if the QuoteRequestStatus is a valid enum value
func (s QuoteRequestStatus) IsValid() bool {
	switch s {
	case QuoteRequestStatusOpen, QuoteRequestStatusHasOffers, QuoteRequestStatusConfirmed,
		QuoteRequestStatusCompleted, QuoteRequestStatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true for COMPLETED and CANCELLED
func (s QuoteRequestStatus) IsTerminal() bool {
	return s == QuoteRequestStatusCompleted || s == QuoteRequestStatusCancelled
}

// IsActive returns true while the request blocks its owner from creating another one
func (s QuoteRequestStatus) IsActive() bool {
	return s.IsValid() && !s.IsTerminal()
}

// AcceptsEstimates returns true when centers may submit or revise estimates
func (s QuoteRequestStatus) AcceptsEstimates() bool {
	return s == QuoteRequestStatusOpen || s == QuoteRequestStatusHasOffers
}

// IsValid checks if the EstimateStatus is a valid enum value
func (s EstimateStatus) IsValid() bool {
	switch s {
	case EstimateStatusPending, EstimateStatusAccepted, EstimateStatusRejected, EstimateStatusExpired:
		return true
	}
	return false
}

// IsTerminal returns true for every status except PENDING
func (s EstimateStatus) IsTerminal() bool {
	return s.IsValid() && s != EstimateStatusPending
}

// TransitionError describes a rejected status change. It unwraps to ErrInvalidTransition.
type TransitionError struct {
	Entity EntityType
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %s to %s", ErrInvalidTransition, e.Entity, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// CanTransitionQuoteRequest reports whether a quote request may move from one status to another
func CanTransitionQuoteRequest(from, to QuoteRequestStatus) bool {
	for _, next := range quoteRequestTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateQuoteRequestTransition returns a *TransitionError if the change is not allowed
func ValidateQuoteRequestTransition(from, to QuoteRequestStatus) error {
	if !CanTransitionQuoteRequest(from, to) {
		return &TransitionError{Entity: EntityTypeQuoteRequest, From: string(from), To: string(to)}
	}
	return nil
}

// CanTransitionEstimate reports whether an estimate may move from one status to another
func CanTransitionEstimate(from, to EstimateStatus) bool {
	for _, next := range estimateTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateEstimateTransition returns a *TransitionError if the change is not allowed
func ValidateEstimateTransition(from, to EstimateStatus) error {
	if !CanTransitionEstimate(from, to) {
		return &TransitionError{Entity: EntityTypeEstimate, From: string(from), To: string(to)}
	}
	return nil
}
