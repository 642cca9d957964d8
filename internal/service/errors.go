package service

import (
	"errors"

	"github.com/straye-as/repair-quote-api/internal/domain"
)

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden is returned when the caller has no authority over the entity
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidTransition is returned when a status change is not legal from the current status
	ErrInvalidTransition = domain.ErrInvalidTransition

	// ErrDuplicateOpenRequest is returned when the owner already has a request in progress
	ErrDuplicateOpenRequest = errors.New("owner already has an open quote request")

	// ErrDuplicateSubmission is returned when the center already has a pending estimate on the request
	ErrDuplicateSubmission = errors.New("center already has a pending estimate on this request")

	// ErrRequestClosed is returned when the request no longer accepts estimates
	ErrRequestClosed = errors.New("quote request is not accepting estimates")

	// ErrInvalidCost is returned when total != parts + labor or an amount is negative
	ErrInvalidCost = errors.New("invalid cost breakdown")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrBusy is returned when the request is locked by another operation; callers may retry
	ErrBusy = errors.New("quote request is busy, retry later")
)
