package domain

import (
	"time"

	"github.com/google/uuid"
)

// Service inputs

// QuoteRequestDetails is everything an owner supplies when posting a request
type QuoteRequestDetails struct {
	Vehicle     VehicleDescriptor
	Description string
	Category    string
	Location    string
	ImageRefs   []string
}

// EstimateInput is what a center supplies when submitting or revising an estimate
type EstimateInput struct {
	Cost         CostBreakdown
	Description  string
	ProposedDate time.Time
	ValidUntil   time.Time
}

// OpenRequestFilter narrows the list of requests centers can browse
type OpenRequestFilter struct {
	Category string
	Location string
	Page     int
	PageSize int
}

// Request bodies

type VehicleInput struct {
	Make    string `json:"make" validate:"required,max=100"`
	Model   string `json:"model" validate:"required,max=100"`
	Year    int    `json:"year" validate:"required"`
	Mileage int    `json:"mileage" validate:"gte=0"`
}

type CreateQuoteRequestRequest struct {
	Vehicle     VehicleInput `json:"vehicle"`
	Description string       `json:"description" validate:"required,max=5000"`
	Category    string       `json:"category" validate:"max=100"`
	Location    string       `json:"location" validate:"max=200"`
	ImageRefs   []string     `json:"imageRefs" validate:"max=20,dive,required,max=500"`
}

// EstimateRequest is used for both submission and resubmission.
// Cost consistency is checked by the service, not the validator.
type EstimateRequest struct {
	PartsCost    int64     `json:"partsCost"`
	LaborCost    int64     `json:"laborCost"`
	TotalCost    int64     `json:"totalCost"`
	Description  string    `json:"description" validate:"max=5000"`
	ProposedDate time.Time `json:"proposedDate" validate:"required"`
	ValidUntil   time.Time `json:"validUntil" validate:"required"`
}

// Responses

type VehicleDTO struct {
	Make    string `json:"make"`
	Model   string `json:"model"`
	Year    int    `json:"year"`
	Mileage int    `json:"mileage"`
}

type QuoteRequestDTO struct {
	ID                 uuid.UUID          `json:"id"`
	OwnerID            uuid.UUID          `json:"ownerId"`
	Vehicle            VehicleDTO         `json:"vehicle"`
	Description        string             `json:"description"`
	Category           string             `json:"category,omitempty"`
	Location           string             `json:"location,omitempty"`
	ImageRefs          []string           `json:"imageRefs"`
	Status             QuoteRequestStatus `json:"status"`
	AcceptedEstimateID *uuid.UUID         `json:"acceptedEstimateId,omitempty"`
	CreatedAt          string             `json:"createdAt"` // ISO 8601
	UpdatedAt          string             `json:"updatedAt"` // ISO 8601
	CancelledAt        *string            `json:"cancelledAt,omitempty"`
	CompletedAt        *string            `json:"completedAt,omitempty"`
}

type CostBreakdownDTO struct {
	Parts int64 `json:"parts"`
	Labor int64 `json:"labor"`
	Total int64 `json:"total"`
}

type EstimateDTO struct {
	ID           uuid.UUID        `json:"id"`
	RequestID    uuid.UUID        `json:"requestId"`
	CenterID     uuid.UUID        `json:"centerId"`
	Cost         CostBreakdownDTO `json:"cost"`
	Description  string           `json:"description,omitempty"`
	ProposedDate string           `json:"proposedDate"` // ISO 8601
	ValidUntil   string           `json:"validUntil"`   // ISO 8601
	Status       EstimateStatus   `json:"status"`
	SubmittedAt  string           `json:"submittedAt"` // ISO 8601
	UpdatedAt    string           `json:"updatedAt"`   // ISO 8601
}

type StatusTransitionDTO struct {
	ID         uuid.UUID  `json:"id"`
	EntityType EntityType `json:"entityType"`
	EntityID   uuid.UUID  `json:"entityId"`
	FromStatus string     `json:"fromStatus,omitempty"`
	ToStatus   string     `json:"toStatus"`
	ActorID    *uuid.UUID `json:"actorId,omitempty"`
	Reason     string     `json:"reason,omitempty"`
	ChangedAt  string     `json:"changedAt"` // ISO 8601
}

type NotificationDTO struct {
	ID         uuid.UUID  `json:"id"`
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	Read       bool       `json:"read"`
	CreatedAt  string     `json:"createdAt"` // ISO 8601
	RequestID  uuid.UUID  `json:"requestId"`
	EstimateID *uuid.UUID `json:"estimateId,omitempty"`
}

// UnreadCountDTO represents the count of unread notifications
type UnreadCountDTO struct {
	Count int `json:"count"`
}

// AttachmentDTO is returned after an image upload; Reference goes into imageRefs
type AttachmentDTO struct {
	Reference   string `json:"reference"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// SweepResultDTO reports how many estimates a manual sweep expired
type SweepResultDTO struct {
	Expired int    `json:"expired"`
	RanAt   string `json:"ranAt"` // ISO 8601
}

// PaginatedResponse wraps a page of results
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}
