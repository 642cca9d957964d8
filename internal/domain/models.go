package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel contains common fields for all models
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// BeforeCreate assigns an ID when the caller has not set one.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Role is the marketplace role carried by an authenticated caller
type Role string

const (
	RoleOwner  Role = "owner"
	RoleCenter Role = "center"
	RoleAdmin  Role = "admin"
)

// IsValid checks if the Role is a valid enum value
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleCenter, RoleAdmin:
		return true
	}
	return false
}

// VehicleDescriptor describes the vehicle a quote request is about.
// It is set once at creation and never updated.
type VehicleDescriptor struct {
	Make    string `gorm:"type:varchar(100);not null"`
	Model   string `gorm:"type:varchar(100);not null"`
	Year    int    `gorm:"not null"`
	Mileage int    `gorm:"not null;default:0"`
}

// QuoteRequest is a vehicle owner's posted repair need, open for competing estimates
type QuoteRequest struct {
	BaseModel
	// at most one non-terminal request per owner
	OwnerID            uuid.UUID          `gorm:"type:uuid;not null;index;uniqueIndex:idx_quote_requests_owner_active,where:status <> 'COMPLETED' AND status <> 'CANCELLED'"`
	Vehicle            VehicleDescriptor  `gorm:"embedded;embeddedPrefix:vehicle_"`
	Description        string             `gorm:"type:text;not null"`
	Category           string             `gorm:"type:varchar(100);index"`
	Location           string             `gorm:"type:varchar(200);index"`
	ImageRefs          []string           `gorm:"type:text;serializer:json"`
	Status             QuoteRequestStatus `gorm:"type:varchar(20);not null;default:'OPEN';index"`
	Version            int                `gorm:"not null;default:1"`
	AcceptedEstimateID *uuid.UUID         `gorm:"type:uuid"`
	CancelledAt        *time.Time
	CompletedAt        *time.Time
	Estimates          []Estimate `gorm:"foreignKey:RequestID"`
}

// CostBreakdown is the itemized price of an estimate in minor currency units
type CostBreakdown struct {
	Parts int64 `gorm:"not null;default:0"`
	Labor int64 `gorm:"not null;default:0"`
	Total int64 `gorm:"not null;default:0"`
}

// IsConsistent reports whether all amounts are non-negative and total equals parts plus labor.
func (c CostBreakdown) IsConsistent() bool {
	if c.Parts < 0 || c.Labor < 0 || c.Total < 0 {
		return false
	}
	return c.Parts+c.Labor == c.Total
}

// Estimate is a repair center's priced proposal against a quote request
type Estimate struct {
	BaseModel
	// one PENDING estimate per (request, center)
	RequestID    uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_estimates_pending_center,where:status = 'PENDING'"`
	Request      *QuoteRequest  `gorm:"foreignKey:RequestID"`
	CenterID     uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_estimates_pending_center,where:status = 'PENDING'"`
	Cost         CostBreakdown  `gorm:"embedded;embeddedPrefix:cost_"`
	Description  string         `gorm:"type:text"`
	ProposedDate time.Time      `gorm:"not null"`
	ValidUntil   time.Time      `gorm:"not null;index"`
	Status       EstimateStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
}

// IsExpiredAt reports whether the estimate's validity window ended before the given instant.
func (e *Estimate) IsExpiredAt(now time.Time) bool {
	return e.ValidUntil.Before(now)
}

// EntityType identifies which aggregate a status transition belongs to
type EntityType string

const (
	EntityTypeQuoteRequest EntityType = "quote_request"
	EntityTypeEstimate     EntityType = "estimate"
)

// StatusTransition is an append-only audit record of a lifecycle change
type StatusTransition struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EntityType EntityType `gorm:"type:varchar(20);not null"`
	EntityID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	RequestID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	FromStatus string     `gorm:"type:varchar(20)"`
	ToStatus   string     `gorm:"type:varchar(20);not null"`
	ActorID    *uuid.UUID `gorm:"type:uuid"`
	Reason     string     `gorm:"type:varchar(200)"`
	ChangedAt  time.Time  `gorm:"not null"`
}

// BeforeCreate assigns an ID when the caller has not set one.
func (s *StatusTransition) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Notification represents an in-app inbox entry for a user
type Notification struct {
	BaseModel
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_notifications_event_user"`
	Type       string     `gorm:"type:varchar(50);not null"`
	Title      string     `gorm:"type:varchar(200);not null"`
	Message    string     `gorm:"type:varchar(500);not null"`
	Read       bool       `gorm:"column:read;not null;default:false;index"`
	ReadAt     *time.Time
	RequestID  uuid.UUID  `gorm:"type:uuid;not null"`
	EstimateID *uuid.UUID `gorm:"type:uuid"`
	// redelivery of the same event to the same user is a no-op
	EventID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_notifications_event_user"`
}
