package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"github.com/straye-as/repair-quote-api/internal/repository"
	"gorm.io/gorm"
)

// NotificationDispatcher receives lifecycle events after the transition that
// produced them has committed. Implementations must not block the caller.
type NotificationDispatcher interface {
	Notify(ctx context.Context, event domain.LifecycleEvent)
}

func utcNow() time.Time {
	return time.Now().UTC()
}

// inTransaction runs fn in one database transaction. A lost version
// compare-and-swap means another writer got there first and surfaces as ErrBusy.
func inTransaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	err := db.WithContext(ctx).Transaction(fn)
	if errors.Is(err, repository.ErrStaleVersion) {
		return ErrBusy
	}
	return err
}

func requestTransition(qr *domain.QuoteRequest, from, to domain.QuoteRequestStatus, actor *uuid.UUID, reason string, at time.Time) *domain.StatusTransition {
	return &domain.StatusTransition{
		EntityType: domain.EntityTypeQuoteRequest,
		EntityID:   qr.ID,
		RequestID:  qr.ID,
		FromStatus: string(from),
		ToStatus:   string(to),
		ActorID:    actor,
		Reason:     reason,
		ChangedAt:  at,
	}
}

func estimateTransition(e *domain.Estimate, from, to domain.EstimateStatus, actor *uuid.UUID, reason string, at time.Time) *domain.StatusTransition {
	return &domain.StatusTransition{
		EntityType: domain.EntityTypeEstimate,
		EntityID:   e.ID,
		RequestID:  e.RequestID,
		FromStatus: string(from),
		ToStatus:   string(to),
		ActorID:    actor,
		Reason:     reason,
		ChangedAt:  at,
	}
}

func estimateIDs(estimates []domain.Estimate) []uuid.UUID {
	ids := make([]uuid.UUID, len(estimates))
	for i := range estimates {
		ids[i] = estimates[i].ID
	}
	return ids
}

// distinctCenters returns each submitting center once, in estimate order
func distinctCenters(estimates []domain.Estimate) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(estimates))
	centers := make([]uuid.UUID, 0, len(estimates))
	for _, e := range estimates {
		if seen[e.CenterID] {
			continue
		}
		seen[e.CenterID] = true
		centers = append(centers, e.CenterID)
	}
	return centers
}

func ptr[T any](v T) *T {
	return &v
}
