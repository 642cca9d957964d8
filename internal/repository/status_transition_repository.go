package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"gorm.io/gorm"
)

// StatusTransitionRepository records the lifecycle history of requests and their estimates
type StatusTransitionRepository struct {
	db *gorm.DB
}

func NewStatusTransitionRepository(db *gorm.DB) *StatusTransitionRepository {
	return &StatusTransitionRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *StatusTransitionRepository) WithTx(tx *gorm.DB) *StatusTransitionRepository {
	return &StatusTransitionRepository{db: tx}
}

// Create records transitions in one insert
func (r *StatusTransitionRepository) Create(ctx context.Context, transitions ...*domain.StatusTransition) error {
	if len(transitions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(transitions).Error
}

// ListByRequest returns the history of a request and all its estimates, oldest first
func (r *StatusTransitionRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.StatusTransition, error) {
	var history []domain.StatusTransition
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("changed_at ASC").
		Order("entity_type DESC").
		Find(&history).Error
	return history, err
}
