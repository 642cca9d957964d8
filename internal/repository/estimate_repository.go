package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EstimateRepository handles persistence of estimates
type EstimateRepository struct {
	db *gorm.DB
}

func NewEstimateRepository(db *gorm.DB) *EstimateRepository {
	return &EstimateRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *EstimateRepository) WithTx(tx *gorm.DB) *EstimateRepository {
	return &EstimateRepository{db: tx}
}

func (r *EstimateRepository) Create(ctx context.Context, estimate *domain.Estimate) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(estimate).Error
}

func (r *EstimateRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Estimate, error) {
	var estimate domain.Estimate
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&estimate).Error
	if err != nil {
		return nil, err
	}
	return &estimate, nil
}

// FindPending returns the center's PENDING estimate on a request, or gorm.ErrRecordNotFound
func (r *EstimateRepository) FindPending(ctx context.Context, requestID, centerID uuid.UUID) (*domain.Estimate, error) {
	var estimate domain.Estimate
	err := r.db.WithContext(ctx).
		Where("request_id = ? AND center_id = ? AND status = ?", requestID, centerID, domain.EstimateStatusPending).
		First(&estimate).Error
	if err != nil {
		return nil, err
	}
	return &estimate, nil
}

// ListByRequest returns every estimate on a request in submission order
func (r *EstimateRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Estimate, error) {
	var estimates []domain.Estimate
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&estimates).Error
	return estimates, err
}

// ListPendingByRequest returns the PENDING estimates on a request in submission order
func (r *EstimateRepository) ListPendingByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Estimate, error) {
	var estimates []domain.Estimate
	err := r.db.WithContext(ctx).
		Where("request_id = ? AND status = ?", requestID, domain.EstimateStatusPending).
		Order("created_at ASC").
		Order("id ASC").
		Find(&estimates).Error
	return estimates, err
}

// ListByCenter returns every estimate a center has submitted, newest first
func (r *EstimateRepository) ListByCenter(ctx context.Context, centerID uuid.UUID) ([]domain.Estimate, error) {
	var estimates []domain.Estimate
	err := r.db.WithContext(ctx).
		Where("center_id = ?", centerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&estimates).Error
	return estimates, err
}

// ListDuePending returns PENDING estimates on a request whose validity ended before now
func (r *EstimateRepository) ListDuePending(ctx context.Context, requestID uuid.UUID, now time.Time) ([]domain.Estimate, error) {
	var estimates []domain.Estimate
	err := r.db.WithContext(ctx).
		Where("request_id = ? AND status = ? AND valid_until < ?", requestID, domain.EstimateStatusPending, now).
		Order("created_at ASC").
		Find(&estimates).Error
	return estimates, err
}

// RequestIDsWithDuePending returns the distinct requests that have at least one PENDING estimate past validity
func (r *EstimateRepository) RequestIDsWithDuePending(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&domain.Estimate{}).
		Where("status = ? AND valid_until < ?", domain.EstimateStatusPending, now).
		Distinct("request_id").
		Pluck("request_id", &ids).Error
	return ids, err
}

// UpdateDetails overwrites the priced fields of a PENDING estimate in place
func (r *EstimateRepository) UpdateDetails(ctx context.Context, estimate *domain.Estimate, now time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Estimate{}).
		Where("id = ? AND status = ?", estimate.ID, domain.EstimateStatusPending).
		Updates(map[string]interface{}{
			"cost_parts":    estimate.Cost.Parts,
			"cost_labor":    estimate.Cost.Labor,
			"cost_total":    estimate.Cost.Total,
			"description":   estimate.Description,
			"proposed_date": estimate.ProposedDate,
			"valid_until":   estimate.ValidUntil,
			"updated_at":    now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleVersion
	}
	estimate.UpdatedAt = now
	return nil
}

// TransitionStatus moves the given estimates from one status to another.
// Rows that are no longer in the from status are left alone; the number of changed rows is returned.
func (r *EstimateRepository) TransitionStatus(ctx context.Context, ids []uuid.UUID, from, to domain.EstimateStatus, now time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&domain.Estimate{}).
		Where("id IN ? AND status = ?", ids, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}
