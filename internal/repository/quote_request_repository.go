package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuoteRequestRepository handles persistence of quote requests
type QuoteRequestRepository struct {
	db *gorm.DB
}

func NewQuoteRequestRepository(db *gorm.DB) *QuoteRequestRepository {
	return &QuoteRequestRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *QuoteRequestRepository) WithTx(tx *gorm.DB) *QuoteRequestRepository {
	return &QuoteRequestRepository{db: tx}
}

func (r *QuoteRequestRepository) Create(ctx context.Context, qr *domain.QuoteRequest) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(qr).Error
}

func (r *QuoteRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuoteRequest, error) {
	var qr domain.QuoteRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&qr).Error
	if err != nil {
		return nil, err
	}
	return &qr, nil
}

// GetByIDForUpdate loads the request and takes a row lock for the rest of the transaction.
// SQLite ignores the locking clause; callers serialize with the in-process locker there.
func (r *QuoteRequestRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.QuoteRequest, error) {
	var qr domain.QuoteRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&qr).Error
	if err != nil {
		return nil, err
	}
	return &qr, nil
}

// HasActiveForOwner reports whether the owner has a request in a non-terminal status
func (r *QuoteRequestRepository) HasActiveForOwner(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.QuoteRequest{}).
		Where("owner_id = ? AND status IN ?", ownerID, domain.ActiveQuoteRequestStatuses).
		Count(&count).Error
	return count > 0, err
}

// ListByOwner returns all requests of an owner, newest first
func (r *QuoteRequestRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.QuoteRequest, error) {
	var requests []domain.QuoteRequest
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&requests).Error
	return requests, err
}

// ListOpen returns requests that still accept estimates, filtered by category and location
func (r *QuoteRequestRepository) ListOpen(ctx context.Context, filter domain.OpenRequestFilter) ([]domain.QuoteRequest, int64, error) {
	var requests []domain.QuoteRequest
	var total int64

	query := r.db.WithContext(ctx).
		Model(&domain.QuoteRequest{}).
		Where("status IN ?", []domain.QuoteRequestStatus{domain.QuoteRequestStatusOpen, domain.QuoteRequestStatusHasOffers})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Location != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(filter.Location)+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(query, filter.Page, filter.PageSize).
		Order("created_at DESC").
		Order("id DESC").
		Find(&requests).Error
	return requests, total, err
}

// UpdateStatus moves the request to a new status using the version as a compare-and-swap guard.
// extra carries additional columns to set in the same statement. On success qr reflects the new row.
func (r *QuoteRequestRepository) UpdateStatus(ctx context.Context, qr *domain.QuoteRequest, to domain.QuoteRequestStatus, now time.Time, extra map[string]interface{}) error {
	updates := map[string]interface{}{
		"status":     to,
		"version":    qr.Version + 1,
		"updated_at": now,
	}
	for k, v := range extra {
		updates[k] = v
	}

	result := r.db.WithContext(ctx).
		Model(&domain.QuoteRequest{}).
		Where("id = ? AND version = ?", qr.ID, qr.Version).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleVersion
	}

	qr.Status = to
	qr.Version++
	qr.UpdatedAt = now
	return nil
}

// Touch bumps the version without a status change, used when only child estimates change
func (r *QuoteRequestRepository) Touch(ctx context.Context, qr *domain.QuoteRequest, now time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&domain.QuoteRequest{}).
		Where("id = ? AND version = ?", qr.ID, qr.Version).
		Updates(map[string]interface{}{
			"version":    qr.Version + 1,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleVersion
	}
	qr.Version++
	qr.UpdatedAt = now
	return nil
}
