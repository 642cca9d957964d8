package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"github.com/straye-as/repair-quote-api/internal/mapper"
	"github.com/straye-as/repair-quote-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minVehicleYear = 1980

// QuoteRequestService owns the lifecycle of quote requests
type QuoteRequestService struct {
	requestRepo  *repository.QuoteRequestRepository
	estimateRepo *repository.EstimateRepository
	historyRepo  *repository.StatusTransitionRepository
	locker       *KeyedLocker
	dispatcher   NotificationDispatcher
	db           *gorm.DB
	logger       *zap.Logger
	now          func() time.Time
}

// NewQuoteRequestService creates a new quote request service
func NewQuoteRequestService(
	requestRepo *repository.QuoteRequestRepository,
	estimateRepo *repository.EstimateRepository,
	historyRepo *repository.StatusTransitionRepository,
	locker *KeyedLocker,
	dispatcher NotificationDispatcher,
	db *gorm.DB,
	logger *zap.Logger,
) *QuoteRequestService {
	return &QuoteRequestService{
		requestRepo:  requestRepo,
		estimateRepo: estimateRepo,
		historyRepo:  historyRepo,
		locker:       locker,
		dispatcher:   dispatcher,
		db:           db,
		logger:       logger,
		now:          utcNow,
	}
}

// SetClock replaces the time source
func (s *QuoteRequestService) SetClock(now func() time.Time) {
	s.now = func() time.Time { return now().UTC() }
}

// Create posts a new quote request for the owner. The owner may have only one
// request that is OPEN, HAS_OFFERS or CONFIRMED at a time.
func (s *QuoteRequestService) Create(ctx context.Context, ownerID uuid.UUID, details domain.QuoteRequestDetails) (*domain.QuoteRequest, error) {
	now := s.now()
	if err := validateDetails(&details, now); err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, ownerLockKey(ownerID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	refs := details.ImageRefs
	if refs == nil {
		refs = []string{}
	}

	qr := &domain.QuoteRequest{
		OwnerID:     ownerID,
		Vehicle:     details.Vehicle,
		Description: details.Description,
		Category:    details.Category,
		Location:    details.Location,
		ImageRefs:   refs,
		Status:      domain.QuoteRequestStatusOpen,
		Version:     1,
	}
	qr.CreatedAt = now
	qr.UpdatedAt = now

	err = inTransaction(ctx, s.db, func(tx *gorm.DB) error {
		requests := s.requestRepo.WithTx(tx)

		active, err := requests.HasActiveForOwner(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("failed to check open requests: %w", err)
		}
		if active {
			return ErrDuplicateOpenRequest
		}

		if err := requests.Create(ctx, qr); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateOpenRequest
			}
			return fmt.Errorf("failed to create quote request: %w", err)
		}

		return s.historyRepo.WithTx(tx).Create(ctx,
			requestTransition(qr, "", domain.QuoteRequestStatusOpen, &ownerID, "created", now))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("quote request created",
		zap.String("quote_request_id", qr.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("category", qr.Category),
	)
	return qr, nil
}

func validateDetails(details *domain.QuoteRequestDetails, now time.Time) error {
	details.Description = strings.TrimSpace(details.Description)
	if details.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	}

	maxYear := now.Year() + 1
	if details.Vehicle.Year < minVehicleYear || details.Vehicle.Year > maxYear {
		return fmt.Errorf("%w: vehicle year must be between %d and %d", ErrInvalidInput, minVehicleYear, maxYear)
	}
	if details.Vehicle.Mileage < 0 {
		return fmt.Errorf("%w: mileage cannot be negative", ErrInvalidInput)
	}
	return nil
}

// GetByID returns a quote request
func (s *QuoteRequestService) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuoteRequest, error) {
	qr, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quote request: %w", err)
	}
	return qr, nil
}

// Cancel closes the request on the owner's behalf. PENDING estimates on it are
// rejected in the same transaction, except those past their validity, which
// are expired instead.
func (s *QuoteRequestService) Cancel(ctx context.Context, id, byOwnerID uuid.UUID) (*domain.QuoteRequest, error) {
	unlock, err := s.locker.Lock(ctx, requestLockKey(id))
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := s.now()
	var qr *domain.QuoteRequest
	var rejected, expired []domain.Estimate

	err = inTransaction(ctx, s.db, func(tx *gorm.DB) error {
		requests := s.requestRepo.WithTx(tx)
		estimates := s.estimateRepo.WithTx(tx)

		var err error
		qr, err = lockRequest(ctx, requests, id)
		if err != nil {
			return err
		}
		if qr.OwnerID != byOwnerID {
			return ErrForbidden
		}

		from := qr.Status
		if err := domain.ValidateQuoteRequestTransition(from, domain.QuoteRequestStatusCancelled); err != nil {
			return err
		}

		pending, err := estimates.ListPendingByRequest(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to list pending estimates: %w", err)
		}
		for _, e := range pending {
			if e.IsExpiredAt(now) {
				expired = append(expired, e)
			} else {
				rejected = append(rejected, e)
			}
		}
		if err := transitionAll(ctx, estimates, rejected, domain.EstimateStatusRejected, now); err != nil {
			return err
		}
		if err := transitionAll(ctx, estimates, expired, domain.EstimateStatusExpired, now); err != nil {
			return err
		}

		if err := requests.UpdateStatus(ctx, qr, domain.QuoteRequestStatusCancelled, now, map[string]interface{}{
			"cancelled_at": now,
		}); err != nil {
			return err
		}
		qr.CancelledAt = ptr(now)

		history := []*domain.StatusTransition{
			requestTransition(qr, from, domain.QuoteRequestStatusCancelled, &byOwnerID, "cancelled by owner", now),
		}
		for i := range rejected {
			history = append(history, estimateTransition(&rejected[i], domain.EstimateStatusPending,
				domain.EstimateStatusRejected, &byOwnerID, "request cancelled", now))
		}
		for i := range expired {
			history = append(history, estimateTransition(&expired[i], domain.EstimateStatusPending,
				domain.EstimateStatusExpired, nil, "validity expired", now))
		}
		return s.historyRepo.WithTx(tx).Create(ctx, history...)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("quote request cancelled",
		zap.String("quote_request_id", id.String()),
		zap.Int("rejected_estimates", len(rejected)),
		zap.Int("expired_estimates", len(expired)),
	)

	if len(rejected) > 0 {
		s.dispatcher.Notify(ctx, domain.NewLifecycleEvent(
			domain.EventRequestCancelled, qr.ID, nil, distinctCenters(rejected), now))
	}
	return qr, nil
}

// Complete is called by the center whose estimate was accepted once the work is done
func (s *QuoteRequestService) Complete(ctx context.Context, id, byCenterID uuid.UUID) (*domain.QuoteRequest, error) {
	unlock, err := s.locker.Lock(ctx, requestLockKey(id))
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := s.now()
	var qr *domain.QuoteRequest

	err = inTransaction(ctx, s.db, func(tx *gorm.DB) error {
		requests := s.requestRepo.WithTx(tx)

		var err error
		qr, err = lockRequest(ctx, requests, id)
		if err != nil {
			return err
		}

		from := qr.Status
		if qr.AcceptedEstimateID == nil {
			return domain.ValidateQuoteRequestTransition(from, domain.QuoteRequestStatusCompleted)
		}

		accepted, err := s.estimateRepo.WithTx(tx).GetByID(ctx, *qr.AcceptedEstimateID)
		if err != nil {
			return fmt.Errorf("failed to load accepted estimate: %w", err)
		}
		if accepted.CenterID != byCenterID {
			return ErrForbidden
		}

		if err := domain.ValidateQuoteRequestTransition(from, domain.QuoteRequestStatusCompleted); err != nil {
			return err
		}

		if err := requests.UpdateStatus(ctx, qr, domain.QuoteRequestStatusCompleted, now, map[string]interface{}{
			"completed_at": now,
		}); err != nil {
			return err
		}
		qr.CompletedAt = ptr(now)

		return s.historyRepo.WithTx(tx).Create(ctx,
			requestTransition(qr, from, domain.QuoteRequestStatusCompleted, &byCenterID, "work completed", now))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("quote request completed",
		zap.String("quote_request_id", id.String()),
		zap.String("center_id", byCenterID.String()),
	)

	s.dispatcher.Notify(ctx, domain.NewLifecycleEvent(
		domain.EventRequestCompleted, qr.ID, qr.AcceptedEstimateID, []uuid.UUID{qr.OwnerID}, now))
	return qr, nil
}

// ListByOwner returns all of an owner's requests, newest first
func (s *QuoteRequestService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.QuoteRequest, error) {
	requests, err := s.requestRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quote requests: %w", err)
	}
	return requests, nil
}

// ListOpen returns a page of requests that still accept estimates
func (s *QuoteRequestService) ListOpen(ctx context.Context, filter domain.OpenRequestFilter) (*domain.PaginatedResponse, error) {
	filter.Page, filter.PageSize = repository.NormalizePage(filter.Page, filter.PageSize)
	filter.Category = strings.TrimSpace(filter.Category)
	filter.Location = strings.TrimSpace(filter.Location)

	requests, total, err := s.requestRepo.ListOpen(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list open quote requests: %w", err)
	}

	return &domain.PaginatedResponse{
		Data:       mapper.ToQuoteRequestDTOs(requests),
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: repository.TotalPages(total, filter.PageSize),
	}, nil
}

// History returns every status change of the request and its estimates, oldest first
func (s *QuoteRequestService) History(ctx context.Context, id uuid.UUID) ([]domain.StatusTransition, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	history, err := s.historyRepo.ListByRequest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list status history: %w", err)
	}
	return history, nil
}

// lockRequest loads the request with a row lock, mapping a missing row to ErrNotFound
func lockRequest(ctx context.Context, requests *repository.QuoteRequestRepository, id uuid.UUID) (*domain.QuoteRequest, error) {
	qr, err := requests.GetByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load quote request: %w", err)
	}
	return qr, nil
}

// transitionAll moves every given PENDING estimate to the target status and
// updates the slice in place. A row that already left PENDING means a
// concurrent writer, reported as a stale version.
func transitionAll(ctx context.Context, estimates *repository.EstimateRepository, list []domain.Estimate, to domain.EstimateStatus, now time.Time) error {
	if len(list) == 0 {
		return nil
	}
	for i := range list {
		if err := domain.ValidateEstimateTransition(list[i].Status, to); err != nil {
			return err
		}
	}

	changed, err := estimates.TransitionStatus(ctx, estimateIDs(list), domain.EstimateStatusPending, to, now)
	if err != nil {
		return fmt.Errorf("failed to update estimates: %w", err)
	}
	if changed != int64(len(list)) {
		return repository.ErrStaleVersion
	}

	for i := range list {
		list[i].Status = to
		list[i].UpdatedAt = now
	}
	return nil
}
