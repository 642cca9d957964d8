package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/repair-quote-api/internal/auth"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"github.com/straye-as/repair-quote-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EstimateService manages estimate submission, acceptance and expiry
type EstimateService struct {
	requestRepo  *repository.QuoteRequestRepository
	estimateRepo *repository.EstimateRepository
	historyRepo  *repository.StatusTransitionRepository
	locker       *KeyedLocker
	dispatcher   NotificationDispatcher
	db           *gorm.DB
	logger       *zap.Logger
	now          func() time.Time
}

// NewEstimateService creates a new estimate service
func NewEstimateService(
	requestRepo *repository.QuoteRequestRepository,
	estimateRepo *repository.EstimateRepository,
	historyRepo *repository.StatusTransitionRepository,
	locker *KeyedLocker,
	dispatcher NotificationDispatcher,
	db *gorm.DB,
	logger *zap.Logger,
) *EstimateService {
	return &EstimateService{
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
func (s *EstimateService) SetClock(now func() time.Time) {
	s.now = func() time.Time { return now().UTC() }
}

func validateEstimateInput(input *domain.EstimateInput, now time.Time) error {
	if !input.Cost.IsConsistent() {
		return fmt.Errorf("%w: total %d must equal parts %d plus labor %d and no amount may be negative",
			ErrInvalidCost, input.Cost.Total, input.Cost.Parts, input.Cost.Labor)
	}
	if input.ProposedDate.IsZero() {
		return fmt.Errorf("%w: proposed date is required", ErrInvalidInput)
	}
	if !input.ValidUntil.After(now) {
		return fmt.Errorf("%w: validUntil must be in the future", ErrInvalidInput)
	}
	input.Description = strings.TrimSpace(input.Description)
	input.ProposedDate = input.ProposedDate.UTC()
	input.ValidUntil = input.ValidUntil.UTC()
	return nil
}

// Submit records a center's estimate on an open request. The first estimate
// moves the request from OPEN to HAS_OFFERS.
func (s *EstimateService) Submit(ctx context.Context, requestID, centerID uuid.UUID, input domain.EstimateInput) (*domain.Estimate, error) {
	now := s.now()
	if err := validateEstimateInput(&input, now); err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, requestLockKey(requestID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	estimate := &domain.Estimate{
		RequestID:    requestID,
		CenterID:     centerID,
		Cost:         input.Cost,
		Description:  input.Description,
		ProposedDate: input.ProposedDate,
		ValidUntil:   input.ValidUntil,
		Status:       domain.EstimateStatusPending,
	}
	estimate.CreatedAt = now
	estimate.UpdatedAt = now

	var qr *domain.QuoteRequest
	err = inTransaction(ctx, s.db, func(tx *gorm.DB) error {
		requests := s.requestRepo.WithTx(tx)
		estimates := s.estimateRepo.WithTx(tx)

		var err error
		qr, err = lockRequest(ctx, requests, requestID)
		if err != nil {
			return err
		}
		if !qr.Status.AcceptsEstimates() {
			return ErrRequestClosed
		}
		if qr.OwnerID == centerID {
			return ErrForbidden
		}

		if _, err := estimates.FindPending(ctx, requestID, centerID); err == nil {
			return ErrDuplicateSubmission
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing estimates: %w", err)
		}

		if err := estimates.Create(ctx, estimate); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateSubmission
			}
			return fmt.Errorf("failed to create estimate: %w", err)
		}

		history := []*domain.StatusTransition{
			estimateTransition(estimate, "", domain.EstimateStatusPending, &centerID, "submitted", now),
		}

		if qr.Status == domain.QuoteRequestStatusOpen {
			if err := domain.ValidateQuoteRequestTransition(qr.Status, domain.QuoteRequestStatusHasOffers); err != nil {
				return err
			}
			if err := requests.UpdateStatus(ctx, qr, domain.QuoteRequestStatusHasOffers, now, nil); err != nil {
				return err
			}
			history = append(history, requestTransition(qr, domain.QuoteRequestStatusOpen,
				domain.QuoteRequestStatusHasOffers, &centerID, "first estimate received", now))
		} else if err := requests.Touch(ctx, qr, now); err != nil {
			return err
		}

		return s.historyRepo.WithTx(tx).Create(ctx, history...)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("estimate submitted",
		zap.String("estimate_id", estimate.ID.String()),
		zap.String("quote_request_id", requestID.String()),
		zap.String("center_id", centerID.String()),
		zap.Int64("total", estimate.Cost.Total),
	)

	s.dispatcher.Notify(ctx, domain.NewLifecycleEvent(
		domain.EventEstimateSubmitted, requestID, &estimate.ID, []uuid.UUID{qr.OwnerID}, now))
	return estimate, nil
}

// Resubmit overwrites the priced fields of the center's PENDING estimate in place
func (s *EstimateService) Resubmit(ctx context.Context, estimateID, byCenterID uuid.UUID, input domain.EstimateInput) (*domain.Estimate, error) {
	now := s.now()
	if err := validateEstimateInput(&input, now); err != nil {
		return nil, err
	}

	current, err := s.load(ctx, estimateID)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, requestLockKey(current.RequestID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	var estimate *domain.Estimate
	var qr *domain.QuoteRequest
	err = inTransaction(ctx, s.db, func(tx *gorm.DB) error {
		requests := s.requestRepo.WithTx(tx)
		estimates := s.estimateRepo.WithTx(tx)

		var err error
		qr, err = lockRequest(ctx, requests, current.RequestID)
		if err != nil {
			return err
		}
		estimate, err = estimates.GetByID(ctx, estimateID)
		if err != nil {
			return fmt.Errorf("failed to reload estimate: %w", err)
		}

		if estimate.CenterID != byCenterID {
			return ErrForbidden
		}
		if estimate.Status != domain.EstimateStatusPending {
			return &domain.TransitionError{
				Entity: domain.EntityTypeEstimate,
				From:   string(estimate.Status),
				To:     string(domain.EstimateStatusPending),
			}
		}
		if estimate.IsExpiredAt(now) {
			return &domain.TransitionError{
				Entity: domain.EntityTypeEstimate,
				From:   string(domain.EstimateStatusExpired),
				To:     string(domain.EstimateStatusPending),
			}
		}
		if !qr.Status.AcceptsEstimates() {
			return ErrRequestClosed
		}

		estimate.Cost = input.Cost
		estimate.Description = input.Description
		estimate.ProposedDate = input.ProposedDate
		estimate.ValidUntil = input.ValidUntil
		if err := estimates.UpdateDetails(ctx, estimate, now); err != nil {
			return err
		}
		if err := requests.Touch(ctx, qr, now); err != nil {
			return err
		}

		return s.historyRepo.WithTx(tx).Create(ctx, estimateTransition(estimate,
			domain.EstimateStatusPending, domain.EstimateStatusPending, &byCenterID, "resubmitted", now))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("estimate resubmitted",
		zap.String("estimate_id", estimateID.String()),
		zap.String("quote_request_id", estimate.RequestID.String()),
		zap.Int64("total", estimate.Cost.Total),
	)

	s.dispatcher.Notify(ctx, domain.NewLifecycleEvent(
		domain.EventEstimateSubmitted, estimate.RequestID, &estimate.ID, []uuid.UUID{qr.OwnerID}, now))
	return estimate, nil
}

// Accept confirms one estimate. In a single transaction the estimate becomes
// ACCEPTED, every other PENDING estimate on the request becomes REJECTED (or
// EXPIRED when already past validity) and the request becomes CONFIRMED.
func (s *EstimateService) Accept(ctx context.Context, estimateID, byOwnerID uuid.UUID) (*domain.QuoteRequest, error) {
	current, err := s.load(ctx, estimateID)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, requestLockKey(current.RequestID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := s.now()
	var qr *domain.QuoteRequest
	var target *domain.Estimate
	var rejected, expired []domain.Estimate

	err = inTransaction(ctx, s.db, func(tx *gorm.DB) error {
		requests := s.requestRepo.WithTx(tx)
		estimates := s.estimateRepo.WithTx(tx)

		var err error
		qr, err = lockRequest(ctx, requests, current.RequestID)
		if err != nil {
			return err
		}
		target, err = estimates.GetByID(ctx, estimateID)
		if err != nil {
			return fmt.Errorf("failed to reload estimate: %w", err)
		}

		if qr.OwnerID != byOwnerID {
			return ErrForbidden
		}
		if err := domain.ValidateEstimateTransition(target.Status, domain.EstimateStatusAccepted); err != nil {
			return err
		}
		if target.IsExpiredAt(now) {
			return fmt.Errorf("%w: estimate expired at %s", ErrInvalidTransition, target.ValidUntil.Format(time.RFC3339))
		}

		from := qr.Status
		if err := domain.ValidateQuoteRequestTransition(from, domain.QuoteRequestStatusConfirmed); err != nil {
			return err
		}

		pending, err := estimates.ListPendingByRequest(ctx, qr.ID)
		if err != nil {
			return fmt.Errorf("failed to list pending estimates: %w", err)
		}
		for _, e := range pending {
			switch {
			case e.ID == target.ID:
			case e.IsExpiredAt(now):
				expired = append(expired, e)
			default:
				rejected = append(rejected, e)
			}
		}

		accepted := []domain.Estimate{*target}
		if err := transitionAll(ctx, estimates, accepted, domain.EstimateStatusAccepted, now); err != nil {
			return err
		}
		*target = accepted[0]
		if err := transitionAll(ctx, estimates, rejected, domain.EstimateStatusRejected, now); err != nil {
			return err
		}
		if err := transitionAll(ctx, estimates, expired, domain.EstimateStatusExpired, now); err != nil {
			return err
		}

		if err := requests.UpdateStatus(ctx, qr, domain.QuoteRequestStatusConfirmed, now, map[string]interface{}{
			"accepted_estimate_id": target.ID,
		}); err != nil {
			return err
		}
		qr.AcceptedEstimateID = ptr(target.ID)

		history := []*domain.StatusTransition{
			estimateTransition(target, domain.EstimateStatusPending, domain.EstimateStatusAccepted, &byOwnerID, "accepted by owner", now),
		}
		for i := range rejected {
			history = append(history, estimateTransition(&rejected[i], domain.EstimateStatusPending,
				domain.EstimateStatusRejected, &byOwnerID, "another estimate accepted", now))
		}
		for i := range expired {
			history = append(history, estimateTransition(&expired[i], domain.EstimateStatusPending,
				domain.EstimateStatusExpired, nil, "validity expired", now))
		}
		history = append(history, requestTransition(qr, from, domain.QuoteRequestStatusConfirmed, &byOwnerID, "estimate accepted", now))
		return s.historyRepo.WithTx(tx).Create(ctx, history...)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("estimate accepted",
		zap.String("estimate_id", estimateID.String()),
		zap.String("quote_request_id", qr.ID.String()),
		zap.Int("rejected_siblings", len(rejected)),
		zap.Int("expired_siblings", len(expired)),
	)

	s.dispatcher.Notify(ctx, domain.NewLifecycleEvent(
		domain.EventEstimateAccepted, qr.ID, &target.ID, []uuid.UUID{target.CenterID}, now))
	for i := range rejected {
		s.dispatcher.Notify(ctx, domain.NewLifecycleEvent(
			domain.EventEstimateRejected, qr.ID, &rejected[i].ID, []uuid.UUID{rejected[i].CenterID}, now))
	}
	return qr, nil
}

// Reject declines a single estimate. The parent request keeps its status.
func (s *EstimateService) Reject(ctx context.Context, estimateID, byOwnerID uuid.UUID) (*domain.Estimate, error) {
	current, err := s.load(ctx, estimateID)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, requestLockKey(current.RequestID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := s.now()
	var estimate *domain.Estimate

	err = inTransaction(ctx, s.db, func(tx *gorm.DB) error {
		requests := s.requestRepo.WithTx(tx)
		estimates := s.estimateRepo.WithTx(tx)

		qr, err := lockRequest(ctx, requests, current.RequestID)
		if err != nil {
			return err
		}
		estimate, err = estimates.GetByID(ctx, estimateID)
		if err != nil {
			return fmt.Errorf("failed to reload estimate: %w", err)
		}
		if qr.OwnerID != byOwnerID {
			return ErrForbidden
		}
		// lapsed estimates are left for the sweep
		if estimate.Status == domain.EstimateStatusPending && estimate.IsExpiredAt(now) {
			return fmt.Errorf("%w: estimate expired at %s", ErrInvalidTransition, estimate.ValidUntil.Format(time.RFC3339))
		}

		list := []domain.Estimate{*estimate}
		if err := transitionAll(ctx, estimates, list, domain.EstimateStatusRejected, now); err != nil {
			return err
		}
		*estimate = list[0]

		if err := requests.Touch(ctx, qr, now); err != nil {
			return err
		}
		return s.historyRepo.WithTx(tx).Create(ctx, estimateTransition(estimate,
			domain.EstimateStatusPending, domain.EstimateStatusRejected, &byOwnerID, "rejected by owner", now))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("estimate rejected",
		zap.String("estimate_id", estimateID.String()),
		zap.String("quote_request_id", estimate.RequestID.String()),
	)

	s.dispatcher.Notify(ctx, domain.NewLifecycleEvent(
		domain.EventEstimateRejected, estimate.RequestID, &estimate.ID, []uuid.UUID{estimate.CenterID}, now))
	return estimate, nil
}

// SweepExpired marks every PENDING estimate whose validity ended before now as
// EXPIRED and returns how many changed. Requests whose lock cannot be taken are
// skipped and reported with ErrBusy after the rest have been processed.
func (s *EstimateService) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	now = now.UTC()

	requestIDs, err := s.estimateRepo.RequestIDsWithDuePending(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to find expired estimates: %w", err)
	}

	total := 0
	skipped := 0
	for _, requestID := range requestIDs {
		n, err := s.expireForRequest(ctx, requestID, now)
		if errors.Is(err, ErrBusy) {
			s.logger.Warn("skipping busy quote request during expiry sweep",
				zap.String("quote_request_id", requestID.String()),
			)
			skipped++
			continue
		}
		if err != nil {
			return total, err
		}
		total += n
	}

	if total > 0 || skipped > 0 {
		s.logger.Info("expiry sweep finished",
			zap.Int("expired", total),
			zap.Int("skipped_requests", skipped),
		)
	}

	if skipped > 0 {
		return total, fmt.Errorf("%w: %d requests skipped", ErrBusy, skipped)
	}
	return total, nil
}

func (s *EstimateService) expireForRequest(ctx context.Context, requestID uuid.UUID, now time.Time) (int, error) {
	unlock, err := s.locker.Lock(ctx, requestLockKey(requestID))
	if err != nil {
		return 0, err
	}
	defer unlock()

	var due []domain.Estimate
	err = inTransaction(ctx, s.db, func(tx *gorm.DB) error {
		requests := s.requestRepo.WithTx(tx)
		estimates := s.estimateRepo.WithTx(tx)

		qr, err := lockRequest(ctx, requests, requestID)
		if err != nil {
			return err
		}

		due, err = estimates.ListDuePending(ctx, requestID, now)
		if err != nil {
			return fmt.Errorf("failed to list expired estimates: %w", err)
		}
		if len(due) == 0 {
			return nil
		}

		if err := transitionAll(ctx, estimates, due, domain.EstimateStatusExpired, now); err != nil {
			return err
		}
		if err := requests.Touch(ctx, qr, now); err != nil {
			return err
		}

		history := make([]*domain.StatusTransition, 0, len(due))
		for i := range due {
			history = append(history, estimateTransition(&due[i], domain.EstimateStatusPending,
				domain.EstimateStatusExpired, nil, "validity expired", now))
		}
		return s.historyRepo.WithTx(tx).Create(ctx, history...)
	})
	if err != nil {
		return 0, err
	}
	return len(due), nil
}

// GetByID returns an estimate the caller may see: the request owner, the
// submitting center and admins.
func (s *EstimateService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Estimate, error) {
	estimate, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	userCtx, ok := auth.FromContext(ctx)
	if !ok || userCtx.IsAdmin() || userCtx.UserID == estimate.CenterID {
		return estimate, nil
	}

	qr, err := s.requestRepo.GetByID(ctx, estimate.RequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quote request: %w", err)
	}
	if qr.OwnerID != userCtx.UserID {
		return nil, ErrForbidden
	}
	return estimate, nil
}

// ListByRequest returns the estimates on a request in submission order. The
// owner and admins see all of them; a center sees only its own.
func (s *EstimateService) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Estimate, error) {
	qr, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quote request: %w", err)
	}

	estimates, err := s.estimateRepo.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list estimates: %w", err)
	}

	userCtx, ok := auth.FromContext(ctx)
	if !ok || userCtx.IsAdmin() || userCtx.UserID == qr.OwnerID {
		return estimates, nil
	}
	if !userCtx.HasRole(domain.RoleCenter) {
		return nil, ErrForbidden
	}

	own := make([]domain.Estimate, 0, 1)
	for _, e := range estimates {
		if e.CenterID == userCtx.UserID {
			own = append(own, e)
		}
	}
	return own, nil
}

// ListByCenter returns every estimate a center has submitted, newest first
func (s *EstimateService) ListByCenter(ctx context.Context, centerID uuid.UUID) ([]domain.Estimate, error) {
	estimates, err := s.estimateRepo.ListByCenter(ctx, centerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list estimates: %w", err)
	}
	return estimates, nil
}

func (s *EstimateService) load(ctx context.Context, id uuid.UUID) (*domain.Estimate, error) {
	estimate, err := s.estimateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get estimate: %w", err)
	}
	return estimate, nil
}
