package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"github.com/straye-as/repair-quote-api/internal/repository"
	"github.com/straye-as/repair-quote-api/internal/service"
	"github.com/straye-as/repair-quote-api/internal/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// recordingDispatcher keeps every event handed to it
type recordingDispatcher struct {
	mu     sync.Mutex
	events []domain.LifecycleEvent
}

func (d *recordingDispatcher) Notify(_ context.Context, event domain.LifecycleEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

func (d *recordingDispatcher) ofType(eventType domain.EventType) []domain.LifecycleEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []domain.LifecycleEvent
	for _, e := range d.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

func (d *recordingDispatcher) reset() {
	d.mu.Lock()
	d.events = nil
	d.mu.Unlock()
}

type fixture struct {
	db         *gorm.DB
	requests   *service.QuoteRequestService
	estimates  *service.EstimateService
	dispatcher *recordingDispatcher
	clock      *testutil.Clock
}

var testStart = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.SetupTestDB(t)

	requestRepo := repository.NewQuoteRequestRepository(db)
	estimateRepo := repository.NewEstimateRepository(db)
	historyRepo := repository.NewStatusTransitionRepository(db)
	locker := service.NewKeyedLocker(5 * time.Second)
	dispatcher := &recordingDispatcher{}
	clock := testutil.NewClock(testStart)

	requests := service.NewQuoteRequestService(requestRepo, estimateRepo, historyRepo, locker, dispatcher, db, zap.NewNop())
	requests.SetClock(clock.Now)
	estimates := service.NewEstimateService(requestRepo, estimateRepo, historyRepo, locker, dispatcher, db, zap.NewNop())
	estimates.SetClock(clock.Now)

	return &fixture{
		db:         db,
		requests:   requests,
		estimates:  estimates,
		dispatcher: dispatcher,
		clock:      clock,
	}
}

func details() domain.QuoteRequestDetails {
	return domain.QuoteRequestDetails{
		Vehicle: domain.VehicleDescriptor{
			Make:    "Kia",
			Model:   "Sorento",
			Year:    2021,
			Mileage: 31000,
		},
		Description: "Engine warning light after cold start",
		Category:    "engine",
		Location:    "Busan",
		ImageRefs:   []string{"quote-images/abc.jpg"},
	}
}

// estimateInput returns a consistent estimate valid for a week from the clock
func (f *fixture) estimateInput(parts, labor int64) domain.EstimateInput {
	now := f.clock.Now()
	return domain.EstimateInput{
		Cost:         domain.CostBreakdown{Parts: parts, Labor: labor, Total: parts + labor},
		Description:  "Replace sensor",
		ProposedDate: now.Add(72 * time.Hour),
		ValidUntil:   now.Add(7 * 24 * time.Hour),
	}
}

func (f *fixture) createRequest(t *testing.T, ownerID uuid.UUID) *domain.QuoteRequest {
	t.Helper()
	qr, err := f.requests.Create(context.Background(), ownerID, details())
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	return qr
}

func (f *fixture) submit(t *testing.T, requestID, centerID uuid.UUID, parts, labor int64) *domain.Estimate {
	t.Helper()
	e, err := f.estimates.Submit(context.Background(), requestID, centerID, f.estimateInput(parts, labor))
	if err != nil {
		t.Fatalf("submit estimate: %v", err)
	}
	return e
}

func (f *fixture) estimateStatus(t *testing.T, id uuid.UUID) domain.EstimateStatus {
	t.Helper()
	var e domain.Estimate
	if err := f.db.First(&e, "id = ?", id).Error; err != nil {
		t.Fatalf("load estimate: %v", err)
	}
	return e.Status
}

func (f *fixture) requestStatus(t *testing.T, id uuid.UUID) domain.QuoteRequestStatus {
	t.Helper()
	var qr domain.QuoteRequest
	if err := f.db.First(&qr, "id = ?", id).Error; err != nil {
		t.Fatalf("load request: %v", err)
	}
	return qr.Status
}
