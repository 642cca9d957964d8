package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/straye-as/repair-quote-api/internal/auth"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"github.com/straye-as/repair-quote-api/internal/export"
	"github.com/straye-as/repair-quote-api/internal/http/handler"
	"github.com/straye-as/repair-quote-api/internal/repository"
	"github.com/straye-as/repair-quote-api/internal/service"
	"github.com/straye-as/repair-quote-api/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type nopDispatcher struct{}

func (nopDispatcher) Notify(context.Context, domain.LifecycleEvent) {}

type testEnv struct {
	db            *gorm.DB
	requests      *service.QuoteRequestService
	estimates     *service.EstimateService
	notifications *service.NotificationService
	requestH      *handler.QuoteRequestHandler
	estimateH     *handler.EstimateHandler
	notificationH *handler.NotificationHandler
	adminH        *handler.AdminHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	requestRepo := repository.NewQuoteRequestRepository(db)
	estimateRepo := repository.NewEstimateRepository(db)
	historyRepo := repository.NewStatusTransitionRepository(db)
	locker := service.NewKeyedLocker(5 * time.Second)

	requests := service.NewQuoteRequestService(requestRepo, estimateRepo, historyRepo, locker, nopDispatcher{}, db, logger)
	estimates := service.NewEstimateService(requestRepo, estimateRepo, historyRepo, locker, nopDispatcher{}, db, logger)
	notifications := service.NewNotificationService(repository.NewNotificationRepository(db), logger)

	return &testEnv{
		db:            db,
		requests:      requests,
		estimates:     estimates,
		notifications: notifications,
		requestH:      handler.NewQuoteRequestHandler(requests, logger),
		estimateH:     handler.NewEstimateHandler(estimates, requests, export.NewComparisonExporter(logger), logger),
		notificationH: handler.NewNotificationHandler(notifications, logger),
		adminH:        handler.NewAdminHandler(estimates, logger),
	}
}

func userContext(id uuid.UUID, role domain.Role) context.Context {
	return auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID:      id,
		DisplayName: "Test " + string(role),
		Roles:       []domain.Role{role},
	})
}

// withChiContext adds Chi route context with the given URL parameters
func withChiContext(ctx context.Context, params map[string]string) context.Context {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return context.WithValue(ctx, chi.RouteCtxKey, rctx)
}

func newRequest(t *testing.T, ctx context.Context, method, target string, body interface{}, params map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(withChiContext(ctx, params))
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func createBody() domain.CreateQuoteRequestRequest {
	return domain.CreateQuoteRequestRequest{
		Vehicle: domain.VehicleInput{
			Make:    "Hyundai",
			Model:   "Ioniq 5",
			Year:    2023,
			Mileage: 12000,
		},
		Description: "Rear bumper dent after parking incident",
		Category:    "body",
		Location:    "Daegu",
	}
}

func estimateBody(parts, labor int64) domain.EstimateRequest {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.EstimateRequest{
		PartsCost:    parts,
		LaborCost:    labor,
		TotalCost:    parts + labor,
		Description:  "Repaint and refit bumper",
		ProposedDate: now.Add(48 * time.Hour),
		ValidUntil:   now.Add(7 * 24 * time.Hour),
	}
}

func (e *testEnv) seedRequest(t *testing.T, ownerID uuid.UUID) *domain.QuoteRequest {
	t.Helper()
	req := createBody()
	qr, err := e.requests.Create(context.Background(), ownerID, domain.QuoteRequestDetails{
		Vehicle: domain.VehicleDescriptor{
			Make:    req.Vehicle.Make,
			Model:   req.Vehicle.Model,
			Year:    req.Vehicle.Year,
			Mileage: req.Vehicle.Mileage,
		},
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
	})
	require.NoError(t, err)
	return qr
}

func (e *testEnv) seedEstimate(t *testing.T, requestID, centerID uuid.UUID, parts, labor int64) *domain.Estimate {
	t.Helper()
	body := estimateBody(parts, labor)
	est, err := e.estimates.Submit(context.Background(), requestID, centerID, domain.EstimateInput{
		Cost:         domain.CostBreakdown{Parts: parts, Labor: labor, Total: parts + labor},
		Description:  body.Description,
		ProposedDate: body.ProposedDate,
		ValidUntil:   body.ValidUntil,
	})
	require.NoError(t, err)
	return est
}
