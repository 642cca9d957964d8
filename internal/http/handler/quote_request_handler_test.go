package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteRequestHandler_Create(t *testing.T) {
	env := newTestEnv(t)
	ownerID := uuid.New()
	ctx := userContext(ownerID, domain.RoleOwner)

	w := serve(env.requestH.Create, newRequest(t, ctx, http.MethodPost, "/api/v1/quote-requests", createBody(), nil))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	dto := decode[domain.QuoteRequestDTO](t, w)
	assert.Equal(t, ownerID, dto.OwnerID)
	assert.Equal(t, domain.QuoteRequestStatusOpen, dto.Status)
	assert.Equal(t, "Ioniq 5", dto.Vehicle.Model)
	assert.Equal(t, "/api/v1/quote-requests/"+dto.ID.String(), w.Header().Get("Location"))

	t.Run("second open request conflicts", func(t *testing.T) {
		w := serve(env.requestH.Create, newRequest(t, ctx, http.MethodPost, "/api/v1/quote-requests", createBody(), nil))
		assert.Equal(t, http.StatusConflict, w.Code)
		apiErr := decode[domain.APIError](t, w)
		assert.Equal(t, domain.ErrorTypeConflict, apiErr.Type)
	})

	t.Run("missing vehicle make", func(t *testing.T) {
		body := createBody()
		body.Vehicle.Make = ""
		w := serve(env.requestH.Create, newRequest(t, userContext(uuid.New(), domain.RoleOwner), http.MethodPost, "/", body, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		apiErr := decode[domain.APIError](t, w)
		assert.Equal(t, domain.ErrorTypeValidation, apiErr.Type)
		assert.Contains(t, apiErr.Errors, "make")
	})

	t.Run("implausible model year", func(t *testing.T) {
		body := createBody()
		body.Vehicle.Year = 1901
		w := serve(env.requestH.Create, newRequest(t, userContext(uuid.New(), domain.RoleOwner), http.MethodPost, "/", body, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := newRequest(t, userContext(uuid.New(), domain.RoleOwner), http.MethodPost, "/", "not an object", nil)
		w := serve(env.requestH.Create, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no caller", func(t *testing.T) {
		w := serve(env.requestH.Create, newRequest(t, context.Background(), http.MethodPost, "/", createBody(), nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestQuoteRequestHandler_GetByID(t *testing.T) {
	env := newTestEnv(t)
	ownerID := uuid.New()
	qr := env.seedRequest(t, ownerID)
	params := map[string]string{"id": qr.ID.String()}

	w := serve(env.requestH.GetByID, newRequest(t, userContext(ownerID, domain.RoleOwner), http.MethodGet, "/", nil, params))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(env.requestH.GetByID, newRequest(t, userContext(uuid.New(), domain.RoleCenter), http.MethodGet, "/", nil, params))
	assert.Equal(t, http.StatusOK, w.Code, "centers browse requests")

	w = serve(env.requestH.GetByID, newRequest(t, userContext(uuid.New(), domain.RoleOwner), http.MethodGet, "/", nil, params))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(env.requestH.GetByID, newRequest(t, userContext(ownerID, domain.RoleOwner), http.MethodGet, "/", nil,
		map[string]string{"id": uuid.NewString()}))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(env.requestH.GetByID, newRequest(t, userContext(ownerID, domain.RoleOwner), http.MethodGet, "/", nil,
		map[string]string{"id": "nope"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuoteRequestHandler_List(t *testing.T) {
	env := newTestEnv(t)
	ownerID := uuid.New()
	env.seedRequest(t, ownerID)
	env.seedRequest(t, uuid.New())

	w := serve(env.requestH.List, newRequest(t, userContext(ownerID, domain.RoleOwner), http.MethodGet, "/api/v1/quote-requests", nil, nil))
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]domain.QuoteRequestDTO](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, ownerID, list[0].OwnerID)

	other := "/api/v1/quote-requests?ownerId=" + uuid.NewString()
	w = serve(env.requestH.List, newRequest(t, userContext(ownerID, domain.RoleOwner), http.MethodGet, other, nil, nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(env.requestH.List, newRequest(t, userContext(uuid.New(), domain.RoleAdmin), http.MethodGet,
		"/api/v1/quote-requests?ownerId="+ownerID.String(), nil, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.QuoteRequestDTO](t, w), 1)
}

func TestQuoteRequestHandler_ListOpen(t *testing.T) {
	env := newTestEnv(t)
	env.seedRequest(t, uuid.New())
	env.seedRequest(t, uuid.New())

	w := serve(env.requestH.ListOpen, newRequest(t, userContext(uuid.New(), domain.RoleCenter), http.MethodGet,
		"/api/v1/quote-requests/open?category=body&pageSize=1", nil, nil))
	require.Equal(t, http.StatusOK, w.Code)

	page := decode[struct {
		Data       []domain.QuoteRequestDTO `json:"data"`
		Total      int64                    `json:"total"`
		TotalPages int                      `json:"totalPages"`
	}](t, w)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 2, page.TotalPages)
}

func TestQuoteRequestHandler_CancelAndHistory(t *testing.T) {
	env := newTestEnv(t)
	ownerID, centerID := uuid.New(), uuid.New()
	qr := env.seedRequest(t, ownerID)
	env.seedEstimate(t, qr.ID, centerID, 1000, 500)
	params := map[string]string{"id": qr.ID.String()}

	w := serve(env.requestH.Cancel, newRequest(t, userContext(uuid.New(), domain.RoleOwner), http.MethodDelete, "/", nil, params))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(env.requestH.Cancel, newRequest(t, userContext(ownerID, domain.RoleOwner), http.MethodDelete, "/", nil, params))
	require.Equal(t, http.StatusOK, w.Code)
	dto := decode[domain.QuoteRequestDTO](t, w)
	assert.Equal(t, domain.QuoteRequestStatusCancelled, dto.Status)
	assert.NotNil(t, dto.CancelledAt)

	w = serve(env.requestH.Cancel, newRequest(t, userContext(ownerID, domain.RoleOwner), http.MethodDelete, "/", nil, params))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = serve(env.requestH.History, newRequest(t, userContext(ownerID, domain.RoleOwner), http.MethodGet, "/", nil, params))
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[[]domain.StatusTransitionDTO](t, w)
	require.NotEmpty(t, history)
	assert.Equal(t, "OPEN", history[0].ToStatus)
	var cancelled, rejected bool
	for _, h := range history {
		cancelled = cancelled || (h.EntityType == domain.EntityTypeQuoteRequest && h.ToStatus == "CANCELLED")
		rejected = rejected || (h.EntityType == domain.EntityTypeEstimate && h.ToStatus == "REJECTED")
	}
	assert.True(t, cancelled)
	assert.True(t, rejected)

	w = serve(env.requestH.History, newRequest(t, userContext(centerID, domain.RoleCenter), http.MethodGet, "/", nil, params))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestQuoteRequestHandler_Complete(t *testing.T) {
	env := newTestEnv(t)
	ownerID, centerID := uuid.New(), uuid.New()
	qr := env.seedRequest(t, ownerID)
	est := env.seedEstimate(t, qr.ID, centerID, 1000, 500)
	params := map[string]string{"id": qr.ID.String()}

	w := serve(env.requestH.Complete, newRequest(t, userContext(centerID, domain.RoleCenter), http.MethodPost, "/", nil, params))
	assert.Equal(t, http.StatusConflict, w.Code, "nothing accepted yet")

	_, err := env.estimates.Accept(context.Background(), est.ID, ownerID)
	require.NoError(t, err)

	w = serve(env.requestH.Complete, newRequest(t, userContext(uuid.New(), domain.RoleCenter), http.MethodPost, "/", nil, params))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(env.requestH.Complete, newRequest(t, userContext(centerID, domain.RoleCenter), http.MethodPost, "/", nil, params))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.QuoteRequestStatusCompleted, decode[domain.QuoteRequestDTO](t, w).Status)
}
