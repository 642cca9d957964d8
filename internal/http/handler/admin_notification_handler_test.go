package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminHandler_SweepExpired(t *testing.T) {
	env := newTestEnv(t)
	qr := env.seedRequest(t, uuid.New())
	est := env.seedEstimate(t, qr.ID, uuid.New(), 10, 10)

	// push the validity into the past behind the service's back
	past := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, env.db.Model(&domain.Estimate{}).Where("id = ?", est.ID).Update("valid_until", past).Error)

	adminCtx := userContext(uuid.New(), domain.RoleAdmin)
	w := serve(env.adminH.SweepExpired, newRequest(t, adminCtx, http.MethodPost, "/", nil, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, decode[domain.SweepResultDTO](t, w).Expired)

	w = serve(env.adminH.SweepExpired, newRequest(t, adminCtx, http.MethodPost, "/", nil, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decode[domain.SweepResultDTO](t, w).Expired)
}

func TestNotificationHandler(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	ctx := userContext(userID, domain.RoleOwner)

	event := domain.NewLifecycleEvent(domain.EventEstimateSubmitted, uuid.New(), nil, []uuid.UUID{userID}, time.Now().UTC())
	require.NoError(t, env.notifications.CreateForEvent(context.Background(), event, userID))

	w := serve(env.notificationH.GetUnreadCount, newRequest(t, ctx, http.MethodGet, "/", nil, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[domain.UnreadCountDTO](t, w).Count)

	w = serve(env.notificationH.List, newRequest(t, ctx, http.MethodGet, "/api/v1/notifications?type=ESTIMATE_SUBMITTED", nil, nil))
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[struct {
		Data []domain.NotificationDTO `json:"data"`
	}](t, w)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "ESTIMATE_SUBMITTED", page.Data[0].Type)

	w = serve(env.notificationH.List, newRequest(t, ctx, http.MethodGet, "/api/v1/notifications?type=task_assigned", nil, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	params := map[string]string{"id": page.Data[0].ID.String()}
	w = serve(env.notificationH.MarkAsRead, newRequest(t, userContext(uuid.New(), domain.RoleOwner), http.MethodPut, "/", nil, params))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(env.notificationH.MarkAsRead, newRequest(t, ctx, http.MethodPut, "/", nil, params))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(env.notificationH.MarkAsRead, newRequest(t, ctx, http.MethodPut, "/", nil, map[string]string{"id": uuid.NewString()}))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(env.notificationH.MarkAllAsRead, newRequest(t, ctx, http.MethodPut, "/", nil, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(env.notificationH.GetUnreadCount, newRequest(t, context.Background(), http.MethodGet, "/", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
