package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/repair-quote-api/internal/auth"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"github.com/straye-as/repair-quote-api/internal/notify"
	"github.com/straye-as/repair-quote-api/internal/repository"
	"github.com/straye-as/repair-quote-api/internal/service"
	"github.com/straye-as/repair-quote-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInboxChannel_DeliveryIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	notifications := service.NewNotificationService(repository.NewNotificationRepository(db), zap.NewNop())
	channel := notify.NewInboxChannel(notifications)

	ownerID := uuid.New()
	estimateID := uuid.New()
	event := domain.NewLifecycleEvent(domain.EventEstimateSubmitted, uuid.New(), &estimateID,
		[]uuid.UUID{ownerID, uuid.Nil}, time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))

	ctx := context.Background()
	require.NoError(t, channel.Deliver(ctx, event))
	require.NoError(t, channel.Deliver(ctx, event))

	userCtx := auth.WithUserContext(ctx, &auth.UserContext{UserID: ownerID, Roles: []domain.Role{domain.RoleOwner}})
	page, err := notifications.GetForCurrentUser(userCtx, 1, 20, false, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	items := page.Data.([]domain.NotificationDTO)
	require.Len(t, items, 1)
	assert.Equal(t, string(domain.EventEstimateSubmitted), items[0].Type)
	assert.Equal(t, event.RequestID, items[0].RequestID)
	assert.Equal(t, &estimateID, items[0].EstimateID)
	assert.False(t, items[0].Read)

	count, err := notifications.GetUnreadCount(userCtx)
	require.NoError(t, err)
	assert.Equal(t, 1, count.Count)
}
