package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/repair-quote-api/internal/auth"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"github.com/straye-as/repair-quote-api/internal/mapper"
	"github.com/straye-as/repair-quote-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotificationNotFound is returned when a notification is not found
var ErrNotificationNotFound = errors.New("notification not found")

// ErrNotificationNotOwned is returned when trying to access a notification owned by another user
var ErrNotificationNotOwned = errors.New("notification does not belong to current user")

// ErrUserContextRequired is returned when user context is not available
var ErrUserContextRequired = errors.New("user context required")

// NotificationService handles business logic for notifications
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	logger           *zap.Logger
}

// NewNotificationService creates a new NotificationService instance
func NewNotificationService(
	notificationRepo *repository.NotificationRepository,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// CreateForEvent stores the inbox entry for one recipient of a lifecycle event.
// Delivering the same event to the same user twice leaves a single entry.
func (s *NotificationService) CreateForEvent(ctx context.Context, event domain.LifecycleEvent, userID uuid.UUID) error {
	notification := &domain.Notification{
		UserID:     userID,
		Type:       string(event.Type),
		Title:      event.Title(),
		Message:    event.Message(),
		RequestID:  event.RequestID,
		EstimateID: event.EstimateID,
		EventID:    event.ID,
		Read:       false,
	}
	notification.CreatedAt = event.OccurredAt

	stored, err := s.notificationRepo.Deliver(ctx, notification)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	s.logger.Debug("notification stored",
		zap.String("eventID", event.ID.String()),
		zap.String("userID", userID.String()),
		zap.String("type", string(event.Type)),
		zap.Bool("redelivery", !stored),
	)
	return nil
}

// GetForCurrentUser returns notifications for the current user with pagination
func (s *NotificationService) GetForCurrentUser(
	ctx context.Context,
	page int,
	pageSize int,
	unreadOnly bool,
	notificationType string,
) (*domain.PaginatedResponse, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}

	page, pageSize = repository.NormalizePage(page, pageSize)

	notifications, total, err := s.notificationRepo.List(ctx, userCtx.UserID, repository.InboxFilter{
		Page:       page,
		PageSize:   pageSize,
		UnreadOnly: unreadOnly,
		EventType:  domain.EventType(notificationType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	dtos := make([]domain.NotificationDTO, len(notifications))
	for i, notification := range notifications {
		dtos[i] = mapper.ToNotificationDTO(&notification)
	}

	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: repository.TotalPages(total, pageSize),
	}, nil
}

// MarkAsRead marks a notification as read
func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID uuid.UUID) error {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return ErrUserContextRequired
	}

	err := s.notificationRepo.MarkRead(ctx, userCtx.UserID, notificationID, time.Now().UTC())
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotificationNotFound
	case errors.Is(err, repository.ErrForeignNotification):
		return ErrNotificationNotOwned
	case err != nil:
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}

	s.logger.Debug("notification marked as read",
		zap.String("notificationID", notificationID.String()),
		zap.String("userID", userCtx.UserID.String()),
	)

	return nil
}

// MarkAllAsReadForUser marks all notifications for the current user as read
func (s *NotificationService) MarkAllAsReadForUser(ctx context.Context) error {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return ErrUserContextRequired
	}

	changed, err := s.notificationRepo.MarkAllRead(ctx, userCtx.UserID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}

	s.logger.Info("all notifications marked as read",
		zap.String("userID", userCtx.UserID.String()),
		zap.Int64("count", changed),
	)

	return nil
}

// GetUnreadCount returns the count of unread notifications for the current user
func (s *NotificationService) GetUnreadCount(ctx context.Context) (*domain.UnreadCountDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}

	count, err := s.notificationRepo.CountUnread(ctx, userCtx.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return &domain.UnreadCountDTO{Count: count}, nil
}
