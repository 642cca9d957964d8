package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrForeignNotification is returned when a user touches another user's inbox entry
var ErrForeignNotification = errors.New("notification belongs to another user")

// InboxFilter narrows a user's inbox listing
type InboxFilter struct {
	Page       int
	PageSize   int
	UnreadOnly bool
	EventType  domain.EventType
}

// NotificationRepository stores per-user inbox entries keyed by lifecycle event.
// Every read and update is scoped to a single recipient.
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) inbox(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Model(&domain.Notification{}).Where("user_id = ?", userID)
}

// Deliver records the entry for one recipient of an event. It reports false
// when that event already reached the user's inbox.
func (r *NotificationRepository) Deliver(ctx context.Context, notification *domain.Notification) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(notification)
	return result.RowsAffected > 0, result.Error
}

// List returns one page of the user's inbox, newest event first
func (r *NotificationRepository) List(ctx context.Context, userID uuid.UUID, filter InboxFilter) ([]domain.Notification, int64, error) {
	query := r.inbox(ctx, userID)
	if filter.UnreadOnly {
		query = query.Where("read = ?", false)
	}
	if filter.EventType != "" {
		query = query.Where("type = ?", string(filter.EventType))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []domain.Notification
	err := paginate(query, filter.Page, filter.PageSize).
		Order("created_at DESC").
		Order("id").
		Find(&entries).Error
	return entries, total, err
}

// MarkRead flags one entry as read. Marking an entry that is already read is a
// no-op. It returns gorm.ErrRecordNotFound for an unknown ID and
// ErrForeignNotification when the entry belongs to someone else.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id uuid.UUID, at time.Time) error {
	result := r.inbox(ctx, userID).
		Where("id = ? AND read = ?", id, false).
		Updates(map[string]interface{}{"read": true, "read_at": at})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var owner domain.Notification
	if err := r.db.WithContext(ctx).Select("id", "user_id").First(&owner, "id = ?", id).Error; err != nil {
		return err
	}
	if owner.UserID != userID {
		return ErrForeignNotification
	}
	return nil
}

// MarkAllRead flags every unread entry in the user's inbox and returns how many changed
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error) {
	result := r.inbox(ctx, userID).
		Where("read = ?", false).
		Updates(map[string]interface{}{"read": true, "read_at": at})
	return result.RowsAffected, result.Error
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int64
	err := r.inbox(ctx, userID).Where("read = ?", false).Count(&count).Error
	return int(count), err
}
