package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/straye-as/repair-quote-api/internal/domain"
)

// InboxStore persists one inbox entry per (event, recipient)
type InboxStore interface {
	CreateForEvent(ctx context.Context, event domain.LifecycleEvent, userID uuid.UUID) error
}

// InboxChannel writes lifecycle events to the in-app notification inbox
type InboxChannel struct {
	store InboxStore
}

func NewInboxChannel(store InboxStore) *InboxChannel {
	return &InboxChannel{store: store}
}

func (c *InboxChannel) Name() string {
	return "inbox"
}

// Deliver stores an entry for every recipient. Entries already stored by an
// earlier attempt are left as they are.
func (c *InboxChannel) Deliver(ctx context.Context, event domain.LifecycleEvent) error {
	for _, userID := range event.RecipientIDs {
		if userID == uuid.Nil {
			continue
		}
		if err := c.store.CreateForEvent(ctx, event, userID); err != nil {
			return fmt.Errorf("inbox delivery to %s: %w", userID, err)
		}
	}
	return nil
}
