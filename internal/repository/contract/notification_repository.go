package contract

import (
	"context"
	"time"

	"taskfeed-be/internal/entity"
	"taskfeed-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	// UpsertByDedupeKey inserts the notification or, when (recipient, key) exists,
	// refreshes that row in place and bumps its occurrence count. Returns the stored row.
	UpsertByDedupeKey(ctx context.Context, notification *entity.Notification) (*entity.Notification, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Notification, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notification, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	MarkAllAsRead(ctx context.Context, recipientId uuid.UUID, readAt time.Time) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
