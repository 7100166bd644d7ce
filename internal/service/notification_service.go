package service

import (
	"context"
	"strings"

	"taskfeed-be/internal/dto"
	"taskfeed-be/internal/entity"
	"taskfeed-be/internal/pkg/apperror"
	"taskfeed-be/internal/pkg/logger"
	"taskfeed-be/internal/pkg/metrics"
	"taskfeed-be/internal/repository/specification"
	"taskfeed-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	defaultNotificationLimit = 20
	maxNotificationLimit     = 100
)

// NotifyInput describes one notification. Inputs sharing a non-empty
// DedupeKey for the same recipient collapse into one row.
type NotifyInput struct {
	RecipientId uuid.UUID
	DedupeKey   string
	Title       string
	Message     string
	ActorId     *uuid.UUID
	EntityType  string
	EntityId    *uuid.UUID
}

type INotificationService interface {
	Notify(ctx context.Context, input NotifyInput) (*entity.Notification, error)
	List(ctx context.Context, recipientId uuid.UUID, limit, offset int) (*dto.NotificationListResponse, error)
	UnreadCount(ctx context.Context, recipientId uuid.UUID) (int64, error)
	MarkAllRead(ctx context.Context, recipientId uuid.UUID) (int64, error)
	Remove(ctx context.Context, id, recipientId uuid.UUID) error
}

type NotificationService struct {
	uowFactory unitofwork.RepositoryFactory
	feedLog    logger.ILogger
	metrics    *metrics.Metrics
	clock      Clock
}

func NewNotificationService(uowFactory unitofwork.RepositoryFactory, feedLog logger.ILogger, m *metrics.Metrics, clock Clock) *NotificationService {
	if clock == nil {
		clock = SystemClock
	}
	return &NotificationService{
		uowFactory: uowFactory,
		feedLog:    feedLog,
		metrics:    m,
		clock:      clock,
	}
}

// Notify inserts a notification, or refreshes the existing (recipient, key) row:
// new title and message, notified_at = now, unread again, occurrence count + 1.
func (s *NotificationService) Notify(ctx context.Context, input NotifyInput) (*entity.Notification, error) {
	if input.RecipientId == uuid.Nil {
		return nil, apperror.Validation("recipient is required", nil)
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperror.Validation("title is required", nil)
	}

	now := s.clock()
	notification := &entity.Notification{
		Id:              uuid.New(),
		RecipientId:     input.RecipientId,
		ActorId:         input.ActorId,
		EntityType:      input.EntityType,
		EntityId:        input.EntityId,
		Title:           input.Title,
		Message:         input.Message,
		OccurrenceCount: 1,
		NotifiedAt:      now,
		CreatedAt:       now,
	}
	if key := strings.TrimSpace(input.DedupeKey); key != "" {
		notification.DedupeKey = &key
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	stored, err := uow.NotificationRepository().UpsertByDedupeKey(ctx, notification)
	if err != nil {
		return nil, err
	}

	result := "inserted"
	if stored.OccurrenceCount > 1 {
		result = "aggregated"
	}
	s.metrics.Notifications.WithLabelValues(result).Inc()

	details := map[string]interface{}{
		"notification_id":  stored.Id.String(),
		"recipient_id":     stored.RecipientId.String(),
		"occurrence_count": stored.OccurrenceCount,
		"result":           result,
	}
	if stored.DedupeKey != nil {
		details["dedupe_key"] = *stored.DedupeKey
	}
	s.feedLog.Info("NotificationService", "Notification stored", details)

	return stored, nil
}

func toNotificationResponse(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		Id:              n.Id,
		Title:           n.Title,
		Message:         n.Message,
		ActorId:         n.ActorId,
		EntityType:      n.EntityType,
		EntityId:        n.EntityId,
		IsRead:          n.IsRead,
		ReadAt:          n.ReadAt,
		OccurrenceCount: n.OccurrenceCount,
		NotifiedAt:      n.NotifiedAt,
		CreatedAt:       n.CreatedAt,
	}
}

// List returns the feed newest-notified first, with the recipient's total.
func (s *NotificationService) List(ctx context.Context, recipientId uuid.UUID, limit, offset int) (*dto.NotificationListResponse, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	if limit > maxNotificationLimit {
		limit = maxNotificationLimit
	}
	if offset < 0 {
		offset = 0
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.NotificationRepository()

	total, err := repo.Count(ctx, specification.ByRecipientID{RecipientID: recipientId})
	if err != nil {
		return nil, err
	}

	notifications, err := repo.FindAll(ctx,
		specification.ByRecipientID{RecipientID: recipientId},
		specification.LatestNotifiedFirst{},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.NotificationResponse, len(notifications))
	for i, n := range notifications {
		items[i] = toNotificationResponse(n)
	}

	return &dto.NotificationListResponse{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, recipientId uuid.UUID) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().Count(ctx,
		specification.ByRecipientID{RecipientID: recipientId},
		specification.Unread{},
	)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, recipientId uuid.UUID) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAllAsRead(ctx, recipientId, s.clock())
}

func (s *NotificationService) Remove(ctx context.Context, id, recipientId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.NotificationRepository()

	notification, err := repo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if notification == nil {
		return apperror.NotFound("notification not found")
	}
	if notification.RecipientId != recipientId {
		return apperror.Forbidden("notification belongs to another user")
	}
	return repo.Delete(ctx, id)
}
