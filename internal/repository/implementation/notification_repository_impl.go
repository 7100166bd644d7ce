package implementation

import (
	"context"
	"errors"
	"time"

	"taskfeed-be/internal/entity"
	"taskfeed-be/internal/mapper"
	"taskfeed-be/internal/model"
	"taskfeed-be/internal/repository/contract"
	"taskfeed-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NotificationMapper
}

func NewNotificationRepository(db *gorm.DB) contract.NotificationRepository {
	return &NotificationRepositoryImpl{
		db:     db,
		mapper: mapper.NewNotificationMapper(),
	}
}

func (r *NotificationRepositoryImpl) Create(ctx context.Context, notification *entity.Notification) error {
	m := r.mapper.ToModel(notification)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*notification = *r.mapper.ToEntity(m)
	return nil
}

func (r *NotificationRepositoryImpl) UpsertByDedupeKey(ctx context.Context, notification *entity.Notification) (*entity.Notification, error) {
	if notification.DedupeKey == nil {
		if err := r.Create(ctx, notification); err != nil {
			return nil, err
		}
		return notification, nil
	}

	// A repeat without actor or entity keeps the ones already stored.
	m := r.mapper.ToModel(notification)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "recipient_id"}, {Name: "dedupe_key"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"actor_id":         gorm.Expr("COALESCE(excluded.actor_id, notifications.actor_id)"),
				"entity_type":      gorm.Expr("COALESCE(NULLIF(excluded.entity_type, ''), notifications.entity_type)"),
				"entity_id":        gorm.Expr("COALESCE(excluded.entity_id, notifications.entity_id)"),
				"title":            m.Title,
				"message":          m.Message,
				"is_read":          false,
				"read_at":          nil,
				"notified_at":      m.NotifiedAt,
				"occurrence_count": gorm.Expr("notifications.occurrence_count + 1"),
			}),
		}).
		Create(m).Error
	if err != nil {
		return nil, err
	}

	// On conflict the surviving row keeps its original id, so read it back.
	stored, err := r.FindOne(ctx,
		specification.ByRecipientID{RecipientID: notification.RecipientId},
		specification.ByDedupeKey{Key: *notification.DedupeKey},
	)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, errors.New("notification vanished after upsert")
	}
	return stored, nil
}

func (r *NotificationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Notification, error) {
	var m model.Notification
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NotificationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notification, error) {
	var models []*model.Notification
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	notifications := make([]*entity.Notification, len(models))
	for i, m := range models {
		notifications[i] = r.mapper.ToEntity(m)
	}
	return notifications, nil
}

func (r *NotificationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Notification{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(ctx context.Context, recipientId uuid.UUID, readAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientId, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": readAt,
		})
	return result.RowsAffected, result.Error
}

func (r *NotificationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Notification{}).Error
}
