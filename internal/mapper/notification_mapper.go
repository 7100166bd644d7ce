package mapper

import (
	"taskfeed-be/internal/entity"
	"taskfeed-be/internal/model"
)

type NotificationMapper struct{}

func NewNotificationMapper() *NotificationMapper {
	return &NotificationMapper{}
}

func (m *NotificationMapper) ToEntity(n *model.Notification) *entity.Notification {
	if n == nil {
		return nil
	}
	return &entity.Notification{
		Id:              n.Id,
		RecipientId:     n.RecipientId,
		DedupeKey:       n.DedupeKey,
		ActorId:         n.ActorId,
		EntityType:      n.EntityType,
		EntityId:        n.EntityId,
		Title:           n.Title,
		Message:         n.Message,
		IsRead:          n.IsRead,
		ReadAt:          n.ReadAt,
		OccurrenceCount: n.OccurrenceCount,
		NotifiedAt:      n.NotifiedAt,
		CreatedAt:       n.CreatedAt,
	}
}

func (m *NotificationMapper) ToModel(n *entity.Notification) *model.Notification {
	if n == nil {
		return nil
	}
	return &model.Notification{
		Id:              n.Id,
		RecipientId:     n.RecipientId,
		DedupeKey:       n.DedupeKey,
		ActorId:         n.ActorId,
		EntityType:      n.EntityType,
		EntityId:        n.EntityId,
		Title:           n.Title,
		Message:         n.Message,
		IsRead:          n.IsRead,
		ReadAt:          n.ReadAt,
		OccurrenceCount: n.OccurrenceCount,
		NotifiedAt:      n.NotifiedAt,
		CreatedAt:       n.CreatedAt,
	}
}
