package dto

import (
	"time"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	Id              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Message         string     `json:"message"`
	ActorId         *uuid.UUID `json:"actor_id,omitempty"`
	EntityType      string     `json:"entity_type,omitempty"`
	EntityId        *uuid.UUID `json:"entity_id,omitempty"`
	IsRead          bool       `json:"is_read"`
	ReadAt          *time.Time `json:"read_at,omitempty"`
	OccurrenceCount int        `json:"occurrence_count"`
	NotifiedAt      time.Time  `json:"notified_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

type NotificationListResponse struct {
	Items  []*NotificationResponse `json:"items"`
	Total  int64                   `json:"total"`
	Limit  int                     `json:"limit"`
	Offset int                     `json:"offset"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
