package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification stores one feed entry. (recipient_id, dedupe_key) is unique so
// repeated events for the same target collapse into one row; NULL keys never collide.
type Notification struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RecipientId     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_notifications_recipient_key,priority:1;index:idx_notifications_recipient_time,priority:1" json:"recipient_id"`
	DedupeKey       *string    `gorm:"type:varchar(200);uniqueIndex:idx_notifications_recipient_key,priority:2" json:"dedupe_key,omitempty"`
	ActorId         *uuid.UUID `gorm:"type:uuid" json:"actor_id,omitempty"`
	EntityType      string     `gorm:"type:varchar(50)" json:"entity_type,omitempty"`
	EntityId        *uuid.UUID `gorm:"type:uuid" json:"entity_id,omitempty"`
	Title           string     `gorm:"type:varchar(200);not null" json:"title"`
	Message         string     `gorm:"type:text;not null" json:"message"`
	IsRead          bool       `gorm:"not null;default:false" json:"is_read"`
	ReadAt          *time.Time `json:"read_at,omitempty"`
	OccurrenceCount int        `gorm:"not null;default:1" json:"occurrence_count"`
	NotifiedAt      time.Time  `gorm:"not null;index:idx_notifications_recipient_time,priority:2" json:"notified_at"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
