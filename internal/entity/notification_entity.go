package entity

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	Id              uuid.UUID
	RecipientId     uuid.UUID
	DedupeKey       *string
	ActorId         *uuid.UUID
	EntityType      string
	EntityId        *uuid.UUID
	Title           string
	Message         string
	IsRead          bool
	ReadAt          *time.Time
	OccurrenceCount int
	NotifiedAt      time.Time
	CreatedAt       time.Time
}
