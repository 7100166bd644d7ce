package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Message rows carry no counters; reactions and replies are counted at read time.
type Message struct {
	Id                uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	AuthorId          uuid.UUID                   `gorm:"type:uuid;not null;index:idx_messages_author"`
	ChatId            *uuid.UUID                  `gorm:"type:uuid;index:idx_messages_chat"`
	ParentId          *uuid.UUID                  `gorm:"type:uuid;index:idx_messages_parent"`
	ParentAuthorLabel *string                     `gorm:"type:varchar(255)"`
	Body              string                      `gorm:"type:text;not null"`
	Images            datatypes.JSONSlice[string] `gorm:"type:json"`
	CreatedAt         time.Time                   `gorm:"not null;index:idx_messages_created"`
}

func (Message) TableName() string {
	return "messages"
}
