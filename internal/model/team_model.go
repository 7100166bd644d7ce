package model

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(100);not null"`
	OwnerId   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

func (Team) TableName() string {
	return "teams"
}

type Chat struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TeamId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (Chat) TableName() string {
	return "chats"
}

type Membership struct {
	TeamId    uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Role      string    `gorm:"type:varchar(20);not null;default:'MEMBER'"`
	CreatedAt time.Time `gorm:"not null"`
}

func (Membership) TableName() string {
	return "memberships"
}
