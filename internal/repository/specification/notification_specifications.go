package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByRecipientID struct {
	RecipientID uuid.UUID
}

func (s ByRecipientID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("recipient_id = ?", s.RecipientID)
}

type ByDedupeKey struct {
	Key string
}

func (s ByDedupeKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("dedupe_key = ?", s.Key)
}

type Unread struct{}

func (s Unread) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_read = ?", false)
}

// LatestNotifiedFirst is the feed order.
type LatestNotifiedFirst struct{}

func (s LatestNotifiedFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("notified_at DESC").Order("id DESC")
}
