package specification

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TopLevel excludes replies.
type TopLevel struct{}

func (s TopLevel) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("parent_id IS NULL")
}

type ByParentID struct {
	ParentID uuid.UUID
}

func (s ByParentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("parent_id = ?", s.ParentID)
}

type ByAuthorID struct {
	AuthorID uuid.UUID
}

func (s ByAuthorID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("author_id = ?", s.AuthorID)
}

// ByChatID with a nil ChatID selects the public feed.
type ByChatID struct {
	ChatID *uuid.UUID
}

func (s ByChatID) Apply(db *gorm.DB) *gorm.DB {
	if s.ChatID == nil {
		return db.Where("chat_id IS NULL")
	}
	return db.Where("chat_id = ?", *s.ChatID)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// BodyContains is a case-insensitive substring match.
type BodyContains struct {
	Query string
}

func (s BodyContains) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(s.Query)) + "%"
	return db.Where(`LOWER(body) LIKE ? ESCAPE '\'`, pattern)
}

// CreatedBefore is the keyset condition for (created_at DESC, id DESC) paging.
type CreatedBefore struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

func (s CreatedBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("(created_at < ?) OR (created_at = ? AND id < ?)", s.CreatedAt, s.CreatedAt, s.ID)
}

// NewestFirst orders by (created_at, id) descending to match CreatedBefore.
type NewestFirst struct{}

func (s NewestFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}

// OldestFirst is the reply thread order.
type OldestFirst struct{}

func (s OldestFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}
