package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateMessageRequest struct {
	Body     string     `json:"body" validate:"required,max=5000"`
	Images   []string   `json:"images" validate:"omitempty,dive,required,max=2048"`
	ParentId *uuid.UUID `json:"parent_id"`
	ChatId   *uuid.UUID `json:"chat_id"`
}

// ListMessagesQuery: a nil ChatId lists the public feed.
type ListMessagesQuery struct {
	AuthorId *uuid.UUID
	ChatId   *uuid.UUID
	Query    string
	Cursor   string
	PageSize int
}

type MessageResponse struct {
	Id                uuid.UUID  `json:"id"`
	AuthorId          uuid.UUID  `json:"author_id"`
	ChatId            *uuid.UUID `json:"chat_id"`
	ParentId          *uuid.UUID `json:"parent_id"`
	ParentAuthorLabel *string    `json:"parent_author_label"`
	Body              string     `json:"body"`
	Images            []string   `json:"images"`
	ReactionCount     int64      `json:"reaction_count"`
	ReplyCount        int64      `json:"reply_count"`
	LikedByMe         bool       `json:"liked_by_me"`
	CreatedAt         time.Time  `json:"created_at"`
}

type MessagePageResponse struct {
	Items      []*MessageResponse `json:"items"`
	NextCursor string             `json:"next_cursor,omitempty"`
}

type DeleteMessageResponse struct {
	Id uuid.UUID `json:"id"`
}
