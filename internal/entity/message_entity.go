package entity

import (
	"time"

	"github.com/google/uuid"
)

const MaxMessageImages = 2

type Message struct {
	Id                uuid.UUID
	AuthorId          uuid.UUID
	ChatId            *uuid.UUID
	ParentId          *uuid.UUID
	ParentAuthorLabel *string
	Body              string
	Images            []string
	CreatedAt         time.Time
}

func (m *Message) IsReply() bool {
	return m.ParentId != nil
}

// MessageStats are derived from the ledger and the reply set on every read.
type MessageStats struct {
	ReactionCount int64
	ReplyCount    int64
	ReactedByUser bool
}
