package entity

import (
	"time"

	"github.com/google/uuid"
)

type EdgeKind string

const (
	// EdgeReaction: subject = user, object = message.
	EdgeReaction EdgeKind = "reaction"
	// EdgeFollow: subject = follower, object = followed user.
	EdgeFollow EdgeKind = "follow"
)

func (k EdgeKind) Valid() bool {
	return k == EdgeReaction || k == EdgeFollow
}

type Edge struct {
	Kind      EdgeKind
	SubjectId uuid.UUID
	ObjectId  uuid.UUID
	CreatedAt time.Time
}

// EdgeState is the post-operation view of one (subject, object) pair.
// Count is the authoritative number of edges pointing at the object.
// Changed is false when the call was an idempotent no-op.
type EdgeState struct {
	IsSet   bool
	Count   int64
	Changed bool
}
