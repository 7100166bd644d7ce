package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	e := New(ReactionSet, nil)

	assert.Equal(t, "REACTION_SET", e.EventType())
	assert.NotNil(t, e.Payload())
	assert.False(t, e.Timestamp().IsZero())
	assert.Equal(t, "UTC", e.Timestamp().Location().String())
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "events.CHAT_DELETED", Subject(ChatDeleted))
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), New(FollowSet, nil)))
}
