package events

const (
	ReactionSet     = "REACTION_SET"
	ReactionCleared = "REACTION_CLEARED"
	FollowSet       = "FOLLOW_SET"
	FollowCleared   = "FOLLOW_CLEARED"
	MessagePosted   = "MESSAGE_POSTED"
	MessageDeleted  = "MESSAGE_DELETED"
	TeamCreated     = "TEAM_CREATED"
	MemberAdded     = "MEMBER_ADDED"
	MemberRemoved   = "MEMBER_REMOVED"
	ChatCreated     = "CHAT_CREATED"
	ChatDeleted     = "CHAT_DELETED"
	TeamDissolved   = "TEAM_DISSOLVED"
)

// Subject is the NATS subject an event type is published on.
func Subject(eventType string) string {
	return "events." + eventType
}
