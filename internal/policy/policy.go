// Package policy holds the team capability table. Every membership-gated
// operation asks Can(role, action) instead of checking ownership inline.
package policy

type Role string
type Action string

const (
	RoleNone   Role = "NONE"
	RoleMember Role = "MEMBER"
	RoleOwner  Role = "OWNER"
)

const (
	ActionAddMember    Action = "add_member"
	ActionRemoveMember Action = "remove_member"
	ActionCreateChat   Action = "create_chat"
	ActionDeleteChat   Action = "delete_chat"
	ActionPostMessage  Action = "post_message"
	ActionReadChat     Action = "read_chat"
	ActionListMembers  Action = "list_members"
)

// Adding is open to peers, removing and deleting are owner-only.
var capabilities = map[Action]map[Role]bool{
	ActionAddMember:    {RoleOwner: true, RoleMember: true},
	ActionRemoveMember: {RoleOwner: true},
	ActionCreateChat:   {RoleOwner: true, RoleMember: true},
	ActionDeleteChat:   {RoleOwner: true},
	ActionPostMessage:  {RoleOwner: true, RoleMember: true},
	ActionReadChat:     {RoleOwner: true, RoleMember: true},
	ActionListMembers:  {RoleOwner: true, RoleMember: true},
}

func Can(role Role, action Action) bool {
	return capabilities[action][role]
}

func Normalize(role string) Role {
	switch Role(role) {
	case RoleOwner, RoleMember:
		return Role(role)
	default:
		return RoleNone
	}
}
