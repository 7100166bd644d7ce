package policy

import "testing"

func TestCan(t *testing.T) {
	cases := []struct {
		name   string
		role   Role
		action Action
		allow  bool
	}{
		{name: "owner adds member", role: RoleOwner, action: ActionAddMember, allow: true},
		{name: "member adds member", role: RoleMember, action: ActionAddMember, allow: true},
		{name: "outsider adds member", role: RoleNone, action: ActionAddMember, allow: false},
		{name: "owner removes member", role: RoleOwner, action: ActionRemoveMember, allow: true},
		{name: "member removes member", role: RoleMember, action: ActionRemoveMember, allow: false},
		{name: "owner deletes chat", role: RoleOwner, action: ActionDeleteChat, allow: true},
		{name: "member deletes chat", role: RoleMember, action: ActionDeleteChat, allow: false},
		{name: "member creates chat", role: RoleMember, action: ActionCreateChat, allow: true},
		{name: "member posts", role: RoleMember, action: ActionPostMessage, allow: true},
		{name: "outsider reads chat", role: RoleNone, action: ActionReadChat, allow: false},
		{name: "unknown action", role: RoleOwner, action: Action("explode"), allow: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Can(tc.role, tc.action); got != tc.allow {
				t.Fatalf("Can(%q, %q) = %v, want %v", tc.role, tc.action, got, tc.allow)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("OWNER"); got != RoleOwner {
		t.Fatalf("Normalize(OWNER) = %q", got)
	}
	if got := Normalize("MEMBER"); got != RoleMember {
		t.Fatalf("Normalize(MEMBER) = %q", got)
	}
	if got := Normalize("admin"); got != RoleNone {
		t.Fatalf("Normalize(admin) = %q, want NONE", got)
	}
}
