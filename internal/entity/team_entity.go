package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	MembershipRoleOwner  = "OWNER"
	MembershipRoleMember = "MEMBER"
)

type Team struct {
	Id        uuid.UUID
	Name      string
	OwnerId   uuid.UUID
	CreatedAt time.Time
}

type Chat struct {
	Id        uuid.UUID
	TeamId    uuid.UUID
	Name      string
	CreatedAt time.Time
}

type Membership struct {
	TeamId    uuid.UUID
	UserId    uuid.UUID
	Role      string
	CreatedAt time.Time
}
