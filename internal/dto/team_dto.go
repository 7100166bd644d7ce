package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTeamRequest struct {
	Name      string      `json:"name" validate:"required,max=100"`
	ChatName  string      `json:"chat_name" validate:"omitempty,max=100"`
	MemberIds []uuid.UUID `json:"member_ids" validate:"omitempty,max=200"`
}

type CreateChatRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type AddMemberRequest struct {
	UserId uuid.UUID `json:"user_id" validate:"required"`
}

type ChatResponse struct {
	Id        uuid.UUID `json:"id"`
	TeamId    uuid.UUID `json:"team_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type TeamResponse struct {
	Id        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	OwnerId   uuid.UUID       `json:"owner_id"`
	Chats     []*ChatResponse `json:"chats"`
	CreatedAt time.Time       `json:"created_at"`
}

type MemberResponse struct {
	UserId      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
}

type MembershipChangeResponse struct {
	TeamId  uuid.UUID `json:"team_id"`
	UserId  uuid.UUID `json:"user_id"`
	Changed bool      `json:"changed"`
}

type DeleteChatResponse struct {
	ChatId      uuid.UUID `json:"chat_id"`
	TeamId      uuid.UUID `json:"team_id"`
	TeamDeleted bool      `json:"team_deleted"`
}
