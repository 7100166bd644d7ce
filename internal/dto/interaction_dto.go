package dto

import "github.com/google/uuid"

// ToggleResponse is the post-operation state of a reaction or follow.
type ToggleResponse struct {
	IsSet bool  `json:"is_set"`
	Count int64 `json:"count"`
}

type FollowStatsResponse struct {
	UserId      uuid.UUID `json:"user_id"`
	Followers   int64     `json:"followers"`
	Following   int64     `json:"following"`
	IsFollowing bool      `json:"is_following"`
}
