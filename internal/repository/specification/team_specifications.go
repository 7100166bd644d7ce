package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByTeamID struct {
	TeamID uuid.UUID
}

func (s ByTeamID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("team_id = ?", s.TeamID)
}

type ByTeamIDs struct {
	TeamIDs []uuid.UUID
}

func (s ByTeamIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("team_id IN ?", s.TeamIDs)
}

// HasMember selects teams the user belongs to, owner included.
type HasMember struct {
	UserID uuid.UUID
}

func (s HasMember) Apply(db *gorm.DB) *gorm.DB {
	sub := db.Session(&gorm.Session{NewDB: true}).
		Table("memberships").
		Select("team_id").
		Where("user_id = ?", s.UserID)
	return db.Where("id IN (?)", sub)
}
