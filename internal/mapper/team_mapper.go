package mapper

import (
	"taskfeed-be/internal/entity"
	"taskfeed-be/internal/model"
)

type TeamMapper struct{}

func NewTeamMapper() *TeamMapper {
	return &TeamMapper{}
}

func (m *TeamMapper) TeamToEntity(t *model.Team) *entity.Team {
	if t == nil {
		return nil
	}
	return &entity.Team{
		Id:        t.Id,
		Name:      t.Name,
		OwnerId:   t.OwnerId,
		CreatedAt: t.CreatedAt,
	}
}

func (m *TeamMapper) TeamToModel(t *entity.Team) *model.Team {
	if t == nil {
		return nil
	}
	return &model.Team{
		Id:        t.Id,
		Name:      t.Name,
		OwnerId:   t.OwnerId,
		CreatedAt: t.CreatedAt,
	}
}

func (m *TeamMapper) ChatToEntity(c *model.Chat) *entity.Chat {
	if c == nil {
		return nil
	}
	return &entity.Chat{
		Id:        c.Id,
		TeamId:    c.TeamId,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}

func (m *TeamMapper) ChatToModel(c *entity.Chat) *model.Chat {
	if c == nil {
		return nil
	}
	return &model.Chat{
		Id:        c.Id,
		TeamId:    c.TeamId,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}

func (m *TeamMapper) MembershipToEntity(ms *model.Membership) *entity.Membership {
	if ms == nil {
		return nil
	}
	return &entity.Membership{
		TeamId:    ms.TeamId,
		UserId:    ms.UserId,
		Role:      ms.Role,
		CreatedAt: ms.CreatedAt,
	}
}

func (m *TeamMapper) MembershipToModel(ms *entity.Membership) *model.Membership {
	if ms == nil {
		return nil
	}
	return &model.Membership{
		TeamId:    ms.TeamId,
		UserId:    ms.UserId,
		Role:      ms.Role,
		CreatedAt: ms.CreatedAt,
	}
}
