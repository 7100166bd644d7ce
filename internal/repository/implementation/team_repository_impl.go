package implementation

import (
	"context"
	"errors"

	"taskfeed-be/internal/entity"
	"taskfeed-be/internal/mapper"
	"taskfeed-be/internal/model"
	"taskfeed-be/internal/repository/contract"
	"taskfeed-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TeamRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TeamMapper
}

func NewTeamRepository(db *gorm.DB) contract.TeamRepository {
	return &TeamRepositoryImpl{
		db:     db,
		mapper: mapper.NewTeamMapper(),
	}
}

func (r *TeamRepositoryImpl) Create(ctx context.Context, team *entity.Team) error {
	m := r.mapper.TeamToModel(team)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*team = *r.mapper.TeamToEntity(m)
	return nil
}

func (r *TeamRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Team{}).Error
}

func (r *TeamRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Team, error) {
	var m model.Team
	if err := applySpecifications(r.db.WithContext(ctx), specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.TeamToEntity(&m), nil
}

func (r *TeamRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Team, error) {
	var models []*model.Team
	if err := applySpecifications(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	teams := make([]*entity.Team, len(models))
	for i, m := range models {
		teams[i] = r.mapper.TeamToEntity(m)
	}
	return teams, nil
}

type ChatRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TeamMapper
}

func NewChatRepository(db *gorm.DB) contract.ChatRepository {
	return &ChatRepositoryImpl{
		db:     db,
		mapper: mapper.NewTeamMapper(),
	}
}

func (r *ChatRepositoryImpl) Create(ctx context.Context, chat *entity.Chat) error {
	m := r.mapper.ChatToModel(chat)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*chat = *r.mapper.ChatToEntity(m)
	return nil
}

func (r *ChatRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Chat{}).Error
}

func (r *ChatRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error) {
	var m model.Chat
	if err := applySpecifications(r.db.WithContext(ctx), specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ChatToEntity(&m), nil
}

func (r *ChatRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error) {
	var models []*model.Chat
	if err := applySpecifications(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	chats := make([]*entity.Chat, len(models))
	for i, m := range models {
		chats[i] = r.mapper.ChatToEntity(m)
	}
	return chats, nil
}

func (r *ChatRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Chat{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type MembershipRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TeamMapper
}

func NewMembershipRepository(db *gorm.DB) contract.MembershipRepository {
	return &MembershipRepositoryImpl{
		db:     db,
		mapper: mapper.NewTeamMapper(),
	}
}

func (r *MembershipRepositoryImpl) Insert(ctx context.Context, membership *entity.Membership) (bool, error) {
	m := r.mapper.MembershipToModel(membership)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(m)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *MembershipRepositoryImpl) Delete(ctx context.Context, teamId, userId uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamId, userId).
		Delete(&model.Membership{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *MembershipRepositoryImpl) DeleteByTeamId(ctx context.Context, teamId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("team_id = ?", teamId).Delete(&model.Membership{}).Error
}

func (r *MembershipRepositoryImpl) FindOne(ctx context.Context, teamId, userId uuid.UUID) (*entity.Membership, error) {
	var m model.Membership
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamId, userId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.MembershipToEntity(&m), nil
}

func (r *MembershipRepositoryImpl) FindAllByTeamId(ctx context.Context, teamId uuid.UUID) ([]*entity.Membership, error) {
	var models []*model.Membership
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamId).
		Order("created_at ASC").
		Order("user_id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	memberships := make([]*entity.Membership, len(models))
	for i, m := range models {
		memberships[i] = r.mapper.MembershipToEntity(m)
	}
	return memberships, nil
}

func (r *MembershipRepositoryImpl) CountByTeamId(ctx context.Context, teamId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Membership{}).Where("team_id = ?", teamId).Count(&count).Error
	return count, err
}
