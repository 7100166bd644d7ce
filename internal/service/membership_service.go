package service

import (
	"context"
	"strings"

	"taskfeed-be/internal/entity"
	"taskfeed-be/internal/pkg/apperror"
	"taskfeed-be/internal/policy"
	"taskfeed-be/internal/repository/specification"
	"taskfeed-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const DefaultChatName = "General"

type TeamWithChats struct {
	Team  *entity.Team
	Chats []*entity.Chat
	// AddedMemberIds are the non-owner members created with the team.
	AddedMemberIds []uuid.UUID
}

type Member struct {
	Membership *entity.Membership
	User       *entity.User
}

type ChatDeletion struct {
	Chat        *entity.Chat
	TeamDeleted bool
	// MessageIds were removed together with their reaction edges.
	MessageIds []uuid.UUID
}

type IMembershipService interface {
	CreateTeam(ctx context.Context, ownerId uuid.UUID, name, chatName string, memberIds []uuid.UUID) (*TeamWithChats, error)
	CreateChat(ctx context.Context, teamId, requesterId uuid.UUID, name string) (*entity.Chat, error)
	GetChat(ctx context.Context, chatId uuid.UUID) (*entity.Chat, error)
	RoleOf(ctx context.Context, teamId, userId uuid.UUID) (policy.Role, error)
	AuthorizeChat(ctx context.Context, chatId, userId uuid.UUID, action policy.Action) (*entity.Chat, error)
	AddMember(ctx context.Context, teamId, requesterId, userId uuid.UUID) (bool, error)
	RemoveMember(ctx context.Context, teamId, requesterId, userId uuid.UUID) (bool, error)
	DeleteChat(ctx context.Context, chatId, requesterId uuid.UUID) (*ChatDeletion, error)
	ListMembers(ctx context.Context, teamId, requesterId uuid.UUID) ([]*Member, error)
	ListTeams(ctx context.Context, userId uuid.UUID) ([]*TeamWithChats, error)
}

type membershipService struct {
	uowFactory unitofwork.RepositoryFactory
	clock      Clock
}

func NewMembershipService(uowFactory unitofwork.RepositoryFactory, clock Clock) IMembershipService {
	if clock == nil {
		clock = SystemClock
	}
	return &membershipService{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func uniqueIds(ids []uuid.UUID, skip uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == skip || id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func (s *membershipService) CreateTeam(ctx context.Context, ownerId uuid.UUID, name, chatName string, memberIds []uuid.UUID) (*TeamWithChats, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Validation("team name is required", nil)
	}
	chatName = strings.TrimSpace(chatName)
	if chatName == "" {
		chatName = DefaultChatName
	}
	members := uniqueIds(memberIds, ownerId)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	known, err := uow.UserRepository().CountByIds(ctx, members)
	if err != nil {
		return nil, err
	}
	if known != int64(len(members)) {
		return nil, apperror.NotFound("one or more users do not exist")
	}

	now := s.clock()
	team := entity.Team{Id: uuid.New(), Name: name, OwnerId: ownerId, CreatedAt: now}
	if err := uow.TeamRepository().Create(ctx, &team); err != nil {
		return nil, err
	}

	chat := entity.Chat{Id: uuid.New(), TeamId: team.Id, Name: chatName, CreatedAt: now}
	if err := uow.ChatRepository().Create(ctx, &chat); err != nil {
		return nil, err
	}

	memberships := uow.MembershipRepository()
	if _, err := memberships.Insert(ctx, &entity.Membership{
		TeamId: team.Id, UserId: ownerId, Role: entity.MembershipRoleOwner, CreatedAt: now,
	}); err != nil {
		return nil, err
	}
	for _, userId := range members {
		if _, err := memberships.Insert(ctx, &entity.Membership{
			TeamId: team.Id, UserId: userId, Role: entity.MembershipRoleMember, CreatedAt: now,
		}); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &TeamWithChats{
		Team:           &team,
		Chats:          []*entity.Chat{&chat},
		AddedMemberIds: members,
	}, nil
}

// authorize loads the team and checks the requester's capability. It runs
// before any write so a rejected call leaves the store untouched.
func authorize(ctx context.Context, uow unitofwork.UnitOfWork, teamId, requesterId uuid.UUID, action policy.Action) (*entity.Team, error) {
	return authorizeTeam(ctx, uow, teamId, requesterId, action, specification.ByID{ID: teamId})
}

// lockAndAuthorize is authorize for mutations. The team row stays locked until
// the unit of work ends, so chat and membership changes on one team serialize.
func lockAndAuthorize(ctx context.Context, uow unitofwork.UnitOfWork, teamId, requesterId uuid.UUID, action policy.Action) (*entity.Team, error) {
	return authorizeTeam(ctx, uow, teamId, requesterId, action, specification.ByID{ID: teamId}, specification.ForUpdate{})
}

func authorizeTeam(ctx context.Context, uow unitofwork.UnitOfWork, teamId, requesterId uuid.UUID, action policy.Action, specs ...specification.Specification) (*entity.Team, error) {
	team, err := uow.TeamRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, apperror.NotFound("team not found")
	}

	role, err := roleOf(ctx, uow, teamId, requesterId)
	if err != nil {
		return nil, err
	}
	if !policy.Can(role, action) {
		return nil, apperror.Forbidden("not allowed to %s in this team", strings.ReplaceAll(string(action), "_", " "))
	}
	return team, nil
}

func roleOf(ctx context.Context, uow unitofwork.UnitOfWork, teamId, userId uuid.UUID) (policy.Role, error) {
	membership, err := uow.MembershipRepository().FindOne(ctx, teamId, userId)
	if err != nil {
		return policy.RoleNone, err
	}
	if membership == nil {
		return policy.RoleNone, nil
	}
	return policy.Normalize(membership.Role), nil
}

func (s *membershipService) RoleOf(ctx context.Context, teamId, userId uuid.UUID) (policy.Role, error) {
	return roleOf(ctx, s.uowFactory.NewUnitOfWork(ctx), teamId, userId)
}

func (s *membershipService) GetChat(ctx context.Context, chatId uuid.UUID) (*entity.Chat, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: chatId})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, apperror.NotFound("chat not found")
	}
	return chat, nil
}

func (s *membershipService) AuthorizeChat(ctx context.Context, chatId, userId uuid.UUID, action policy.Action) (*entity.Chat, error) {
	chat, err := s.GetChat(ctx, chatId)
	if err != nil {
		return nil, err
	}
	role, err := s.RoleOf(ctx, chat.TeamId, userId)
	if err != nil {
		return nil, err
	}
	if !policy.Can(role, action) {
		return nil, apperror.Forbidden("not a member of this chat")
	}
	return chat, nil
}

func (s *membershipService) CreateChat(ctx context.Context, teamId, requesterId uuid.UUID, name string) (*entity.Chat, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Validation("chat name is required", nil)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if _, err := lockAndAuthorize(ctx, uow, teamId, requesterId, policy.ActionCreateChat); err != nil {
		return nil, err
	}

	chat := entity.Chat{Id: uuid.New(), TeamId: teamId, Name: name, CreatedAt: s.clock()}
	if err := uow.ChatRepository().Create(ctx, &chat); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return &chat, nil
}

// AddMember is idempotent: re-adding an existing member reports false.
func (s *membershipService) AddMember(ctx context.Context, teamId, requesterId, userId uuid.UUID) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}
	defer uow.Rollback()

	if _, err := lockAndAuthorize(ctx, uow, teamId, requesterId, policy.ActionAddMember); err != nil {
		return false, err
	}

	user, err := uow.UserRepository().FindById(ctx, userId)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, apperror.NotFound("user not found")
	}

	added, err := uow.MembershipRepository().Insert(ctx, &entity.Membership{
		TeamId:    teamId,
		UserId:    userId,
		Role:      entity.MembershipRoleMember,
		CreatedAt: s.clock(),
	})
	if err != nil {
		return false, err
	}

	if err := uow.Commit(); err != nil {
		return false, err
	}
	return added, nil
}

// RemoveMember is owner-only and can never remove the owner.
// Removing a non-member reports false.
func (s *membershipService) RemoveMember(ctx context.Context, teamId, requesterId, userId uuid.UUID) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}
	defer uow.Rollback()

	team, err := lockAndAuthorize(ctx, uow, teamId, requesterId, policy.ActionRemoveMember)
	if err != nil {
		return false, err
	}
	if userId == team.OwnerId {
		return false, apperror.InvalidOperation("the team owner cannot be removed")
	}

	removed, err := uow.MembershipRepository().Delete(ctx, teamId, userId)
	if err != nil {
		return false, err
	}

	if err := uow.Commit(); err != nil {
		return false, err
	}
	return removed, nil
}

// DeleteChat removes the chat with its messages and their reactions. When it
// was the team's last chat the memberships and the team go too. One transaction.
func (s *membershipService) DeleteChat(ctx context.Context, chatId, requesterId uuid.UUID) (*ChatDeletion, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: chatId})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, apperror.NotFound("chat not found")
	}
	if _, err := lockAndAuthorize(ctx, uow, chat.TeamId, requesterId, policy.ActionDeleteChat); err != nil {
		return nil, err
	}
	// Re-read under lock: a concurrent delete of this chat may have committed
	// meanwhile, and posts into it wait until this transaction ends.
	chat, err = uow.ChatRepository().FindOne(ctx, specification.ByID{ID: chatId}, specification.ForUpdate{})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, apperror.NotFound("chat not found")
	}

	messageIds, err := uow.MessageRepository().FindIdsByChatId(ctx, chatId)
	if err != nil {
		return nil, err
	}
	if err := uow.EdgeRepository().DeleteByObjects(ctx, entity.EdgeReaction, messageIds); err != nil {
		return nil, err
	}
	if err := uow.MessageRepository().DeleteByChatId(ctx, chatId); err != nil {
		return nil, err
	}
	if err := uow.ChatRepository().Delete(ctx, chatId); err != nil {
		return nil, err
	}

	remaining, err := uow.ChatRepository().Count(ctx, specification.ByTeamID{TeamID: chat.TeamId})
	if err != nil {
		return nil, err
	}

	teamDeleted := remaining == 0
	if teamDeleted {
		if err := uow.MembershipRepository().DeleteByTeamId(ctx, chat.TeamId); err != nil {
			return nil, err
		}
		if err := uow.TeamRepository().Delete(ctx, chat.TeamId); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &ChatDeletion{
		Chat:        chat,
		TeamDeleted: teamDeleted,
		MessageIds:  messageIds,
	}, nil
}

func (s *membershipService) ListMembers(ctx context.Context, teamId, requesterId uuid.UUID) ([]*Member, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := authorize(ctx, uow, teamId, requesterId, policy.ActionListMembers); err != nil {
		return nil, err
	}

	memberships, err := uow.MembershipRepository().FindAllByTeamId(ctx, teamId)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(memberships))
	for i, m := range memberships {
		ids[i] = m.UserId
	}
	users, err := uow.UserRepository().FindByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	byId := make(map[uuid.UUID]*entity.User, len(users))
	for _, u := range users {
		byId[u.Id] = u
	}

	members := make([]*Member, 0, len(memberships))
	for _, m := range memberships {
		user := byId[m.UserId]
		if user == nil {
			user = &entity.User{Id: m.UserId}
		}
		members = append(members, &Member{Membership: m, User: user})
	}
	return members, nil
}

func (s *membershipService) ListTeams(ctx context.Context, userId uuid.UUID) ([]*TeamWithChats, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	teams, err := uow.TeamRepository().FindAll(ctx,
		specification.HasMember{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*TeamWithChats, 0, len(teams))
	if len(teams) == 0 {
		return result, nil
	}

	ids := make([]uuid.UUID, len(teams))
	index := make(map[uuid.UUID]*TeamWithChats, len(teams))
	for i, team := range teams {
		ids[i] = team.Id
		item := &TeamWithChats{Team: team, Chats: make([]*entity.Chat, 0)}
		index[team.Id] = item
		result = append(result, item)
	}

	chats, err := uow.ChatRepository().FindAll(ctx,
		specification.ByTeamIDs{TeamIDs: ids},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	for _, chat := range chats {
		if item, ok := index[chat.TeamId]; ok {
			item.Chats = append(item.Chats, chat)
		}
	}
	return result, nil
}
