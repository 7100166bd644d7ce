package service

import (
	"context"
	"fmt"

	"taskfeed-be/internal/dto"
	"taskfeed-be/internal/entity"
	"taskfeed-be/internal/pkg/apperror"
	"taskfeed-be/internal/pkg/logger"
	"taskfeed-be/internal/pkg/metrics"
	"taskfeed-be/internal/policy"
	"taskfeed-be/internal/repository/specification"
	"taskfeed-be/internal/repository/unitofwork"
	"taskfeed-be/pkg/events"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	entityMessage = "message"
	entityUser    = "user"
	entityTeam    = "team"
)

var tracer = otel.Tracer("taskfeed-be/service")

// IInteractionService is what controllers call. Every mutating action runs
// authorize, mutate, recompute and commit in the component services, then
// notifies the target user and publishes a domain event.
type IInteractionService interface {
	SetReaction(ctx context.Context, actorId, messageId uuid.UUID) (*dto.ToggleResponse, error)
	ClearReaction(ctx context.Context, actorId, messageId uuid.UUID) (*dto.ToggleResponse, error)
	Follow(ctx context.Context, actorId, targetId uuid.UUID) (*dto.ToggleResponse, error)
	Unfollow(ctx context.Context, actorId, targetId uuid.UUID) (*dto.ToggleResponse, error)
	FollowStats(ctx context.Context, viewerId, targetId uuid.UUID) (*dto.FollowStatsResponse, error)

	PostMessage(ctx context.Context, actorId uuid.UUID, req *dto.CreateMessageRequest) (*dto.MessageResponse, error)
	GetMessage(ctx context.Context, viewerId, messageId uuid.UUID) (*dto.MessageResponse, error)
	DeleteMessage(ctx context.Context, actorId, messageId uuid.UUID) (*dto.DeleteMessageResponse, error)
	ListMessages(ctx context.Context, viewerId uuid.UUID, query dto.ListMessagesQuery) (*dto.MessagePageResponse, error)
	ListReplies(ctx context.Context, viewerId, parentId uuid.UUID) ([]*dto.MessageResponse, error)

	CreateTeam(ctx context.Context, actorId uuid.UUID, req *dto.CreateTeamRequest) (*dto.TeamResponse, error)
	ListTeams(ctx context.Context, actorId uuid.UUID) ([]*dto.TeamResponse, error)
	ListMembers(ctx context.Context, actorId, teamId uuid.UUID) ([]*dto.MemberResponse, error)
	AddMember(ctx context.Context, actorId, teamId, userId uuid.UUID) (*dto.MembershipChangeResponse, error)
	AddMemberByChat(ctx context.Context, actorId, chatId, userId uuid.UUID) (*dto.MembershipChangeResponse, error)
	RemoveMember(ctx context.Context, actorId, teamId, userId uuid.UUID) (*dto.MembershipChangeResponse, error)
	RemoveMemberByChat(ctx context.Context, actorId, chatId, userId uuid.UUID) (*dto.MembershipChangeResponse, error)
	CreateChat(ctx context.Context, actorId, teamId uuid.UUID, req *dto.CreateChatRequest) (*dto.ChatResponse, error)
	DeleteChat(ctx context.Context, actorId, chatId uuid.UUID) (*dto.DeleteChatResponse, error)
}

type interactionService struct {
	uowFactory    unitofwork.RepositoryFactory
	edges         IEdgeLedgerService
	threads       IThreadService
	memberships   IMembershipService
	notifications INotificationService
	publisher     events.Publisher
	metrics       *metrics.Metrics
	logger        logger.ILogger
}

func NewInteractionService(
	uowFactory unitofwork.RepositoryFactory,
	edges IEdgeLedgerService,
	threads IThreadService,
	memberships IMembershipService,
	notifications INotificationService,
	publisher events.Publisher,
	m *metrics.Metrics,
	log logger.ILogger,
) IInteractionService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &interactionService{
		uowFactory:    uowFactory,
		edges:         edges,
		threads:       threads,
		memberships:   memberships,
		notifications: notifications,
		publisher:     publisher,
		metrics:       m,
		logger:        log,
	}
}

// observe counts the outcome of one action.
func (s *interactionService) observe(action string, changed bool, err error) {
	switch {
	case err == nil && changed:
		s.metrics.Interaction(action, metrics.OutcomeChanged)
	case err == nil:
		s.metrics.Interaction(action, metrics.OutcomeNoop)
	case apperror.KindOf(err) != "":
		s.metrics.Interaction(action, metrics.OutcomeDenied)
	default:
		s.metrics.Interaction(action, metrics.OutcomeError)
	}
}

func (s *interactionService) start(ctx context.Context, action string, actorId uuid.UUID) (context.Context, func(changed *bool, err *error)) {
	ctx, span := tracer.Start(ctx, "InteractionService."+action)
	span.SetAttributes(attribute.String("actor.id", actorId.String()))
	return ctx, func(changed *bool, err *error) {
		if *err != nil {
			span.RecordError(*err)
			span.SetStatus(codes.Error, (*err).Error())
		}
		s.observe(action, *changed, *err)
		span.End()
	}
}

// notify runs after the mutation committed. A failure here cannot undo the
// mutation, so it is logged and swallowed.
func (s *interactionService) notify(ctx context.Context, input NotifyInput) {
	if input.ActorId != nil && *input.ActorId == input.RecipientId {
		return
	}
	if _, err := s.notifications.Notify(ctx, input); err != nil {
		s.logger.Error("InteractionService", "Failed to store notification", map[string]interface{}{
			"error":        err,
			"recipient_id": input.RecipientId.String(),
			"dedupe_key":   input.DedupeKey,
		})
	}
}

func (s *interactionService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	status := "ok"
	if err := s.publisher.Publish(ctx, events.New(eventType, data)); err != nil {
		status = "failed"
		s.logger.Warn("InteractionService", "Failed to publish event", map[string]interface{}{
			"error": err.Error(),
			"type":  eventType,
		})
	}
	s.metrics.EventsPublished.WithLabelValues(eventType, status).Inc()
}

func (s *interactionService) userLabel(ctx context.Context, userId uuid.UUID) string {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindById(ctx, userId)
	if err != nil || user == nil {
		return "Someone"
	}
	return user.Label()
}

// readableMessage loads a message and checks the viewer may see its chat.
func (s *interactionService) readableMessage(ctx context.Context, viewerId, messageId uuid.UUID) (*entity.Message, error) {
	message, err := s.threads.GetMessage(ctx, messageId)
	if err != nil {
		return nil, err
	}
	if message.ChatId != nil {
		if _, err := s.memberships.AuthorizeChat(ctx, *message.ChatId, viewerId, policy.ActionReadChat); err != nil {
			return nil, err
		}
	}
	return message, nil
}

func ptr[T any](v T) *T {
	return &v
}

func (s *interactionService) SetReaction(ctx context.Context, actorId, messageId uuid.UUID) (res *dto.ToggleResponse, err error) {
	var changed bool
	ctx, done := s.start(ctx, "set_reaction", actorId)
	defer func() { done(&changed, &err) }()

	// An edge written after a concurrent delete is harmless: counts are
	// only read for existing messages.
	message, err := s.readableMessage(ctx, actorId, messageId)
	if err != nil {
		return nil, err
	}

	state, err := s.edges.SetEdge(ctx, entity.EdgeReaction, actorId, messageId)
	if err != nil {
		return nil, err
	}
	changed = state.Changed

	if state.Changed {
		s.notify(ctx, NotifyInput{
			RecipientId: message.AuthorId,
			DedupeKey:   "reaction:" + messageId.String(),
			Title:       "New reaction",
			Message:     fmt.Sprintf("%s liked your message", s.userLabel(ctx, actorId)),
			ActorId:     &actorId,
			EntityType:  entityMessage,
			EntityId:    ptr(messageId),
		})
		s.publish(ctx, events.ReactionSet, map[string]interface{}{
			"actor_id":   actorId.String(),
			"message_id": messageId.String(),
			"count":      state.Count,
		})
	}

	return &dto.ToggleResponse{IsSet: state.IsSet, Count: state.Count}, nil
}

func (s *interactionService) ClearReaction(ctx context.Context, actorId, messageId uuid.UUID) (res *dto.ToggleResponse, err error) {
	var changed bool
	ctx, done := s.start(ctx, "clear_reaction", actorId)
	defer func() { done(&changed, &err) }()

	if _, err = s.readableMessage(ctx, actorId, messageId); err != nil {
		return nil, err
	}

	state, err := s.edges.ClearEdge(ctx, entity.EdgeReaction, actorId, messageId)
	if err != nil {
		return nil, err
	}
	changed = state.Changed

	if state.Changed {
		s.publish(ctx, events.ReactionCleared, map[string]interface{}{
			"actor_id":   actorId.String(),
			"message_id": messageId.String(),
			"count":      state.Count,
		})
	}
	return &dto.ToggleResponse{IsSet: state.IsSet, Count: state.Count}, nil
}

func (s *interactionService) ensureUser(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindById(ctx, userId)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFound("user not found")
	}
	return nil
}

func (s *interactionService) Follow(ctx context.Context, actorId, targetId uuid.UUID) (res *dto.ToggleResponse, err error) {
	var changed bool
	ctx, done := s.start(ctx, "follow", actorId)
	defer func() { done(&changed, &err) }()

	if actorId == targetId {
		return nil, apperror.InvalidOperation("cannot follow yourself")
	}
	if err = s.ensureUser(ctx, targetId); err != nil {
		return nil, err
	}

	state, err := s.edges.SetEdge(ctx, entity.EdgeFollow, actorId, targetId)
	if err != nil {
		return nil, err
	}
	changed = state.Changed

	if state.Changed {
		s.notify(ctx, NotifyInput{
			RecipientId: targetId,
			DedupeKey:   "follow:" + targetId.String(),
			Title:       "New follower",
			Message:     fmt.Sprintf("%s started following you", s.userLabel(ctx, actorId)),
			ActorId:     &actorId,
			EntityType:  entityUser,
			EntityId:    ptr(actorId),
		})
		s.publish(ctx, events.FollowSet, map[string]interface{}{
			"actor_id":  actorId.String(),
			"target_id": targetId.String(),
			"count":     state.Count,
		})
	}
	return &dto.ToggleResponse{IsSet: state.IsSet, Count: state.Count}, nil
}

func (s *interactionService) Unfollow(ctx context.Context, actorId, targetId uuid.UUID) (res *dto.ToggleResponse, err error) {
	var changed bool
	ctx, done := s.start(ctx, "unfollow", actorId)
	defer func() { done(&changed, &err) }()

	if actorId == targetId {
		return nil, apperror.InvalidOperation("cannot unfollow yourself")
	}

	state, err := s.edges.ClearEdge(ctx, entity.EdgeFollow, actorId, targetId)
	if err != nil {
		return nil, err
	}
	changed = state.Changed

	if state.Changed {
		s.publish(ctx, events.FollowCleared, map[string]interface{}{
			"actor_id":  actorId.String(),
			"target_id": targetId.String(),
			"count":     state.Count,
		})
	}
	return &dto.ToggleResponse{IsSet: state.IsSet, Count: state.Count}, nil
}

func (s *interactionService) FollowStats(ctx context.Context, viewerId, targetId uuid.UUID) (*dto.FollowStatsResponse, error) {
	if err := s.ensureUser(ctx, targetId); err != nil {
		return nil, err
	}

	followers, err := s.edges.Count(ctx, entity.EdgeFollow, targetId)
	if err != nil {
		return nil, err
	}
	following, err := s.edges.CountBySubject(ctx, entity.EdgeFollow, targetId)
	if err != nil {
		return nil, err
	}
	isFollowing := false
	if viewerId != targetId {
		if isFollowing, err = s.edges.IsSet(ctx, entity.EdgeFollow, viewerId, targetId); err != nil {
			return nil, err
		}
	}

	return &dto.FollowStatsResponse{
		UserId:      targetId,
		Followers:   followers,
		Following:   following,
		IsFollowing: isFollowing,
	}, nil
}

func toMessageResponse(m *entity.Message, stats entity.MessageStats) *dto.MessageResponse {
	images := m.Images
	if images == nil {
		images = []string{}
	}
	return &dto.MessageResponse{
		Id:                m.Id,
		AuthorId:          m.AuthorId,
		ChatId:            m.ChatId,
		ParentId:          m.ParentId,
		ParentAuthorLabel: m.ParentAuthorLabel,
		Body:              m.Body,
		Images:            images,
		ReactionCount:     stats.ReactionCount,
		ReplyCount:        stats.ReplyCount,
		LikedByMe:         stats.ReactedByUser,
		CreatedAt:         m.CreatedAt,
	}
}

func (s *interactionService) withStats(ctx context.Context, viewerId uuid.UUID, messages []*entity.Message) ([]*dto.MessageResponse, error) {
	ids := make([]uuid.UUID, len(messages))
	for i, m := range messages {
		ids[i] = m.Id
	}
	stats, err := s.threads.Stats(ctx, viewerId, ids)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.MessageResponse, len(messages))
	for i, m := range messages {
		items[i] = toMessageResponse(m, stats[m.Id])
	}
	return items, nil
}

func (s *interactionService) PostMessage(ctx context.Context, actorId uuid.UUID, req *dto.CreateMessageRequest) (res *dto.MessageResponse, err error) {
	changed := true
	ctx, done := s.start(ctx, "post_message", actorId)
	defer func() { done(&changed, &err) }()

	chatId := req.ChatId
	var parent *entity.Message
	if req.ParentId != nil {
		if parent, err = s.threads.GetMessage(ctx, *req.ParentId); err != nil {
			return nil, err
		}
		chatId = parent.ChatId
	}
	if chatId != nil {
		if _, err = s.memberships.AuthorizeChat(ctx, *chatId, actorId, policy.ActionPostMessage); err != nil {
			return nil, err
		}
	}

	message, err := s.threads.CreateMessage(ctx, CreateMessageInput{
		AuthorId: actorId,
		Body:     req.Body,
		Images:   req.Images,
		ParentId: req.ParentId,
		ChatId:   chatId,
	})
	if err != nil {
		return nil, err
	}

	if parent != nil {
		s.notify(ctx, NotifyInput{
			RecipientId: parent.AuthorId,
			DedupeKey:   "reply:" + parent.Id.String(),
			Title:       "New reply",
			Message:     fmt.Sprintf("%s replied to your message", s.userLabel(ctx, actorId)),
			ActorId:     &actorId,
			EntityType:  entityMessage,
			EntityId:    ptr(parent.Id),
		})
	}

	data := map[string]interface{}{
		"actor_id":   actorId.String(),
		"message_id": message.Id.String(),
	}
	if message.ParentId != nil {
		data["parent_id"] = message.ParentId.String()
	}
	if message.ChatId != nil {
		data["chat_id"] = message.ChatId.String()
	}
	s.publish(ctx, events.MessagePosted, data)

	return toMessageResponse(message, entity.MessageStats{}), nil
}

func (s *interactionService) GetMessage(ctx context.Context, viewerId, messageId uuid.UUID) (*dto.MessageResponse, error) {
	message, err := s.readableMessage(ctx, viewerId, messageId)
	if err != nil {
		return nil, err
	}
	items, err := s.withStats(ctx, viewerId, []*entity.Message{message})
	if err != nil {
		return nil, err
	}
	return items[0], nil
}

func (s *interactionService) DeleteMessage(ctx context.Context, actorId, messageId uuid.UUID) (res *dto.DeleteMessageResponse, err error) {
	changed := true
	ctx, done := s.start(ctx, "delete_message", actorId)
	defer func() { done(&changed, &err) }()

	message, err := s.threads.DeleteMessage(ctx, messageId, actorId)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.MessageDeleted, map[string]interface{}{
		"actor_id":   actorId.String(),
		"message_id": message.Id.String(),
	})
	return &dto.DeleteMessageResponse{Id: message.Id}, nil
}

func (s *interactionService) ListMessages(ctx context.Context, viewerId uuid.UUID, query dto.ListMessagesQuery) (*dto.MessagePageResponse, error) {
	if query.ChatId != nil {
		if _, err := s.memberships.AuthorizeChat(ctx, *query.ChatId, viewerId, policy.ActionReadChat); err != nil {
			return nil, err
		}
	}

	page, err := s.threads.ListTopLevel(ctx, MessageFilter{
		AuthorId: query.AuthorId,
		ChatId:   query.ChatId,
		Query:    query.Query,
	}, query.Cursor, query.PageSize)
	if err != nil {
		return nil, err
	}

	items, err := s.withStats(ctx, viewerId, page.Items)
	if err != nil {
		return nil, err
	}
	return &dto.MessagePageResponse{Items: items, NextCursor: page.NextCursor}, nil
}

// ListReplies works for deleted parents too; orphaned replies stay reachable
// by their parent id.
func (s *interactionService) ListReplies(ctx context.Context, viewerId, parentId uuid.UUID) ([]*dto.MessageResponse, error) {
	replies, err := s.threads.ListReplies(ctx, parentId)
	if err != nil {
		return nil, err
	}

	var chatId *uuid.UUID
	parent, err := s.threads.GetMessage(ctx, parentId)
	switch {
	case err == nil:
		chatId = parent.ChatId
	case apperror.Is(err, apperror.KindNotFound):
		if len(replies) == 0 {
			return nil, err
		}
		chatId = replies[0].ChatId
	default:
		return nil, err
	}
	if chatId != nil {
		if _, err := s.memberships.AuthorizeChat(ctx, *chatId, viewerId, policy.ActionReadChat); err != nil {
			return nil, err
		}
	}

	return s.withStats(ctx, viewerId, replies)
}

func toChatResponse(c *entity.Chat) *dto.ChatResponse {
	return &dto.ChatResponse{Id: c.Id, TeamId: c.TeamId, Name: c.Name, CreatedAt: c.CreatedAt}
}

func toTeamResponse(t *TeamWithChats) *dto.TeamResponse {
	chats := make([]*dto.ChatResponse, len(t.Chats))
	for i, c := range t.Chats {
		chats[i] = toChatResponse(c)
	}
	return &dto.TeamResponse{
		Id:        t.Team.Id,
		Name:      t.Team.Name,
		OwnerId:   t.Team.OwnerId,
		Chats:     chats,
		CreatedAt: t.Team.CreatedAt,
	}
}

func (s *interactionService) notifyAdded(ctx context.Context, actorId, userId uuid.UUID, team *entity.Team) {
	teamName := "a team"
	var teamId *uuid.UUID
	if team != nil {
		teamName = team.Name
		teamId = ptr(team.Id)
	}
	s.notify(ctx, NotifyInput{
		RecipientId: userId,
		Title:       "Added to team",
		Message:     fmt.Sprintf("%s added you to %s", s.userLabel(ctx, actorId), teamName),
		ActorId:     &actorId,
		EntityType:  entityTeam,
		EntityId:    teamId,
	})
}

func (s *interactionService) CreateTeam(ctx context.Context, actorId uuid.UUID, req *dto.CreateTeamRequest) (res *dto.TeamResponse, err error) {
	changed := true
	ctx, done := s.start(ctx, "create_team", actorId)
	defer func() { done(&changed, &err) }()

	created, err := s.memberships.CreateTeam(ctx, actorId, req.Name, req.ChatName, req.MemberIds)
	if err != nil {
		return nil, err
	}

	for _, userId := range created.AddedMemberIds {
		s.notifyAdded(ctx, actorId, userId, created.Team)
	}

	s.publish(ctx, events.TeamCreated, map[string]interface{}{
		"actor_id":     actorId.String(),
		"team_id":      created.Team.Id.String(),
		"member_count": len(created.AddedMemberIds) + 1,
	})
	return toTeamResponse(created), nil
}

func (s *interactionService) ListTeams(ctx context.Context, actorId uuid.UUID) ([]*dto.TeamResponse, error) {
	teams, err := s.memberships.ListTeams(ctx, actorId)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.TeamResponse, len(teams))
	for i, t := range teams {
		res[i] = toTeamResponse(t)
	}
	return res, nil
}

func (s *interactionService) ListMembers(ctx context.Context, actorId, teamId uuid.UUID) ([]*dto.MemberResponse, error) {
	members, err := s.memberships.ListMembers(ctx, teamId, actorId)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.MemberResponse, len(members))
	for i, m := range members {
		res[i] = &dto.MemberResponse{
			UserId:      m.Membership.UserId,
			Username:    m.User.Username,
			DisplayName: m.User.DisplayName,
			Role:        m.Membership.Role,
			JoinedAt:    m.Membership.CreatedAt,
		}
	}
	return res, nil
}

func (s *interactionService) findTeam(ctx context.Context, teamId uuid.UUID) *entity.Team {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	team, err := uow.TeamRepository().FindOne(ctx, specification.ByID{ID: teamId})
	if err != nil {
		return nil
	}
	return team
}

func (s *interactionService) AddMember(ctx context.Context, actorId, teamId, userId uuid.UUID) (res *dto.MembershipChangeResponse, err error) {
	var changed bool
	ctx, done := s.start(ctx, "add_member", actorId)
	defer func() { done(&changed, &err) }()

	if changed, err = s.memberships.AddMember(ctx, teamId, actorId, userId); err != nil {
		return nil, err
	}

	if changed {
		s.notifyAdded(ctx, actorId, userId, s.findTeam(ctx, teamId))
		s.publish(ctx, events.MemberAdded, map[string]interface{}{
			"actor_id": actorId.String(),
			"team_id":  teamId.String(),
			"user_id":  userId.String(),
		})
	}
	return &dto.MembershipChangeResponse{TeamId: teamId, UserId: userId, Changed: changed}, nil
}

func (s *interactionService) AddMemberByChat(ctx context.Context, actorId, chatId, userId uuid.UUID) (*dto.MembershipChangeResponse, error) {
	chat, err := s.memberships.GetChat(ctx, chatId)
	if err != nil {
		return nil, err
	}
	return s.AddMember(ctx, actorId, chat.TeamId, userId)
}

func (s *interactionService) RemoveMember(ctx context.Context, actorId, teamId, userId uuid.UUID) (res *dto.MembershipChangeResponse, err error) {
	var changed bool
	ctx, done := s.start(ctx, "remove_member", actorId)
	defer func() { done(&changed, &err) }()

	if changed, err = s.memberships.RemoveMember(ctx, teamId, actorId, userId); err != nil {
		return nil, err
	}

	if changed {
		s.publish(ctx, events.MemberRemoved, map[string]interface{}{
			"actor_id": actorId.String(),
			"team_id":  teamId.String(),
			"user_id":  userId.String(),
		})
	}
	return &dto.MembershipChangeResponse{TeamId: teamId, UserId: userId, Changed: changed}, nil
}

func (s *interactionService) RemoveMemberByChat(ctx context.Context, actorId, chatId, userId uuid.UUID) (*dto.MembershipChangeResponse, error) {
	chat, err := s.memberships.GetChat(ctx, chatId)
	if err != nil {
		return nil, err
	}
	return s.RemoveMember(ctx, actorId, chat.TeamId, userId)
}

func (s *interactionService) CreateChat(ctx context.Context, actorId, teamId uuid.UUID, req *dto.CreateChatRequest) (res *dto.ChatResponse, err error) {
	changed := true
	ctx, done := s.start(ctx, "create_chat", actorId)
	defer func() { done(&changed, &err) }()

	chat, err := s.memberships.CreateChat(ctx, teamId, actorId, req.Name)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.ChatCreated, map[string]interface{}{
		"actor_id": actorId.String(),
		"team_id":  teamId.String(),
		"chat_id":  chat.Id.String(),
	})
	return toChatResponse(chat), nil
}

func (s *interactionService) DeleteChat(ctx context.Context, actorId, chatId uuid.UUID) (res *dto.DeleteChatResponse, err error) {
	changed := true
	ctx, done := s.start(ctx, "delete_chat", actorId)
	defer func() { done(&changed, &err) }()

	deletion, err := s.memberships.DeleteChat(ctx, chatId, actorId)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.ChatDeleted, map[string]interface{}{
		"actor_id":         actorId.String(),
		"team_id":          deletion.Chat.TeamId.String(),
		"chat_id":          chatId.String(),
		"messages_deleted": len(deletion.MessageIds),
	})
	if deletion.TeamDeleted {
		s.publish(ctx, events.TeamDissolved, map[string]interface{}{
			"actor_id": actorId.String(),
			"team_id":  deletion.Chat.TeamId.String(),
		})
	}

	return &dto.DeleteChatResponse{
		ChatId:      chatId,
		TeamId:      deletion.Chat.TeamId,
		TeamDeleted: deletion.TeamDeleted,
	}, nil
}
