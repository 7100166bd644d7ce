package service

import (
	"context"
	"strings"

	"taskfeed-be/internal/config"
	"taskfeed-be/internal/entity"
	"taskfeed-be/internal/pkg/apperror"
	"taskfeed-be/internal/repository/specification"
	"taskfeed-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type CreateMessageInput struct {
	AuthorId uuid.UUID
	Body     string
	Images   []string
	ParentId *uuid.UUID
	ChatId   *uuid.UUID
}

// MessageFilter: a nil ChatId selects the public feed.
type MessageFilter struct {
	AuthorId *uuid.UUID
	ChatId   *uuid.UUID
	Query    string
}

type MessagePage struct {
	Items      []*entity.Message
	NextCursor string
}

type IThreadService interface {
	CreateMessage(ctx context.Context, input CreateMessageInput) (*entity.Message, error)
	GetMessage(ctx context.Context, id uuid.UUID) (*entity.Message, error)
	DeleteMessage(ctx context.Context, id, requesterId uuid.UUID) (*entity.Message, error)
	ListTopLevel(ctx context.Context, filter MessageFilter, cursor string, pageSize int) (*MessagePage, error)
	ListReplies(ctx context.Context, parentId uuid.UUID) ([]*entity.Message, error)
	Stats(ctx context.Context, viewerId uuid.UUID, messageIds []uuid.UUID) (map[uuid.UUID]entity.MessageStats, error)
}

type threadService struct {
	uowFactory unitofwork.RepositoryFactory
	feed       config.FeedConfig
	clock      Clock
}

func NewThreadService(uowFactory unitofwork.RepositoryFactory, feed config.FeedConfig, clock Clock) IThreadService {
	if clock == nil {
		clock = SystemClock
	}
	if feed.DefaultPageSize <= 0 {
		feed.DefaultPageSize = 20
	}
	if feed.MaxPageSize <= 0 {
		feed.MaxPageSize = 100
	}
	return &threadService{
		uowFactory: uowFactory,
		feed:       feed,
		clock:      clock,
	}
}

func (s *threadService) CreateMessage(ctx context.Context, input CreateMessageInput) (*entity.Message, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, apperror.Validation("body is required", nil)
	}

	images := make([]string, 0, entity.MaxMessageImages)
	for _, ref := range input.Images {
		if len(images) == entity.MaxMessageImages {
			break
		}
		if ref = strings.TrimSpace(ref); ref != "" {
			images = append(images, ref)
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	message := entity.Message{
		Id:        uuid.New(),
		AuthorId:  input.AuthorId,
		ChatId:    input.ChatId,
		Body:      body,
		Images:    images,
		CreatedAt: s.clock(),
	}

	if input.ParentId != nil {
		parent, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: *input.ParentId})
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperror.NotFound("parent message not found")
		}

		// Replies live where their parent lives.
		message.ParentId = &parent.Id
		message.ChatId = parent.ChatId

		parentAuthor, err := uow.UserRepository().FindById(ctx, parent.AuthorId)
		if err != nil {
			return nil, err
		}
		if parentAuthor != nil {
			label := parentAuthor.Label()
			message.ParentAuthorLabel = &label
		}
	}

	// Holding the chat row keeps a concurrent DeleteChat from missing this message.
	if message.ChatId != nil {
		chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: *message.ChatId}, specification.ForUpdate{})
		if err != nil {
			return nil, err
		}
		if chat == nil {
			return nil, apperror.NotFound("chat not found")
		}
	}

	if err := uow.MessageRepository().Create(ctx, &message); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return &message, nil
}

func (s *threadService) GetMessage(ctx context.Context, id uuid.UUID) (*entity.Message, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	message, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, apperror.NotFound("message not found")
	}
	return message, nil
}

// DeleteMessage removes the message and the reactions on it. Replies stay
// behind with a dangling parent id.
func (s *threadService) DeleteMessage(ctx context.Context, id, requesterId uuid.UUID) (*entity.Message, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	message, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, apperror.NotFound("message not found")
	}
	if message.AuthorId != requesterId {
		return nil, apperror.Forbidden("only the author can delete this message")
	}

	if err := uow.EdgeRepository().DeleteByObjects(ctx, entity.EdgeReaction, []uuid.UUID{id}); err != nil {
		return nil, err
	}
	if err := uow.MessageRepository().Delete(ctx, id); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *threadService) clampPageSize(pageSize int) int {
	if pageSize <= 0 {
		return s.feed.DefaultPageSize
	}
	if pageSize > s.feed.MaxPageSize {
		return s.feed.MaxPageSize
	}
	return pageSize
}

func (s *threadService) ListTopLevel(ctx context.Context, filter MessageFilter, cursor string, pageSize int) (*MessagePage, error) {
	pageSize = s.clampPageSize(pageSize)

	specs := []specification.Specification{
		specification.TopLevel{},
		specification.ByChatID{ChatID: filter.ChatId},
	}
	if filter.AuthorId != nil {
		specs = append(specs, specification.ByAuthorID{AuthorID: *filter.AuthorId})
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		specs = append(specs, specification.BodyContains{Query: q})
	}
	if cursor != "" {
		after, err := decodeCursor(cursor)
		if err != nil {
			return nil, err
		}
		specs = append(specs, *after)
	}
	// One extra row tells us whether another page exists.
	specs = append(specs,
		specification.NewestFirst{},
		specification.Pagination{Limit: pageSize + 1},
	)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.MessageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	page := &MessagePage{Items: messages}
	if len(messages) > pageSize {
		page.Items = messages[:pageSize]
		page.NextCursor = encodeCursor(page.Items[pageSize-1])
	}
	return page, nil
}

func (s *threadService) ListReplies(ctx context.Context, parentId uuid.UUID) ([]*entity.Message, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.MessageRepository().FindAll(ctx,
		specification.ByParentID{ParentID: parentId},
		specification.OldestFirst{},
	)
}

// Stats derives reaction and reply counts for a batch of messages.
func (s *threadService) Stats(ctx context.Context, viewerId uuid.UUID, messageIds []uuid.UUID) (map[uuid.UUID]entity.MessageStats, error) {
	stats := make(map[uuid.UUID]entity.MessageStats, len(messageIds))
	if len(messageIds) == 0 {
		return stats, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	reactions, err := uow.EdgeRepository().CountByObjects(ctx, entity.EdgeReaction, messageIds)
	if err != nil {
		return nil, err
	}
	replies, err := uow.MessageRepository().CountReplies(ctx, messageIds)
	if err != nil {
		return nil, err
	}
	reacted := map[uuid.UUID]bool{}
	if viewerId != uuid.Nil {
		reacted, err = uow.EdgeRepository().FindSetObjects(ctx, entity.EdgeReaction, viewerId, messageIds)
		if err != nil {
			return nil, err
		}
	}

	for _, id := range messageIds {
		stats[id] = entity.MessageStats{
			ReactionCount: reactions[id],
			ReplyCount:    replies[id],
			ReactedByUser: reacted[id],
		}
	}
	return stats, nil
}
