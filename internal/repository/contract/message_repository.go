package contract

import (
	"context"

	"taskfeed-be/internal/entity"
	"taskfeed-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByChatId(ctx context.Context, chatId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	FindIdsByChatId(ctx context.Context, chatId uuid.UUID) ([]uuid.UUID, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// CountReplies returns reply counts keyed by parent id; parents without replies are absent.
	CountReplies(ctx context.Context, parentIds []uuid.UUID) (map[uuid.UUID]int64, error)
}
