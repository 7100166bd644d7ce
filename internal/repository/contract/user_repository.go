package contract

import (
	"context"

	"taskfeed-be/internal/entity"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByIds(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error)
	CountByIds(ctx context.Context, ids []uuid.UUID) (int64, error)
}
