package contract

import (
	"context"

	"taskfeed-be/internal/entity"
	"taskfeed-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TeamRepository interface {
	Create(ctx context.Context, team *entity.Team) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Team, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Team, error)
}

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type MembershipRepository interface {
	// Insert reports false when the user was already a member.
	Insert(ctx context.Context, membership *entity.Membership) (bool, error)
	Delete(ctx context.Context, teamId, userId uuid.UUID) (bool, error)
	DeleteByTeamId(ctx context.Context, teamId uuid.UUID) error
	FindOne(ctx context.Context, teamId, userId uuid.UUID) (*entity.Membership, error)
	FindAllByTeamId(ctx context.Context, teamId uuid.UUID) ([]*entity.Membership, error)
	CountByTeamId(ctx context.Context, teamId uuid.UUID) (int64, error)
}
