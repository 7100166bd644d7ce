package contract

import (
	"context"

	"taskfeed-be/internal/entity"

	"github.com/google/uuid"
)

type EdgeRepository interface {
	// Insert reports false when the edge already existed.
	Insert(ctx context.Context, edge *entity.Edge) (bool, error)
	// Delete reports false when there was nothing to delete.
	Delete(ctx context.Context, kind entity.EdgeKind, subjectId, objectId uuid.UUID) (bool, error)
	Exists(ctx context.Context, kind entity.EdgeKind, subjectId, objectId uuid.UUID) (bool, error)
	CountByObject(ctx context.Context, kind entity.EdgeKind, objectId uuid.UUID) (int64, error)
	CountByObjects(ctx context.Context, kind entity.EdgeKind, objectIds []uuid.UUID) (map[uuid.UUID]int64, error)
	CountBySubject(ctx context.Context, kind entity.EdgeKind, subjectId uuid.UUID) (int64, error)
	FindSetObjects(ctx context.Context, kind entity.EdgeKind, subjectId uuid.UUID, objectIds []uuid.UUID) (map[uuid.UUID]bool, error)
	FindSubjects(ctx context.Context, kind entity.EdgeKind, objectId uuid.UUID, limit, offset int) ([]uuid.UUID, error)
	DeleteByObjects(ctx context.Context, kind entity.EdgeKind, objectIds []uuid.UUID) error
}
