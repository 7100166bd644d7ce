package service

import (
	"context"

	"taskfeed-be/internal/entity"
	"taskfeed-be/internal/pkg/apperror"
	"taskfeed-be/internal/repository/contract"
	"taskfeed-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// IEdgeLedgerService owns reaction and follow edges. Counts are always
// recomputed from the edge set, never stored.
type IEdgeLedgerService interface {
	SetEdge(ctx context.Context, kind entity.EdgeKind, subjectId, objectId uuid.UUID) (*entity.EdgeState, error)
	ClearEdge(ctx context.Context, kind entity.EdgeKind, subjectId, objectId uuid.UUID) (*entity.EdgeState, error)
	IsSet(ctx context.Context, kind entity.EdgeKind, subjectId, objectId uuid.UUID) (bool, error)
	Count(ctx context.Context, kind entity.EdgeKind, objectId uuid.UUID) (int64, error)
	CountMany(ctx context.Context, kind entity.EdgeKind, objectIds []uuid.UUID) (map[uuid.UUID]int64, error)
	CountBySubject(ctx context.Context, kind entity.EdgeKind, subjectId uuid.UUID) (int64, error)
	ListSubjects(ctx context.Context, kind entity.EdgeKind, objectId uuid.UUID, limit, offset int) ([]uuid.UUID, error)
}

type edgeLedgerService struct {
	uowFactory unitofwork.RepositoryFactory
	clock      Clock
}

func NewEdgeLedgerService(uowFactory unitofwork.RepositoryFactory, clock Clock) IEdgeLedgerService {
	if clock == nil {
		clock = SystemClock
	}
	return &edgeLedgerService{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func validateEdge(kind entity.EdgeKind, subjectId, objectId uuid.UUID) error {
	if !kind.Valid() {
		return apperror.Validation("unknown edge kind", map[string]string{"kind": string(kind)})
	}
	if subjectId == uuid.Nil || objectId == uuid.Nil {
		return apperror.Validation("edge endpoints are required", nil)
	}
	if kind == entity.EdgeFollow && subjectId == objectId {
		return apperror.InvalidOperation("cannot follow yourself")
	}
	return nil
}

func (s *edgeLedgerService) SetEdge(ctx context.Context, kind entity.EdgeKind, subjectId, objectId uuid.UUID) (*entity.EdgeState, error) {
	if err := validateEdge(kind, subjectId, objectId); err != nil {
		return nil, err
	}

	return s.mutate(ctx, kind, objectId, func(repo contract.EdgeRepository) (bool, error) {
		return repo.Insert(ctx, &entity.Edge{
			Kind:      kind,
			SubjectId: subjectId,
			ObjectId:  objectId,
			CreatedAt: s.clock(),
		})
	}, true)
}

func (s *edgeLedgerService) ClearEdge(ctx context.Context, kind entity.EdgeKind, subjectId, objectId uuid.UUID) (*entity.EdgeState, error) {
	if err := validateEdge(kind, subjectId, objectId); err != nil {
		return nil, err
	}

	return s.mutate(ctx, kind, objectId, func(repo contract.EdgeRepository) (bool, error) {
		return repo.Delete(ctx, kind, subjectId, objectId)
	}, false)
}

// mutate applies one insert/delete and recounts inside the same transaction,
// so the returned count includes this call's effect and every committed one before it.
func (s *edgeLedgerService) mutate(
	ctx context.Context,
	kind entity.EdgeKind,
	objectId uuid.UUID,
	op func(repo contract.EdgeRepository) (bool, error),
	isSet bool,
) (*entity.EdgeState, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	repo := uow.EdgeRepository()

	changed, err := op(repo)
	if err != nil {
		return nil, err
	}

	count, err := repo.CountByObject(ctx, kind, objectId)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &entity.EdgeState{
		IsSet:   isSet,
		Count:   count,
		Changed: changed,
	}, nil
}

func (s *edgeLedgerService) IsSet(ctx context.Context, kind entity.EdgeKind, subjectId, objectId uuid.UUID) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.EdgeRepository().Exists(ctx, kind, subjectId, objectId)
}

func (s *edgeLedgerService) Count(ctx context.Context, kind entity.EdgeKind, objectId uuid.UUID) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.EdgeRepository().CountByObject(ctx, kind, objectId)
}

func (s *edgeLedgerService) CountMany(ctx context.Context, kind entity.EdgeKind, objectIds []uuid.UUID) (map[uuid.UUID]int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.EdgeRepository().CountByObjects(ctx, kind, objectIds)
}

func (s *edgeLedgerService) CountBySubject(ctx context.Context, kind entity.EdgeKind, subjectId uuid.UUID) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.EdgeRepository().CountBySubject(ctx, kind, subjectId)
}

func (s *edgeLedgerService) ListSubjects(ctx context.Context, kind entity.EdgeKind, objectId uuid.UUID, limit, offset int) ([]uuid.UUID, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.EdgeRepository().FindSubjects(ctx, kind, objectId, limit, offset)
}
