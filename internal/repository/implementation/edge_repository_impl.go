package implementation

import (
	"context"

	"taskfeed-be/internal/entity"
	"taskfeed-be/internal/mapper"
	"taskfeed-be/internal/model"
	"taskfeed-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EdgeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EdgeMapper
}

func NewEdgeRepository(db *gorm.DB) contract.EdgeRepository {
	return &EdgeRepositoryImpl{
		db:     db,
		mapper: mapper.NewEdgeMapper(),
	}
}

func (r *EdgeRepositoryImpl) scoped(ctx context.Context, kind entity.EdgeKind) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Edge{}).Where("kind = ?", string(kind))
}

func (r *EdgeRepositoryImpl) Insert(ctx context.Context, edge *entity.Edge) (bool, error) {
	m := r.mapper.ToModel(edge)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(m)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *EdgeRepositoryImpl) Delete(ctx context.Context, kind entity.EdgeKind, subjectId, objectId uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("kind = ? AND subject_id = ? AND object_id = ?", string(kind), subjectId, objectId).
		Delete(&model.Edge{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *EdgeRepositoryImpl) Exists(ctx context.Context, kind entity.EdgeKind, subjectId, objectId uuid.UUID) (bool, error) {
	var count int64
	err := r.scoped(ctx, kind).
		Where("subject_id = ? AND object_id = ?", subjectId, objectId).
		Count(&count).Error
	return count > 0, err
}

func (r *EdgeRepositoryImpl) CountByObject(ctx context.Context, kind entity.EdgeKind, objectId uuid.UUID) (int64, error) {
	var count int64
	err := r.scoped(ctx, kind).Where("object_id = ?", objectId).Count(&count).Error
	return count, err
}

func (r *EdgeRepositoryImpl) CountByObjects(ctx context.Context, kind entity.EdgeKind, objectIds []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(objectIds))
	if len(objectIds) == 0 {
		return counts, nil
	}

	var rows []model.EdgeCount
	err := r.scoped(ctx, kind).
		Select("object_id, COUNT(*) AS total").
		Where("object_id IN ?", objectIds).
		Group("object_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ObjectId] = row.Total
	}
	return counts, nil
}

func (r *EdgeRepositoryImpl) CountBySubject(ctx context.Context, kind entity.EdgeKind, subjectId uuid.UUID) (int64, error) {
	var count int64
	err := r.scoped(ctx, kind).Where("subject_id = ?", subjectId).Count(&count).Error
	return count, err
}

func (r *EdgeRepositoryImpl) FindSetObjects(ctx context.Context, kind entity.EdgeKind, subjectId uuid.UUID, objectIds []uuid.UUID) (map[uuid.UUID]bool, error) {
	set := make(map[uuid.UUID]bool, len(objectIds))
	if len(objectIds) == 0 {
		return set, nil
	}

	var ids []uuid.UUID
	err := r.scoped(ctx, kind).
		Where("subject_id = ? AND object_id IN ?", subjectId, objectIds).
		Pluck("object_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (r *EdgeRepositoryImpl) FindSubjects(ctx context.Context, kind entity.EdgeKind, objectId uuid.UUID, limit, offset int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.scoped(ctx, kind).
		Where("object_id = ?", objectId).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Pluck("subject_id", &ids).Error
	return ids, err
}

func (r *EdgeRepositoryImpl) DeleteByObjects(ctx context.Context, kind entity.EdgeKind, objectIds []uuid.UUID) error {
	if len(objectIds) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("kind = ? AND object_id IN ?", string(kind), objectIds).
		Delete(&model.Edge{}).Error
}
