package mapper

import (
	"taskfeed-be/internal/entity"
	"taskfeed-be/internal/model"
)

type EdgeMapper struct{}

func NewEdgeMapper() *EdgeMapper {
	return &EdgeMapper{}
}

func (m *EdgeMapper) ToModel(e *entity.Edge) *model.Edge {
	return &model.Edge{
		Kind:      string(e.Kind),
		SubjectId: e.SubjectId,
		ObjectId:  e.ObjectId,
		CreatedAt: e.CreatedAt,
	}
}

func (m *EdgeMapper) ToEntity(e *model.Edge) *entity.Edge {
	return &entity.Edge{
		Kind:      entity.EdgeKind(e.Kind),
		SubjectId: e.SubjectId,
		ObjectId:  e.ObjectId,
		CreatedAt: e.CreatedAt,
	}
}
