package model

import (
	"time"

	"github.com/google/uuid"
)

// Edge is one row of the relationship ledger. The composite primary key is the
// uniqueness constraint that makes concurrent duplicate inserts collapse.
type Edge struct {
	Kind      string    `gorm:"type:varchar(20);primaryKey;index:idx_edges_kind_object,priority:1;index:idx_edges_kind_subject,priority:1"`
	SubjectId uuid.UUID `gorm:"type:uuid;primaryKey;index:idx_edges_kind_subject,priority:2"`
	ObjectId  uuid.UUID `gorm:"type:uuid;primaryKey;index:idx_edges_kind_object,priority:2"`
	CreatedAt time.Time `gorm:"not null"`
}

func (Edge) TableName() string {
	return "edges"
}

// EdgeCount is the scan target for grouped counts.
type EdgeCount struct {
	ObjectId uuid.UUID
	Total    int64
}
