package implementation_test

import (
	"context"
	"testing"
	"time"

	"taskfeed-be/internal/entity"
	"taskfeed-be/internal/repository/implementation"
	"taskfeed-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEdge(kind entity.EdgeKind, subject, object uuid.UUID) *entity.Edge {
	return &entity.Edge{Kind: kind, SubjectId: subject, ObjectId: object, CreatedAt: time.Now().UTC()}
}

func TestEdgeRepository_InsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := implementation.NewEdgeRepository(testutil.NewDB(t))

	subject, object := uuid.New(), uuid.New()

	inserted, err := repo.Insert(ctx, newEdge(entity.EdgeReaction, subject, object))
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.Insert(ctx, newEdge(entity.EdgeReaction, subject, object))
	require.NoError(t, err)
	assert.False(t, inserted, "second insert of the same edge must be a no-op")

	count, err := repo.CountByObject(ctx, entity.EdgeReaction, object)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Same pair under another kind is a different edge.
	inserted, err = repo.Insert(ctx, newEdge(entity.EdgeFollow, subject, object))
	require.NoError(t, err)
	assert.True(t, inserted)

	count, err = repo.CountByObject(ctx, entity.EdgeReaction, object)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestEdgeRepository_DeleteReportsChange(t *testing.T) {
	ctx := context.Background()
	repo := implementation.NewEdgeRepository(testutil.NewDB(t))

	subject, object := uuid.New(), uuid.New()

	deleted, err := repo.Delete(ctx, entity.EdgeFollow, subject, object)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.Insert(ctx, newEdge(entity.EdgeFollow, subject, object))
	require.NoError(t, err)

	exists, err := repo.Exists(ctx, entity.EdgeFollow, subject, object)
	require.NoError(t, err)
	assert.True(t, exists)

	deleted, err = repo.Delete(ctx, entity.EdgeFollow, subject, object)
	require.NoError(t, err)
	assert.True(t, deleted)

	exists, err = repo.Exists(ctx, entity.EdgeFollow, subject, object)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestEdgeRepository_BatchQueries(t *testing.T) {
	ctx := context.Background()
	repo := implementation.NewEdgeRepository(testutil.NewDB(t))

	viewer := uuid.New()
	m1, m2, m3 := uuid.New(), uuid.New(), uuid.New()

	for _, subject := range []uuid.UUID{viewer, uuid.New(), uuid.New()} {
		_, err := repo.Insert(ctx, newEdge(entity.EdgeReaction, subject, m1))
		require.NoError(t, err)
	}
	_, err := repo.Insert(ctx, newEdge(entity.EdgeReaction, uuid.New(), m2))
	require.NoError(t, err)

	counts, err := repo.CountByObjects(ctx, entity.EdgeReaction, []uuid.UUID{m1, m2, m3})
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[m1])
	assert.Equal(t, int64(1), counts[m2])
	assert.Zero(t, counts[m3])

	set, err := repo.FindSetObjects(ctx, entity.EdgeReaction, viewer, []uuid.UUID{m1, m2, m3})
	require.NoError(t, err)
	assert.True(t, set[m1])
	assert.False(t, set[m2])

	subjects, err := repo.FindSubjects(ctx, entity.EdgeReaction, m1, 2, 0)
	require.NoError(t, err)
	assert.Len(t, subjects, 2)

	require.NoError(t, repo.DeleteByObjects(ctx, entity.EdgeReaction, []uuid.UUID{m1, m2}))
	counts, err = repo.CountByObjects(ctx, entity.EdgeReaction, []uuid.UUID{m1, m2})
	require.NoError(t, err)
	assert.Empty(t, counts)
}
