package specification_test

import (
	"testing"

	"taskfeed-be/internal/model"
	"taskfeed-be/internal/repository/specification"
	"taskfeed-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// postgresDryRun builds statements against the Postgres dialect without a server.
func postgresDryRun(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.Open("host=localhost user=taskfeed dbname=taskfeed sslmode=disable"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func lockedTeamQuery(db *gorm.DB, id uuid.UUID) string {
	return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var team model.Team
		tx = specification.ByID{ID: id}.Apply(tx)
		tx = specification.ForUpdate{}.Apply(tx)
		return tx.First(&team)
	})
}

func TestForUpdate_LocksRowsOnPostgres(t *testing.T) {
	sql := lockedTeamQuery(postgresDryRun(t), uuid.New())

	assert.Contains(t, sql, `FROM "teams"`)
	assert.Contains(t, sql, "FOR UPDATE")
}

func TestForUpdate_IgnoredBySQLite(t *testing.T) {
	sql := lockedTeamQuery(testutil.NewDB(t), uuid.New())

	assert.Contains(t, sql, "teams")
	assert.NotContains(t, sql, "FOR UPDATE")
}

func TestByIDs(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	sql := postgresDryRun(t).ToSQL(func(tx *gorm.DB) *gorm.DB {
		var users []model.User
		return specification.ByIDs{IDs: ids}.Apply(tx).Find(&users)
	})

	assert.Contains(t, sql, "id IN (")
	assert.Contains(t, sql, ids[0].String())
	assert.Contains(t, sql, ids[1].String())
}
