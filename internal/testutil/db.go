// Package testutil builds throwaway databases for package tests.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"taskfeed-be/internal/entity"
	"taskfeed-be/internal/model"
	"taskfeed-be/internal/repository/unitofwork"
	"taskfeed-be/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// One connection keeps the shared in-memory database alive for the whole test.
// It also runs every transaction one after another, and SQLite drops the
// FOR UPDATE clauses the services take, so lock contention is never exercised here.
var testPool = database.PoolConfig{
	MaxIdleConns:    1,
	MaxOpenConns:    1,
	ConnMaxLifetime: time.Hour,
}

// NewDB returns a migrated in-memory SQLite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(sqlite.Open(dsn), testPool, false)
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(model.All()...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewFactory is NewDB wrapped in a unit of work factory.
func NewFactory(t *testing.T) (unitofwork.RepositoryFactory, *gorm.DB) {
	t.Helper()
	db := NewDB(t)
	return unitofwork.NewRepositoryFactory(db), db
}

// CreateUser inserts a user with the given username as display name.
func CreateUser(t *testing.T, db *gorm.DB, username string) *entity.User {
	t.Helper()

	user := &entity.User{
		Id:          uuid.New(),
		Username:    username,
		DisplayName: username,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, unitofwork.NewUnitOfWork(db).UserRepository().Create(context.Background(), user))
	return user
}

// CreateUsers inserts n users named prefix-0..prefix-n.
func CreateUsers(t *testing.T, db *gorm.DB, prefix string, n int) []*entity.User {
	t.Helper()
	users := make([]*entity.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, CreateUser(t, db, fmt.Sprintf("%s-%d", prefix, i)))
	}
	return users
}

// CreateChat inserts a team owned by owner with a single chat in it.
// No memberships are created.
func CreateChat(t *testing.T, db *gorm.DB, owner *entity.User, name string) *entity.Chat {
	t.Helper()

	ctx := context.Background()
	uow := unitofwork.NewUnitOfWork(db)
	now := time.Now().UTC()

	team := &entity.Team{Id: uuid.New(), Name: name, OwnerId: owner.Id, CreatedAt: now}
	require.NoError(t, uow.TeamRepository().Create(ctx, team))

	chat := &entity.Chat{Id: uuid.New(), TeamId: team.Id, Name: name, CreatedAt: now}
	require.NoError(t, uow.ChatRepository().Create(ctx, chat))
	return chat
}

// FixedClock is a service clock that advances by Step on every call.
// Pass clock.Now where a service wants a Clock.
type FixedClock struct {
	mu      sync.Mutex
	Current time.Time
	Step    time.Duration
}

func NewFixedClock() *FixedClock {
	return &FixedClock{
		Current: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Step:    time.Second,
	}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.Current
	c.Current = c.Current.Add(c.Step)
	return now
}
