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

func TestMembershipRepository_InsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	teams := implementation.NewTeamRepository(db)
	members := implementation.NewMembershipRepository(db)

	owner, user := uuid.New(), uuid.New()
	team := &entity.Team{Id: uuid.New(), Name: "core", OwnerId: owner, CreatedAt: time.Now().UTC()}
	require.NoError(t, teams.Create(ctx, team))

	added, err := members.Insert(ctx, &entity.Membership{TeamId: team.Id, UserId: user, Role: entity.MembershipRoleMember, CreatedAt: time.Now().UTC()})
	require.NoError(t, err)
	assert.True(t, added)

	added, err = members.Insert(ctx, &entity.Membership{TeamId: team.Id, UserId: user, Role: entity.MembershipRoleOwner, CreatedAt: time.Now().UTC()})
	require.NoError(t, err)
	assert.False(t, added)

	stored, err := members.FindOne(ctx, team.Id, user)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.MembershipRoleMember, stored.Role, "a duplicate insert never rewrites the role")

	removed, err := members.Delete(ctx, team.Id, user)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = members.Delete(ctx, team.Id, user)
	require.NoError(t, err)
	assert.False(t, removed)

	none, err := members.FindOne(ctx, team.Id, user)
	require.NoError(t, err)
	assert.Nil(t, none)
}
