package service_test

import (
	"context"
	"sync"
	"testing"

	"taskfeed-be/internal/entity"
	"taskfeed-be/internal/pkg/apperror"
	"taskfeed-be/internal/policy"
	"taskfeed-be/internal/service"
	"taskfeed-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type membershipFixture struct {
	memberships service.IMembershipService
	threads     service.IThreadService
	ledger      service.IEdgeLedgerService
	owner       *entity.User
	member      *entity.User
	outsider    *entity.User
}

func newMembershipFixture(t *testing.T) *membershipFixture {
	t.Helper()
	factory, db := testutil.NewFactory(t)
	clock := testutil.NewFixedClock()
	return &membershipFixture{
		memberships: service.NewMembershipService(factory, clock.Now),
		threads:     service.NewThreadService(factory, testFeed, clock.Now),
		ledger:      service.NewEdgeLedgerService(factory, clock.Now),
		owner:       testutil.CreateUser(t, db, "owner"),
		member:      testutil.CreateUser(t, db, "member"),
		outsider:    testutil.CreateUser(t, db, "outsider"),
	}
}

func TestMembership_CreateTeam(t *testing.T) {
	ctx := context.Background()
	f := newMembershipFixture(t)

	created, err := f.memberships.CreateTeam(ctx, f.owner.Id, "Platform", "", []uuid.UUID{f.member.Id, f.member.Id, f.owner.Id})
	require.NoError(t, err)
	require.Len(t, created.Chats, 1)
	assert.Equal(t, service.DefaultChatName, created.Chats[0].Name)
	assert.Equal(t, []uuid.UUID{f.member.Id}, created.AddedMemberIds, "owner skipped and duplicates collapsed")

	role, err := f.memberships.RoleOf(ctx, created.Team.Id, f.owner.Id)
	require.NoError(t, err)
	assert.Equal(t, policy.RoleOwner, role)

	role, err = f.memberships.RoleOf(ctx, created.Team.Id, f.member.Id)
	require.NoError(t, err)
	assert.Equal(t, policy.RoleMember, role)

	_, err = f.memberships.CreateTeam(ctx, f.owner.Id, "Ghosts", "", []uuid.UUID{uuid.New()})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	_, err = f.memberships.CreateTeam(ctx, f.owner.Id, "  ", "", nil)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	teams, err := f.memberships.ListTeams(ctx, f.member.Id)
	require.NoError(t, err)
	require.Len(t, teams, 1, "the failed team left nothing behind")
	assert.Equal(t, "Platform", teams[0].Team.Name)

	teams, err = f.memberships.ListTeams(ctx, f.outsider.Id)
	require.NoError(t, err)
	assert.Empty(t, teams)
}

func TestMembership_OwnerProtection(t *testing.T) {
	ctx := context.Background()
	f := newMembershipFixture(t)

	created, err := f.memberships.CreateTeam(ctx, f.owner.Id, "Platform", "", []uuid.UUID{f.member.Id})
	require.NoError(t, err)
	teamId := created.Team.Id

	_, err = f.memberships.RemoveMember(ctx, teamId, f.owner.Id, f.owner.Id)
	assert.True(t, apperror.Is(err, apperror.KindInvalidOperation))

	_, err = f.memberships.RemoveMember(ctx, teamId, f.member.Id, f.owner.Id)
	assert.True(t, apperror.Is(err, apperror.KindForbidden), "members cannot remove anyone")

	added, err := f.memberships.AddMember(ctx, teamId, f.owner.Id, f.outsider.Id)
	require.NoError(t, err)
	require.True(t, added)

	_, err = f.memberships.RemoveMember(ctx, teamId, f.member.Id, f.outsider.Id)
	assert.True(t, apperror.Is(err, apperror.KindForbidden), "members cannot remove other members either")

	_, err = f.memberships.RemoveMember(ctx, teamId, f.outsider.Id, f.member.Id)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	role, err := f.memberships.RoleOf(ctx, teamId, f.owner.Id)
	require.NoError(t, err)
	assert.Equal(t, policy.RoleOwner, role)

	for _, user := range []uuid.UUID{f.member.Id, f.outsider.Id} {
		role, err := f.memberships.RoleOf(ctx, teamId, user)
		require.NoError(t, err)
		assert.Equal(t, policy.RoleMember, role)
	}
}

func TestMembership_AddAndRemove(t *testing.T) {
	ctx := context.Background()
	f := newMembershipFixture(t)

	created, err := f.memberships.CreateTeam(ctx, f.owner.Id, "Platform", "", []uuid.UUID{f.member.Id})
	require.NoError(t, err)
	teamId := created.Team.Id

	_, err = f.memberships.AddMember(ctx, teamId, f.outsider.Id, f.outsider.Id)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	added, err := f.memberships.AddMember(ctx, teamId, f.member.Id, f.outsider.Id)
	require.NoError(t, err)
	assert.True(t, added, "members may add peers")

	added, err = f.memberships.AddMember(ctx, teamId, f.owner.Id, f.outsider.Id)
	require.NoError(t, err)
	assert.False(t, added)

	_, err = f.memberships.AddMember(ctx, teamId, f.owner.Id, uuid.New())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	_, err = f.memberships.AddMember(ctx, uuid.New(), f.owner.Id, f.outsider.Id)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	members, err := f.memberships.ListMembers(ctx, teamId, f.member.Id)
	require.NoError(t, err)
	assert.Len(t, members, 3)

	removed, err := f.memberships.RemoveMember(ctx, teamId, f.owner.Id, f.outsider.Id)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = f.memberships.RemoveMember(ctx, teamId, f.owner.Id, f.outsider.Id)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = f.memberships.ListMembers(ctx, teamId, f.outsider.Id)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))
}

func TestMembership_ChatAuthorization(t *testing.T) {
	ctx := context.Background()
	f := newMembershipFixture(t)

	created, err := f.memberships.CreateTeam(ctx, f.owner.Id, "Platform", "lobby", []uuid.UUID{f.member.Id})
	require.NoError(t, err)
	chat := created.Chats[0]
	assert.Equal(t, "lobby", chat.Name)

	_, err = f.memberships.AuthorizeChat(ctx, chat.Id, f.member.Id, policy.ActionPostMessage)
	assert.NoError(t, err)

	_, err = f.memberships.AuthorizeChat(ctx, chat.Id, f.outsider.Id, policy.ActionReadChat)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	_, err = f.memberships.AuthorizeChat(ctx, uuid.New(), f.member.Id, policy.ActionReadChat)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	_, err = f.memberships.DeleteChat(ctx, chat.Id, f.member.Id)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	_, err = f.memberships.CreateChat(ctx, created.Team.Id, f.outsider.Id, "side")
	assert.True(t, apperror.Is(err, apperror.KindForbidden))
}

func TestMembership_DeleteChatCascades(t *testing.T) {
	ctx := context.Background()
	f := newMembershipFixture(t)

	created, err := f.memberships.CreateTeam(ctx, f.owner.Id, "Platform", "", []uuid.UUID{f.member.Id})
	require.NoError(t, err)
	teamId := created.Team.Id
	general := created.Chats[0]

	side, err := f.memberships.CreateChat(ctx, teamId, f.member.Id, "side")
	require.NoError(t, err)

	post := func(chatId uuid.UUID) *entity.Message {
		msg, err := f.threads.CreateMessage(ctx, service.CreateMessageInput{AuthorId: f.member.Id, Body: "hi", ChatId: &chatId})
		require.NoError(t, err)
		_, err = f.ledger.SetEdge(ctx, entity.EdgeReaction, f.owner.Id, msg.Id)
		require.NoError(t, err)
		return msg
	}
	inSide := post(side.Id)
	inGeneral := post(general.Id)

	// First chat goes, the team survives.
	deletion, err := f.memberships.DeleteChat(ctx, side.Id, f.owner.Id)
	require.NoError(t, err)
	assert.False(t, deletion.TeamDeleted)
	assert.Equal(t, []uuid.UUID{inSide.Id}, deletion.MessageIds)

	_, err = f.threads.GetMessage(ctx, inSide.Id)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	count, err := f.ledger.Count(ctx, entity.EdgeReaction, inSide.Id)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = f.threads.GetMessage(ctx, inGeneral.Id)
	assert.NoError(t, err)

	// Last chat takes the team and its memberships along.
	deletion, err = f.memberships.DeleteChat(ctx, general.Id, f.owner.Id)
	require.NoError(t, err)
	assert.True(t, deletion.TeamDeleted)

	for _, user := range []uuid.UUID{f.owner.Id, f.member.Id} {
		role, err := f.memberships.RoleOf(ctx, teamId, user)
		require.NoError(t, err)
		assert.Equal(t, policy.RoleNone, role)
	}

	teams, err := f.memberships.ListTeams(ctx, f.owner.Id)
	require.NoError(t, err)
	assert.Empty(t, teams)

	count, err = f.ledger.Count(ctx, entity.EdgeReaction, inGeneral.Id)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = f.memberships.DeleteChat(ctx, general.Id, f.owner.Id)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestMembership_ConcurrentDeletesOfLastChatsDissolveTeam(t *testing.T) {
	ctx := context.Background()
	f := newMembershipFixture(t)

	created, err := f.memberships.CreateTeam(ctx, f.owner.Id, "Platform", "", []uuid.UUID{f.member.Id})
	require.NoError(t, err)
	teamId := created.Team.Id
	side, err := f.memberships.CreateChat(ctx, teamId, f.owner.Id, "side")
	require.NoError(t, err)

	chatIds := []uuid.UUID{created.Chats[0].Id, side.Id}
	results := make([]*service.ChatDeletion, len(chatIds))
	errs := make([]error, len(chatIds))

	var wg sync.WaitGroup
	for i, chatId := range chatIds {
		wg.Add(1)
		go func(i int, chatId uuid.UUID) {
			defer wg.Done()
			results[i], errs[i] = f.memberships.DeleteChat(ctx, chatId, f.owner.Id)
		}(i, chatId)
	}
	wg.Wait()

	dissolved := 0
	for i := range chatIds {
		require.NoError(t, errs[i])
		if results[i].TeamDeleted {
			dissolved++
		}
	}
	assert.Equal(t, 1, dissolved, "exactly one deletion sees zero chats left")

	for _, user := range []uuid.UUID{f.owner.Id, f.member.Id} {
		role, err := f.memberships.RoleOf(ctx, teamId, user)
		require.NoError(t, err)
		assert.Equal(t, policy.RoleNone, role)
	}

	_, err = f.memberships.CreateChat(ctx, teamId, f.owner.Id, "late")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	_, err = f.memberships.AddMember(ctx, teamId, f.owner.Id, f.outsider.Id)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	_, err = f.threads.CreateMessage(ctx, service.CreateMessageInput{AuthorId: f.member.Id, Body: "anyone?", ChatId: &side.Id})
	assert.True(t, apperror.Is(err, apperror.KindNotFound), "posting into a deleted chat fails")
}
