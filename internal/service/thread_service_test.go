package service_test

import (
	"context"
	"testing"

	"taskfeed-be/internal/config"
	"taskfeed-be/internal/entity"
	"taskfeed-be/internal/pkg/apperror"
	"taskfeed-be/internal/service"
	"taskfeed-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFeed = config.FeedConfig{DefaultPageSize: 20, MaxPageSize: 100}

func TestThread_CreateMessageTrimsInput(t *testing.T) {
	ctx := context.Background()
	factory, db := testutil.NewFactory(t)
	threads := service.NewThreadService(factory, testFeed, testutil.NewFixedClock().Now)
	author := testutil.CreateUser(t, db, "alice")

	msg, err := threads.CreateMessage(ctx, service.CreateMessageInput{
		AuthorId: author.Id,
		Body:     "  hello world  ",
		Images:   []string{"a.png", " ", "b.png", "c.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello world", msg.Body)
	assert.Equal(t, []string{"a.png", "b.png"}, msg.Images)
	assert.Nil(t, msg.ParentId)

	_, err = threads.CreateMessage(ctx, service.CreateMessageInput{AuthorId: author.Id, Body: "   "})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestThread_ReplyInheritsParent(t *testing.T) {
	ctx := context.Background()
	factory, db := testutil.NewFactory(t)
	threads := service.NewThreadService(factory, testFeed, testutil.NewFixedClock().Now)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	chatId := testutil.CreateChat(t, db, alice, "support").Id
	parent, err := threads.CreateMessage(ctx, service.CreateMessageInput{AuthorId: alice.Id, Body: "question", ChatId: &chatId})
	require.NoError(t, err)

	reply, err := threads.CreateMessage(ctx, service.CreateMessageInput{AuthorId: bob.Id, Body: "answer", ParentId: &parent.Id})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentId)
	assert.Equal(t, parent.Id, *reply.ParentId)
	require.NotNil(t, reply.ChatId)
	assert.Equal(t, chatId, *reply.ChatId)
	require.NotNil(t, reply.ParentAuthorLabel)
	assert.Equal(t, "alice", *reply.ParentAuthorLabel)

	missing := uuid.New()
	_, err = threads.CreateMessage(ctx, service.CreateMessageInput{AuthorId: bob.Id, Body: "lost", ParentId: &missing})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	stats, err := threads.Stats(ctx, bob.Id, []uuid.UUID{parent.Id, reply.Id})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats[parent.Id].ReplyCount)
	assert.Zero(t, stats[reply.Id].ReplyCount)
}

func TestThread_DeleteKeepsOrphanedReplies(t *testing.T) {
	ctx := context.Background()
	factory, db := testutil.NewFactory(t)
	threads := service.NewThreadService(factory, testFeed, testutil.NewFixedClock().Now)
	ledger := service.NewEdgeLedgerService(factory, nil)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	parent, err := threads.CreateMessage(ctx, service.CreateMessageInput{AuthorId: alice.Id, Body: "root"})
	require.NoError(t, err)
	_, err = threads.CreateMessage(ctx, service.CreateMessageInput{AuthorId: bob.Id, Body: "reply", ParentId: &parent.Id})
	require.NoError(t, err)
	_, err = ledger.SetEdge(ctx, entity.EdgeReaction, bob.Id, parent.Id)
	require.NoError(t, err)

	_, err = threads.DeleteMessage(ctx, parent.Id, bob.Id)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	deleted, err := threads.DeleteMessage(ctx, parent.Id, alice.Id)
	require.NoError(t, err)
	assert.Equal(t, parent.Id, deleted.Id)

	_, err = threads.GetMessage(ctx, parent.Id)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	count, err := ledger.Count(ctx, entity.EdgeReaction, parent.Id)
	require.NoError(t, err)
	assert.Zero(t, count, "reactions go with the message")

	replies, err := threads.ListReplies(ctx, parent.Id)
	require.NoError(t, err)
	assert.Len(t, replies, 1)

	_, err = threads.DeleteMessage(ctx, parent.Id, alice.Id)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestThread_ListTopLevelPages(t *testing.T) {
	ctx := context.Background()
	factory, db := testutil.NewFactory(t)
	threads := service.NewThreadService(factory, testFeed, testutil.NewFixedClock().Now)
	alice := testutil.CreateUser(t, db, "alice")

	var created []uuid.UUID
	for i := 0; i < 5; i++ {
		msg, err := threads.CreateMessage(ctx, service.CreateMessageInput{AuthorId: alice.Id, Body: "post"})
		require.NoError(t, err)
		created = append(created, msg.Id)
	}
	root := created[0]
	_, err := threads.CreateMessage(ctx, service.CreateMessageInput{AuthorId: alice.Id, Body: "reply", ParentId: &root})
	require.NoError(t, err)

	first, err := threads.ListTopLevel(ctx, service.MessageFilter{}, "", 2)
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	assert.Equal(t, created[4], first.Items[0].Id, "newest first")
	require.NotEmpty(t, first.NextCursor)

	second, err := threads.ListTopLevel(ctx, service.MessageFilter{}, first.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, second.Items, 2)
	assert.Equal(t, created[2], second.Items[0].Id)

	third, err := threads.ListTopLevel(ctx, service.MessageFilter{}, second.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, third.Items, 1, "the reply is not a top-level item")
	assert.Equal(t, created[0], third.Items[0].Id)
	assert.Empty(t, third.NextCursor)

	_, err = threads.ListTopLevel(ctx, service.MessageFilter{}, "not-a-cursor!", 2)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestThread_ListTopLevelFilters(t *testing.T) {
	ctx := context.Background()
	factory, db := testutil.NewFactory(t)
	threads := service.NewThreadService(factory, testFeed, testutil.NewFixedClock().Now)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	chatId := testutil.CreateChat(t, db, alice, "ops").Id
	_, err := threads.CreateMessage(ctx, service.CreateMessageInput{AuthorId: alice.Id, Body: "Deploy at noon"})
	require.NoError(t, err)
	_, err = threads.CreateMessage(ctx, service.CreateMessageInput{AuthorId: bob.Id, Body: "lunch?"})
	require.NoError(t, err)
	_, err = threads.CreateMessage(ctx, service.CreateMessageInput{AuthorId: alice.Id, Body: "deploy in chat", ChatId: &chatId})
	require.NoError(t, err)

	public, err := threads.ListTopLevel(ctx, service.MessageFilter{}, "", 0)
	require.NoError(t, err)
	assert.Len(t, public.Items, 2)

	byAuthor, err := threads.ListTopLevel(ctx, service.MessageFilter{AuthorId: &bob.Id}, "", 0)
	require.NoError(t, err)
	require.Len(t, byAuthor.Items, 1)
	assert.Equal(t, "lunch?", byAuthor.Items[0].Body)

	search, err := threads.ListTopLevel(ctx, service.MessageFilter{Query: "DEPLOY"}, "", 0)
	require.NoError(t, err)
	require.Len(t, search.Items, 1)
	assert.Equal(t, "Deploy at noon", search.Items[0].Body)

	inChat, err := threads.ListTopLevel(ctx, service.MessageFilter{ChatId: &chatId}, "", 0)
	require.NoError(t, err)
	assert.Len(t, inChat.Items, 1)
}
