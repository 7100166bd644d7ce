package service_test

import (
	"context"
	"testing"

	"taskfeed-be/internal/pkg/apperror"
	"taskfeed-be/internal/pkg/logger"
	"taskfeed-be/internal/pkg/metrics"
	"taskfeed-be/internal/service"
	"taskfeed-be/internal/testutil"

	"github.com/google/uuid"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotificationService(t *testing.T) (*service.NotificationService, *metrics.Metrics) {
	t.Helper()
	factory, _ := testutil.NewFactory(t)
	m := metrics.Nop()
	return service.NewNotificationService(factory, logger.NewNopLogger(), m, testutil.NewFixedClock().Now), m
}

func TestNotification_DedupeAggregates(t *testing.T) {
	ctx := context.Background()
	notifications, m := newNotificationService(t)

	recipient := uuid.New()
	messageId := uuid.New()
	key := "reaction:" + messageId.String()

	first, err := notifications.Notify(ctx, service.NotifyInput{
		RecipientId: recipient, DedupeKey: key, Title: "New reaction", Message: "Alice liked your message",
		EntityType: "message", EntityId: &messageId,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, first.OccurrenceCount)

	marked, err := notifications.MarkAllRead(ctx, recipient)
	require.NoError(t, err)
	assert.Equal(t, int64(1), marked)

	second, err := notifications.Notify(ctx, service.NotifyInput{
		RecipientId: recipient, DedupeKey: key, Title: "New reaction", Message: "Bob liked your message",
	})
	require.NoError(t, err)
	assert.Equal(t, first.Id, second.Id)
	assert.Equal(t, 2, second.OccurrenceCount)
	assert.Equal(t, "Bob liked your message", second.Message)
	assert.True(t, second.NotifiedAt.After(first.NotifiedAt))
	require.NotNil(t, second.EntityId, "the repeat carried no entity, the stored one stays")
	assert.Equal(t, messageId, *second.EntityId)
	assert.Equal(t, "message", second.EntityType)

	unread, err := notifications.UnreadCount(ctx, recipient)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	list, err := notifications.List(ctx, recipient, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
	assert.Equal(t, 20, list.Limit)

	assert.Equal(t, 1.0, promtest.ToFloat64(m.Notifications.WithLabelValues("inserted")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.Notifications.WithLabelValues("aggregated")))
}

func TestNotification_MarkAllReadStampsClockTime(t *testing.T) {
	ctx := context.Background()
	factory, _ := testutil.NewFactory(t)
	clock := testutil.NewFixedClock()
	notifications := service.NewNotificationService(factory, logger.NewNopLogger(), metrics.Nop(), clock.Now)

	recipient := uuid.New()
	_, err := notifications.Notify(ctx, service.NotifyInput{RecipientId: recipient, Title: "Added to team", Message: "Welcome"})
	require.NoError(t, err)

	readAt := clock.Current
	marked, err := notifications.MarkAllRead(ctx, recipient)
	require.NoError(t, err)
	assert.Equal(t, int64(1), marked)

	list, err := notifications.List(ctx, recipient, 10, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.True(t, list.Items[0].IsRead)
	require.NotNil(t, list.Items[0].ReadAt)
	assert.True(t, readAt.Equal(*list.Items[0].ReadAt))
}

func TestNotification_NoKeyAlwaysInserts(t *testing.T) {
	ctx := context.Background()
	notifications, _ := newNotificationService(t)

	recipient := uuid.New()
	for i := 0; i < 2; i++ {
		_, err := notifications.Notify(ctx, service.NotifyInput{RecipientId: recipient, Title: "Added to team", Message: "x"})
		require.NoError(t, err)
	}

	list, err := notifications.List(ctx, recipient, 500, -3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 100, list.Limit)
	assert.Equal(t, 0, list.Offset)
	assert.True(t, list.Items[0].NotifiedAt.After(list.Items[1].NotifiedAt), "newest notified first")
}

func TestNotification_Validation(t *testing.T) {
	ctx := context.Background()
	notifications, _ := newNotificationService(t)

	_, err := notifications.Notify(ctx, service.NotifyInput{Title: "x"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = notifications.Notify(ctx, service.NotifyInput{RecipientId: uuid.New(), Title: " "})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestNotification_Remove(t *testing.T) {
	ctx := context.Background()
	notifications, _ := newNotificationService(t)

	recipient := uuid.New()
	stored, err := notifications.Notify(ctx, service.NotifyInput{RecipientId: recipient, Title: "hello"})
	require.NoError(t, err)

	err = notifications.Remove(ctx, stored.Id, uuid.New())
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	require.NoError(t, notifications.Remove(ctx, stored.Id, recipient))

	err = notifications.Remove(ctx, stored.Id, recipient)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
