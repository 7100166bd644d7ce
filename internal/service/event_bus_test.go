package service_test

import (
	"context"
	"testing"
	"time"

	"taskfeed-be/internal/pkg/logger"
	"taskfeed-be/internal/pkg/metrics"
	"taskfeed-be/internal/service"
	"taskfeed-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestEventBus_PublishedEventsReachActivityLog(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	core, logs := observer.New(zap.InfoLevel)
	activityLog := logger.NewZapLoggerFrom(zap.New(core))
	m := metrics.Nop()

	consumer := service.NewActivityConsumer(pubSub, "events", activityLog, m)
	require.NoError(t, consumer.Consume(ctx))

	publisher := service.NewPublisherService("events", pubSub)
	require.NoError(t, publisher.Publish(ctx, events.New(events.FollowSet, map[string]interface{}{
		"actor_id": "a", "target_id": "b",
	})))

	assert.Eventually(t, func() bool {
		return promtest.ToFloat64(m.EventsConsumed.WithLabelValues(events.FollowSet)) == 1
	}, 2*time.Second, 10*time.Millisecond)

	entries := logs.FilterMessage(events.FollowSet).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "ActivityConsumer", entries[0].ContextMap()["module"])
}

func TestEventBus_InvalidPayloadIsAcked(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	core, logs := observer.New(zap.InfoLevel)
	consumer := service.NewActivityConsumer(pubSub, "events", logger.NewZapLoggerFrom(zap.New(core)), metrics.Nop())
	require.NoError(t, consumer.Consume(ctx))

	require.NoError(t, pubSub.Publish("events", newRawMessage([]byte("{not json"))))

	assert.Eventually(t, func() bool {
		return logs.FilterMessage("Failed to unmarshal event").Len() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func newRawMessage(payload []byte) *message.Message {
	return message.NewMessage(watermill.NewUUID(), payload)
}
