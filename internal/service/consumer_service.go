package service

import (
	"context"
	"encoding/json"

	"taskfeed-be/internal/pkg/logger"
	"taskfeed-be/internal/pkg/metrics"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// activityConsumer drains the in-process event topic into the activity log.
type activityConsumer struct {
	subscriber  message.Subscriber
	topicName   string
	activityLog logger.ILogger
	metrics     *metrics.Metrics
}

func NewActivityConsumer(
	subscriber message.Subscriber,
	topicName string,
	activityLog logger.ILogger,
	m *metrics.Metrics,
) IConsumerService {
	return &activityConsumer{
		subscriber:  subscriber,
		topicName:   topicName,
		activityLog: activityLog,
		metrics:     m,
	}
}

func (c *activityConsumer) Consume(ctx context.Context) error {
	messages, err := c.subscriber.Subscribe(ctx, c.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			c.processMessage(msg)
		}
	}()

	return nil
}

func (c *activityConsumer) processMessage(msg *message.Message) {
	var envelope EventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		c.activityLog.Error("ActivityConsumer", "Failed to unmarshal event", map[string]interface{}{
			"error":      err,
			"message_id": msg.UUID,
		})
		// Invalid payloads never become valid, so ack instead of redelivering forever.
		msg.Ack()
		return
	}

	c.metrics.EventsConsumed.WithLabelValues(envelope.Type).Inc()
	c.activityLog.Info("ActivityConsumer", envelope.Type, map[string]interface{}{
		"occurred_at": envelope.OccurredAt,
		"data":        envelope.Data,
	})
	msg.Ack()
}
