package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"taskfeed-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const eventTypeMetadata = "event_type"

// EventEnvelope is the JSON body of every in-process event message.
type EventEnvelope struct {
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurred_at"`
	Data       map[string]interface{} `json:"data"`
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

// NewPublisherService publishes domain events on a watermill topic
// (the gochannel pub/sub when EVENT_BUS=memory).
func NewPublisherService(topicName string, publisher message.Publisher) events.Publisher {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (p *publisherService) Publish(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(EventEnvelope{
		Type:       event.EventType(),
		OccurredAt: event.Timestamp(),
		Data:       event.Payload(),
	})
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.EventType(), err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(eventTypeMetadata, event.EventType())
	msg.SetContext(ctx)

	return p.publisher.Publish(p.topicName, msg)
}
