package service

import (
	"context"
	"encoding/json"

	"ai-gateway-be/internal/entity"
	"ai-gateway-be/internal/pkg/logger"
	"ai-gateway-be/internal/repository/unitofwork"
	"ai-gateway-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// ILogConsumer persists records published by the request logger.
type ILogConsumer interface {
	Consume(ctx context.Context) error
}

type logConsumer struct {
	subscriber message.Subscriber
	topic      string
	uowFactory unitofwork.RepositoryFactory
	sinks      eventSinks
	logger     logger.ILogger
}

func NewLogConsumer(
	subscriber message.Subscriber,
	topic string,
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
	sinks ...events.Publisher,
) ILogConsumer {
	return &logConsumer{
		subscriber: subscriber,
		topic:      topic,
		uowFactory: uowFactory,
		sinks:      newEventSinks(logger, sinks...),
		logger:     logger,
	}
}

func (c *logConsumer) Consume(ctx context.Context) error {
	messages, err := c.subscriber.Subscribe(ctx, c.topic)
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

// processMessage always acks: a lost log row is preferable to a redelivery loop.
func (c *logConsumer) processMessage(msg *message.Message) {
	defer msg.Ack()

	ctx := msg.Context()

	var record entity.LogRecord
	if err := json.Unmarshal(msg.Payload, &record); err != nil {
		c.logger.Error("LogConsumer", "Failed to decode log record", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.RequestLogRepository().Create(ctx, &record); err != nil {
		c.logger.Error("LogConsumer", "Failed to persist log record", map[string]interface{}{
			"id":    record.Id.String(),
			"kind":  record.Kind,
			"error": err.Error(),
		})
		return
	}

	c.sinks.publish(ctx, &record)
}

// eventSinks fans a persisted record out to the optional event publishers.
type eventSinks struct {
	publishers []events.Publisher
	logger     logger.ILogger
}

func newEventSinks(logger logger.ILogger, publishers ...events.Publisher) eventSinks {
	active := make([]events.Publisher, 0, len(publishers))
	for _, p := range publishers {
		if p != nil {
			active = append(active, p)
		}
	}
	return eventSinks{publishers: active, logger: logger}
}

func (s eventSinks) publish(ctx context.Context, record *entity.LogRecord) {
	if len(s.publishers) == 0 {
		return
	}
	event := events.NewLogRecorded(
		record.Id.String(),
		record.Seq,
		string(record.Kind),
		record.Timestamp,
		record.RequestSummary,
		record.ResponseSummary,
	)
	for _, p := range s.publishers {
		if err := p.Publish(ctx, event); err != nil {
			s.logger.Warn("LogConsumer", "Failed to publish log event", map[string]interface{}{
				"type":  event.EventType(),
				"error": err.Error(),
			})
		}
	}
}
