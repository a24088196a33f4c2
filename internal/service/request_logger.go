package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-gateway-be/internal/entity"
	"ai-gateway-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// IRequestLogger records one LogRecord per completed operation. It never
// reports failure to the caller; problems go to the diagnostics logger.
type IRequestLogger interface {
	Record(ctx context.Context, kind entity.LogKind, request, response interface{})
}

type requestLogger struct {
	publisher message.Publisher
	topic     string
	logger    logger.ILogger
}

func NewRequestLogger(publisher message.Publisher, topic string, logger logger.ILogger) IRequestLogger {
	return &requestLogger{
		publisher: publisher,
		topic:     topic,
		logger:    logger,
	}
}

func (l *requestLogger) Record(ctx context.Context, kind entity.LogKind, request, response interface{}) {
	record, err := newLogRecord(kind, request, response)
	if err != nil {
		l.logger.Error("RequestLogger", "Failed to encode log summaries", map[string]interface{}{
			"kind":  kind,
			"error": err.Error(),
		})
		return
	}

	payload, err := json.Marshal(record)
	if err != nil {
		l.logger.Error("RequestLogger", "Failed to encode log record", map[string]interface{}{
			"kind":  kind,
			"error": err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(context.WithoutCancel(ctx))

	if err := l.publisher.Publish(l.topic, msg); err != nil {
		l.logger.Error("RequestLogger", "Failed to publish log record", map[string]interface{}{
			"kind":  kind,
			"id":    record.Id.String(),
			"error": err.Error(),
		})
	}
}

func newLogRecord(kind entity.LogKind, request, response interface{}) (*entity.LogRecord, error) {
	req, err := summarize(request)
	if err != nil {
		return nil, err
	}
	res, err := summarize(response)
	if err != nil {
		return nil, err
	}
	return &entity.LogRecord{
		Id:              uuid.New(),
		Kind:            kind,
		Timestamp:       time.Now().UTC(),
		RequestSummary:  req,
		ResponseSummary: res,
	}, nil
}

func summarize(v interface{}) (string, error) {
	if s, ok := v.(string); ok {
		v = map[string]string{"text": s}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
