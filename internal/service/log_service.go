package service

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-gateway-be/internal/config"
	"ai-gateway-be/internal/dto"
	"ai-gateway-be/internal/entity"
	"ai-gateway-be/internal/pkg/logger"
	"ai-gateway-be/internal/repository/specification"
	"ai-gateway-be/internal/repository/unitofwork"
	"ai-gateway-be/pkg/events"
)

type ILogService interface {
	// RecordBuild inserts synchronously; the row is the operation's result.
	RecordBuild(ctx context.Context, req *dto.LogBuildRequest) (*dto.LogBuildResponse, error)
	List(ctx context.Context, kind string) ([]*dto.LogRecordResponse, error)
}

type logService struct {
	uowFactory unitofwork.RepositoryFactory
	sinks      eventSinks
	cfg        config.GatewayConfig
}

func NewLogService(
	uowFactory unitofwork.RepositoryFactory,
	cfg config.GatewayConfig,
	logger logger.ILogger,
	sinks ...events.Publisher,
) ILogService {
	return &logService{
		uowFactory: uowFactory,
		sinks:      newEventSinks(logger, sinks...),
		cfg:        cfg,
	}
}

func (s *logService) RecordBuild(ctx context.Context, req *dto.LogBuildRequest) (*dto.LogBuildResponse, error) {
	summary := map[string]interface{}{
		"source":   req.Source,
		"log_text": req.LogText,
	}
	if len(req.Timestamp) > 0 {
		summary["timestamp"] = json.RawMessage(req.Timestamp)
	}

	record, err := newLogRecord(entity.LogKindBuild, summary, map[string]interface{}{"accepted": true})
	if err != nil {
		return nil, fmt.Errorf("encode build log: %w", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.RequestLogRepository().Create(ctx, record); err != nil {
		return nil, fmt.Errorf("store build log: %w", err)
	}

	s.sinks.publish(ctx, record)

	return &dto.LogBuildResponse{Success: true, Id: record.Id}, nil
}

func (s *logService) List(ctx context.Context, kind string) ([]*dto.LogRecordResponse, error) {
	specs := specification.Newest("seq", s.cfg.ListLimit)
	if kind != "" {
		if !entity.LogKind(kind).Valid() {
			return nil, ErrInvalidLogKind
		}
		specs = append(specs, specification.ByKind{Kind: kind})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	records, err := uow.RequestLogRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}

	res := make([]*dto.LogRecordResponse, 0, len(records))
	for _, r := range records {
		res = append(res, &dto.LogRecordResponse{
			Id:              r.Id,
			Seq:             r.Seq,
			Kind:            string(r.Kind),
			Timestamp:       r.Timestamp,
			RequestSummary:  r.RequestSummary,
			ResponseSummary: r.ResponseSummary,
		})
	}
	return res, nil
}
