package service

import (
	"context"
	"time"

	"ai-gateway-be/internal/dto"
	"ai-gateway-be/internal/repository/contract"
	"ai-gateway-be/internal/repository/unitofwork"
)

type IHealthService interface {
	Check(ctx context.Context) dto.HealthResponse
}

type healthService struct {
	uowFactory unitofwork.RepositoryFactory
	kv         contract.KeyValueStore
	timeout    time.Duration
}

func NewHealthService(uowFactory unitofwork.RepositoryFactory, kv contract.KeyValueStore) IHealthService {
	return &healthService{
		uowFactory: uowFactory,
		kv:         kv,
		timeout:    3 * time.Second,
	}
}

func (s *healthService) Check(ctx context.Context) dto.HealthResponse {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res := dto.HealthResponse{Status: "ok", Database: "ok", KV: "ok"}
	if s.uowFactory.Ping(ctx) != nil {
		res.Status = "degraded"
		res.Database = "unavailable"
	}
	if s.kv.Ping(ctx) != nil {
		res.Status = "degraded"
		res.KV = "unavailable"
	}
	return res
}
