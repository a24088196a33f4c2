package contract

import (
	"context"

	"ai-gateway-be/internal/entity"
	"ai-gateway-be/internal/repository/specification"
)

type RequestLogRepository interface {
	Create(ctx context.Context, record *entity.LogRecord) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LogRecord, error)
}
