package implementation

import (
	"context"

	"ai-gateway-be/internal/entity"
	"ai-gateway-be/internal/mapper"
	"ai-gateway-be/internal/model"
	"ai-gateway-be/internal/repository/contract"
	"ai-gateway-be/internal/repository/specification"

	"gorm.io/gorm"
)

type RequestLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RequestLogMapper
}

func NewRequestLogRepository(db *gorm.DB) contract.RequestLogRepository {
	return &RequestLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewRequestLogMapper(),
	}
}

func (r *RequestLogRepositoryImpl) Create(ctx context.Context, record *entity.LogRecord) error {
	m := r.mapper.ToModel(record)
	// Seq is assigned by the database.
	if err := r.db.WithContext(ctx).Omit("Seq").Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *RequestLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LogRecord, error) {
	var rows []*model.RequestLog
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(rows), nil
}
