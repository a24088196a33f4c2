package implementation

import (
	"context"
	"errors"

	"ai-gateway-be/internal/entity"
	"ai-gateway-be/internal/mapper"
	"ai-gateway-be/internal/model"
	"ai-gateway-be/internal/repository/contract"
	"ai-gateway-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ImageArtifactRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ImageArtifactMapper
}

func NewImageArtifactRepository(db *gorm.DB) contract.ImageArtifactRepository {
	return &ImageArtifactRepositoryImpl{
		db:     db,
		mapper: mapper.NewImageArtifactMapper(),
	}
}

func (r *ImageArtifactRepositoryImpl) Create(ctx context.Context, artifact *entity.ImageArtifact) error {
	m := r.mapper.ToModel(artifact)
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *ImageArtifactRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ImageArtifact, error) {
	var m model.ImageArtifact
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ImageArtifactRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ImageArtifact, error) {
	var rows []*model.ImageArtifact
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(rows), nil
}
