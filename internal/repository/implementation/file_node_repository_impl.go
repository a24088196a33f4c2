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
	"gorm.io/gorm/clause"
)

type FileNodeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FileNodeMapper
}

func NewFileNodeRepository(db *gorm.DB) contract.FileNodeRepository {
	return &FileNodeRepositoryImpl{
		db:     db,
		mapper: mapper.NewFileNodeMapper(),
	}
}

func (r *FileNodeRepositoryImpl) Create(ctx context.Context, node *entity.FileNode) error {
	m := r.mapper.ToModel(node)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "path"}}, DoNothing: true}).
		Create(m).Error
}

func (r *FileNodeRepositoryImpl) Update(ctx context.Context, node *entity.FileNode) error {
	return r.db.WithContext(ctx).
		Model(&model.FileNode{}).
		Where("id = ?", node.Id).
		Updates(map[string]interface{}{
			"name":       node.Name,
			"type":       node.Type,
			"updated_at": node.UpdatedAt,
		}).Error
}

func (r *FileNodeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FileNode, error) {
	var m model.FileNode
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FileNodeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FileNode, error) {
	var rows []*model.FileNode
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(rows), nil
}
