package mapper

import (
	"ai-gateway-be/internal/entity"
	"ai-gateway-be/internal/model"
)

type FileNodeMapper struct{}

func NewFileNodeMapper() *FileNodeMapper {
	return &FileNodeMapper{}
}

func (m *FileNodeMapper) ToEntity(n *model.FileNode) *entity.FileNode {
	if n == nil {
		return nil
	}
	return &entity.FileNode{
		Id:        n.Id,
		Path:      n.Path,
		Name:      n.Name,
		Type:      n.Type,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *FileNodeMapper) ToModel(n *entity.FileNode) *model.FileNode {
	if n == nil {
		return nil
	}
	return &model.FileNode{
		Id:        n.Id,
		Path:      n.Path,
		Name:      n.Name,
		Type:      n.Type,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *FileNodeMapper) ToEntities(rows []*model.FileNode) []*entity.FileNode {
	out := make([]*entity.FileNode, len(rows))
	for i, n := range rows {
		out[i] = m.ToEntity(n)
	}
	return out
}
