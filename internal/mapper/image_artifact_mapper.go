package mapper

import (
	"ai-gateway-be/internal/entity"
	"ai-gateway-be/internal/model"
)

type ImageArtifactMapper struct{}

func NewImageArtifactMapper() *ImageArtifactMapper {
	return &ImageArtifactMapper{}
}

func (m *ImageArtifactMapper) ToEntity(a *model.ImageArtifact) *entity.ImageArtifact {
	if a == nil {
		return nil
	}
	return &entity.ImageArtifact{
		Id:        a.Id,
		CreatedAt: a.CreatedAt,
		Prompt:    a.Prompt,
		Size:      a.Size,
		Model:     a.Model,
		Source:    a.Source,
		SourceURL: deref(a.SourceURL),
		SessionId: deref(a.SessionId),
		HasBytes:  a.HasBytes,
	}
}

func (m *ImageArtifactMapper) ToModel(a *entity.ImageArtifact) *model.ImageArtifact {
	if a == nil {
		return nil
	}
	return &model.ImageArtifact{
		Id:        a.Id,
		CreatedAt: a.CreatedAt,
		Prompt:    a.Prompt,
		Size:      a.Size,
		Model:     a.Model,
		Source:    a.Source,
		SourceURL: ptrOrNil(a.SourceURL),
		SessionId: ptrOrNil(a.SessionId),
		HasBytes:  a.HasBytes,
	}
}

func (m *ImageArtifactMapper) ToEntities(rows []*model.ImageArtifact) []*entity.ImageArtifact {
	out := make([]*entity.ImageArtifact, len(rows))
	for i, a := range rows {
		out[i] = m.ToEntity(a)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
