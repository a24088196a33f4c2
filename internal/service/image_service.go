package service

import (
	"context"
	"fmt"
	"time"

	"ai-gateway-be/internal/config"
	"ai-gateway-be/internal/constant"
	"ai-gateway-be/internal/dto"
	"ai-gateway-be/internal/entity"
	"ai-gateway-be/internal/pkg/logger"
	"ai-gateway-be/internal/repository/contract"
	"ai-gateway-be/internal/repository/specification"
	"ai-gateway-be/internal/repository/unitofwork"
	"ai-gateway-be/pkg/llm"
	"ai-gateway-be/pkg/normalizer"

	"github.com/google/uuid"
)

type IImageService interface {
	Generate(ctx context.Context, req *dto.TextToImageRequest) (*dto.ImageArtifactResponse, error)
	List(ctx context.Context) ([]*dto.ImageArtifactResponse, error)
	GetBytes(ctx context.Context, id string) (*dto.ImageBytesResponse, error)
}

type imageService struct {
	generator  llm.ImageGenerator
	normalizer *normalizer.ImageNormalizer
	kv         contract.KeyValueStore
	uowFactory unitofwork.RepositoryFactory
	reqLogger  IRequestLogger
	cfg        config.GatewayConfig
	logger     logger.ILogger
}

func NewImageService(
	generator llm.ImageGenerator,
	normalizer *normalizer.ImageNormalizer,
	kv contract.KeyValueStore,
	uowFactory unitofwork.RepositoryFactory,
	reqLogger IRequestLogger,
	cfg config.GatewayConfig,
	logger logger.ILogger,
) IImageService {
	return &imageService{
		generator:  generator,
		normalizer: normalizer,
		kv:         kv,
		uowFactory: uowFactory,
		reqLogger:  reqLogger,
		cfg:        cfg,
		logger:     logger,
	}
}

func (s *imageService) Generate(ctx context.Context, req *dto.TextToImageRequest) (*dto.ImageArtifactResponse, error) {
	size := req.Size
	if size == "" {
		size = s.cfg.DefaultImageSize
	}

	var opts []llm.Option
	if s.cfg.ImageModel != "" {
		opts = append(opts, llm.WithModel(s.cfg.ImageModel))
	}

	raw, err := s.generator.GenerateImage(ctx, req.Prompt, size, opts...)
	if err != nil {
		return nil, fmt.Errorf("generate image: %w", err)
	}

	result := s.normalizer.Normalize(ctx, raw)
	if result.FetchErr != nil {
		s.logger.Warn("ImageService", "Image URL could not be fetched", map[string]interface{}{
			"url":   result.URL,
			"error": result.FetchErr.Error(),
		})
	}

	artifact := &entity.ImageArtifact{
		Id:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Prompt:    req.Prompt,
		Size:      size,
		Model:     s.cfg.ImageModel,
		Source:    string(result.Source),
		SourceURL: result.URL,
		SessionId: req.SessionId,
	}

	// Bytes and metadata are both attempted; has_bytes reflects what landed.
	if result.HasBytes() {
		if err := s.kv.Put(ctx, constant.ImageKey(artifact.Id.String()), result.Base64); err != nil {
			s.logger.Warn("ImageService", "Failed to store image bytes", map[string]interface{}{
				"id":    artifact.Id.String(),
				"error": err.Error(),
			})
		} else {
			artifact.HasBytes = true
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ImageArtifactRepository().Create(ctx, artifact); err != nil {
		s.logger.Warn("ImageService", "Failed to store image metadata", map[string]interface{}{
			"id":    artifact.Id.String(),
			"error": err.Error(),
		})
	}

	res := toImageArtifactResponse(artifact)

	s.reqLogger.Record(ctx, entity.LogKindImage,
		map[string]interface{}{
			"prompt":     req.Prompt,
			"size":       size,
			"session_id": req.SessionId,
			"model":      s.cfg.ImageModel,
		},
		map[string]interface{}{
			"id":         artifact.Id.String(),
			"has_base64": artifact.HasBytes,
			"source":     artifact.Source,
		},
	)

	return res, nil
}

func (s *imageService) List(ctx context.Context) ([]*dto.ImageArtifactResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	artifacts, err := uow.ImageArtifactRepository().FindAll(ctx, specification.Newest("created_at", s.cfg.ListLimit)...)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	res := make([]*dto.ImageArtifactResponse, 0, len(artifacts))
	for _, a := range artifacts {
		res = append(res, toImageArtifactResponse(a))
	}
	return res, nil
}

func (s *imageService) GetBytes(ctx context.Context, id string) (*dto.ImageBytesResponse, error) {
	b64, found, err := s.kv.Get(ctx, constant.ImageKey(id))
	if err != nil {
		return nil, fmt.Errorf("read image bytes: %w", err)
	}
	if !found || b64 == "" {
		return nil, ErrImageNotFound
	}
	return &dto.ImageBytesResponse{Id: id, B64: b64}, nil
}

func toImageArtifactResponse(a *entity.ImageArtifact) *dto.ImageArtifactResponse {
	return &dto.ImageArtifactResponse{
		Id:        a.Id,
		CreatedAt: a.CreatedAt,
		Prompt:    a.Prompt,
		Size:      a.Size,
		AccessURL: constant.APIPrefix + "/images/" + a.Id.String(),
		HasBase64: a.HasBytes,
		Meta: dto.ImageMetaDTO{
			Model:     a.Model,
			Source:    a.Source,
			SourceURL: a.SourceURL,
			SessionId: a.SessionId,
		},
	}
}
