package controller

import (
	"ai-gateway-be/internal/dto"
	"ai-gateway-be/internal/pkg/serverutils"
	"ai-gateway-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IEmbeddingController interface {
	RegisterRoutes(r *serverutils.Router)
	Create(ctx *fiber.Ctx) error
}

type embeddingController struct {
	service service.IEmbeddingService
}

func NewEmbeddingController(service service.IEmbeddingService) IEmbeddingController {
	return &embeddingController{service: service}
}

func (c *embeddingController) RegisterRoutes(r *serverutils.Router) {
	r.Post("/embeddings", c.Create)
}

func (c *embeddingController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateEmbeddingRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), &req)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(res)
}
