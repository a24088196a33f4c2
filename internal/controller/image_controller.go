package controller

import (
	"strings"

	"ai-gateway-be/internal/dto"
	"ai-gateway-be/internal/pkg/serverutils"
	"ai-gateway-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IImageController interface {
	RegisterRoutes(r *serverutils.Router)
	TextToImage(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type imageController struct {
	service service.IImageService
}

func NewImageController(service service.IImageService) IImageController {
	return &imageController{service: service}
}

func (c *imageController) RegisterRoutes(r *serverutils.Router) {
	r.Post("/text-to-image", c.TextToImage)
	r.Get("/images", c.List)
	r.Get("/images/:id", c.Show)
}

func (c *imageController) TextToImage(ctx *fiber.Ctx) error {
	var req dto.TextToImageRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	req.Prompt = strings.TrimSpace(req.Prompt)

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Generate(ctx.UserContext(), &req)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(res)
}

func (c *imageController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.UserContext())
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(res)
}

func (c *imageController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.GetBytes(ctx.UserContext(), serverutils.Param(ctx, "id"))
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(res)
}
