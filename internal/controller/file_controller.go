package controller

import (
	"ai-gateway-be/internal/dto"
	"ai-gateway-be/internal/pkg/serverutils"
	"ai-gateway-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFileController interface {
	RegisterRoutes(r *serverutils.Router)
	Write(ctx *fiber.Ctx) error
	Read(ctx *fiber.Ctx) error
	Tree(ctx *fiber.Ctx) error
}

type fileController struct {
	service service.IFileService
}

func NewFileController(service service.IFileService) IFileController {
	return &fileController{service: service}
}

func (c *fileController) RegisterRoutes(r *serverutils.Router) {
	r.Post("/project-file", c.Write)
	r.Get("/project-file", c.Read)
	r.Get("/file-tree", c.Tree)
}

func (c *fileController) Write(ctx *fiber.Ctx) error {
	var req dto.WriteFileRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	content, ok := req.ContentString()
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "content must be a string")
	}

	res, err := c.service.Write(ctx.UserContext(), &req, content)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(res)
}

func (c *fileController) Read(ctx *fiber.Ctx) error {
	filePath := ctx.Query("path")
	if filePath == "" {
		return fiber.NewError(fiber.StatusBadRequest, "path is required")
	}

	res, err := c.service.Read(ctx.UserContext(), filePath)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(res)
}

func (c *fileController) Tree(ctx *fiber.Ctx) error {
	res, err := c.service.Tree(ctx.UserContext())
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(res)
}
