package controller

import (
	"ai-gateway-be/internal/dto"
	"ai-gateway-be/internal/pkg/serverutils"
	"ai-gateway-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ILogController interface {
	RegisterRoutes(r *serverutils.Router)
	LogBuild(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type logController struct {
	service service.ILogService
}

func NewLogController(service service.ILogService) ILogController {
	return &logController{service: service}
}

func (c *logController) RegisterRoutes(r *serverutils.Router) {
	r.Post("/log-build", c.LogBuild)
	r.Get("/logs", c.List)
}

func (c *logController) LogBuild(ctx *fiber.Ctx) error {
	var req dto.LogBuildRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.RecordBuild(ctx.UserContext(), &req)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(res)
}

// List accepts an optional ?kind= filter.
func (c *logController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.UserContext(), ctx.Query("kind"))
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(res)
}
