package controller

import (
	"ai-gateway-be/internal/dto"
	"ai-gateway-be/internal/pkg/serverutils"
	"ai-gateway-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const HeaderSessionId = "X-Session-Id"

type IChatController interface {
	RegisterRoutes(r *serverutils.Router)
	Chat(ctx *fiber.Ctx) error
	GetMemory(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r *serverutils.Router) {
	r.Post("/chat", c.Chat)
	r.Get("/memory/:id", c.GetMemory)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	if !req.DecodeMessages() {
		return fiber.NewError(fiber.StatusBadRequest, "messages must be an array")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if c.service.ShouldStream(&req) {
		return c.stream(ctx, &req)
	}

	res, err := c.service.Chat(ctx.UserContext(), &req)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(res)
}

// stream opens upstream before committing to a 200, so an open failure is
// still a normal error response.
func (c *chatController) stream(ctx *fiber.Ctx, req *dto.ChatRequest) error {
	stream, err := c.service.ChatStream(ctx.UserContext(), req)
	if err != nil {
		return mapServiceError(err)
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(HeaderSessionId, stream.SessionId)
	ctx.Context().SetBodyStreamWriter(stream.Drain)
	return nil
}

func (c *chatController) GetMemory(ctx *fiber.Ctx) error {
	res, err := c.service.SessionMemory(ctx.UserContext(), serverutils.Param(ctx, "id"))
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(res)
}
