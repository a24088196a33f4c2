package controller

import (
	"ai-gateway-be/internal/pkg/logger"
	"ai-gateway-be/internal/pkg/serverutils"
	internalWS "ai-gateway-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type ILiveLogController interface {
	RegisterRoutes(r *serverutils.Router)
	Live(ctx *fiber.Ctx) error
}

type liveLogController struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewLiveLogController(hub *internalWS.Hub, log logger.ILogger) ILiveLogController {
	return &liveLogController{hub: hub, logger: log}
}

func (c *liveLogController) RegisterRoutes(r *serverutils.Router) {
	r.Get("/logs/live", c.Live)
}

// Live upgrades to a websocket that receives one text frame per persisted
// log record.
func (c *liveLogController) Live(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		c.logger.Info("LiveLogController", "Starting live log session", map[string]interface{}{"remote": conn.RemoteAddr().String()})
		internalWS.ServeWs(c.hub, conn)
		c.logger.Info("LiveLogController", "Live log session ended", nil)
	})(ctx)
}
