package controller

import (
	"promptlycoach-be/internal/dto"
	"promptlycoach-be/internal/pkg/logger"
	"promptlycoach-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const relayAllowHeaders = "authorization, x-client-info, apikey, content-type"

type IRelayController interface {
	RegisterRoutes(r fiber.Router)
	Preflight(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
}

type relayController struct {
	service service.IRelayService
	logger  logger.ILogger
}

func NewRelayController(service service.IRelayService, log logger.ILogger) IRelayController {
	return &relayController{service: service, logger: log}
}

// RegisterRoutes mounts the relay at the path browser widgets already call. It answers
// with its own {response, success} body instead of BaseResponse.
func (c *relayController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/functions/v1", relayCors)
	h.Options("/ai-chat", c.Preflight)
	h.Post("/ai-chat", c.Chat)
}

func relayCors(ctx *fiber.Ctx) error {
	ctx.Set(fiber.HeaderAccessControlAllowOrigin, "*")
	ctx.Set(fiber.HeaderAccessControlAllowHeaders, relayAllowHeaders)
	return ctx.Next()
}

func (c *relayController) Preflight(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).Send(nil)
}

func (c *relayController) Chat(ctx *fiber.Ctx) error {
	var req dto.RelayRequest
	if err := ctx.BodyParser(&req); err != nil {
		return c.fail(ctx, err)
	}

	res, err := c.service.Respond(ctx.UserContext(), &req)
	if err != nil {
		return c.fail(ctx, err)
	}

	return ctx.JSON(res)
}

// Every failure is a 500 with the error text; widgets only look at success.
func (c *relayController) fail(ctx *fiber.Ctx, err error) error {
	c.logger.Error("RelayController", "AI chat request failed", map[string]interface{}{
		"error": err,
	})
	return ctx.Status(fiber.StatusInternalServerError).JSON(dto.RelayResponse{
		Success: false,
		Error:   err.Error(),
	})
}
