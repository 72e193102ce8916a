package controller

import (
	"time"

	"promptlycoach-be/internal/coordinator"
	"promptlycoach-be/internal/dto"
	"promptlycoach-be/internal/entity"
	"promptlycoach-be/internal/pkg/serverutils"
	"promptlycoach-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	EndSession(ctx *fiber.Ctx) error
	ListMessages(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
}

type chatController struct {
	store service.IChatStore
}

func NewChatController(store service.IChatStore) IChatController {
	return &chatController{store: store}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/api/chat/sessions")
	h.Post("", c.CreateSession)
	h.Patch("/:id/end", c.EndSession)
	h.Get("/:id/messages", c.ListMessages)
	h.Post("/:id/messages", c.SendMessage)
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	var req dto.CreateChatSessionRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return serverutils.NewBadRequestError("Invalid request body")
		}
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	token := req.SessionToken
	if token == "" {
		token = coordinator.NewSessionToken(time.Now())
	}

	session, err := c.store.CreateSession(ctx.UserContext(), token, ctx.Get(fiber.HeaderUserAgent), ctx.IP())
	if err != nil {
		return toAppError(err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Chat session created", dto.ChatSessionResponse{Session: session}))
}

func (c *chatController) EndSession(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.store.EndSession(ctx.UserContext(), id); err != nil {
		return toAppError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Chat session ended", nil))
}

func (c *chatController) ListMessages(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	if _, err := c.store.GetSession(ctx.UserContext(), id); err != nil {
		return toAppError(err)
	}

	messages, err := c.store.ListMessages(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	if messages == nil {
		messages = []*entity.ChatMessage{}
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat messages", dto.ChatMessagesResponse{Messages: messages}))
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.SendChatMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	senderType := entity.SenderTypeVisitor
	if req.SenderType != "" {
		senderType = entity.SenderType(req.SenderType)
	}

	msg, err := c.store.InsertMessage(ctx.UserContext(), id, req.Message, senderType, req.SenderName)
	if err != nil {
		return toAppError(err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Chat message sent", msg))
}

func sessionIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, serverutils.NewBadRequestError("Invalid session id")
	}
	return id, nil
}
