package controller

import (
	"promptlycoach-be/internal/dto"
	"promptlycoach-be/internal/pkg/serverutils"
	"promptlycoach-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ILeadController interface {
	RegisterRoutes(r fiber.Router)
	SubmitContact(ctx *fiber.Ctx) error
	ScheduleConsultation(ctx *fiber.Ctx) error
	SubmitServiceRequest(ctx *fiber.Ctx) error
	InitiateCall(ctx *fiber.Ctx) error
}

type leadController struct {
	service   service.ILeadService
	jwtSecret string
}

func NewLeadController(service service.ILeadService, jwtSecret string) ILeadController {
	return &leadController{service: service, jwtSecret: jwtSecret}
}

func (c *leadController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/api", serverutils.NewJwtMiddleware(c.jwtSecret, true))
	h.Post("/contacts", c.SubmitContact)
	h.Post("/consultations", c.ScheduleConsultation)
	h.Post("/service-requests", c.SubmitServiceRequest)
	h.Post("/phone-calls", c.InitiateCall)
}

func (c *leadController) SubmitContact(ctx *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SubmitContact(ctx.UserContext(), serverutils.VisitorFromLocals(ctx), &req)
	if err != nil {
		return toAppError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse(res.Title, res))
}

func (c *leadController) ScheduleConsultation(ctx *fiber.Ctx) error {
	var req dto.ConsultationRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return serverutils.NewBadRequestError("Invalid request body")
		}
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ScheduleConsultation(ctx.UserContext(), serverutils.VisitorFromLocals(ctx), &req)
	if err != nil {
		return toAppError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse(res.Title, res))
}

func (c *leadController) SubmitServiceRequest(ctx *fiber.Ctx) error {
	var req dto.ServiceRequestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SubmitServiceRequest(ctx.UserContext(), serverutils.VisitorFromLocals(ctx), &req)
	if err != nil {
		return toAppError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse(res.Title, res))
}

func (c *leadController) InitiateCall(ctx *fiber.Ctx) error {
	var req dto.PhoneCallRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.InitiateCall(ctx.UserContext(), &req)
	if err != nil {
		return toAppError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse(res.Title, res))
}
