package handlers

import (
	"github.com/gofiber/fiber/v2"

	"medrating/internal/dto"
	"medrating/internal/services"
)

type SupportHandler struct {
	supportService *services.SupportService
}

func NewSupportHandler(supportService *services.SupportService) *SupportHandler {
	return &SupportHandler{supportService: supportService}
}

func (h *SupportHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSupportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Некорректное тело запроса")
	}

	ticket, err := h.supportService.Create(req)
	if err != nil {
		return fail(c, err, "Пользователь не найден", "")
	}
	return c.Status(fiber.StatusCreated).JSON(ticket)
}

func (h *SupportHandler) List(c *fiber.Ctx) error {
	userID, err := optionalUUID(c.Query("user"))
	if err != nil {
		return badRequest(c, "Некорректный идентификатор пользователя")
	}

	tickets, err := h.supportService.List(userID)
	if err != nil {
		return fail(c, err, "", "")
	}
	return c.JSON(tickets)
}
