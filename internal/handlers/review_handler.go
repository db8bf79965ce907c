package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"medrating/internal/dto"
	"medrating/internal/services"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Некорректное тело запроса")
	}

	review, err := h.reviewService.Create(req)
	if err != nil {
		return fail(c, err, "Пользователь не найден", "Вы уже оставляли отзыв этому врачу")
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

func (h *ReviewHandler) List(c *fiber.Ctx) error {
	filter := services.ReviewFilter{}

	var parseErr error
	filter.DoctorID, parseErr = optionalUUID(c.Query("doctor"))
	if parseErr != nil {
		return badRequest(c, "Некорректный идентификатор врача")
	}
	filter.AuthorID, parseErr = optionalUUID(c.Query("user"))
	if parseErr != nil {
		return badRequest(c, "Некорректный идентификатор пользователя")
	}

	reviews, err := h.reviewService.List(filter)
	if err != nil {
		return fail(c, err, "", "")
	}
	return c.JSON(reviews)
}

func (h *ReviewHandler) ListByDoctor(c *fiber.Ctx) error {
	doctorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Некорректный идентификатор врача")
	}

	reviews, err := h.reviewService.ListByDoctor(doctorID)
	if err != nil {
		return fail(c, err, "", "")
	}
	return c.JSON(reviews)
}

func (h *ReviewHandler) ListByAuthor(c *fiber.Ctx) error {
	authorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Некорректный идентификатор пользователя")
	}

	reviews, err := h.reviewService.ListByAuthor(authorID)
	if err != nil {
		return fail(c, err, "", "")
	}
	return c.JSON(reviews)
}
