package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"medrating/internal/dto"
	"medrating/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Некорректное тело запроса")
	}

	user, err := h.userService.Create(req)
	if err != nil {
		return fail(c, err, "Пользователь не найден", "Пользователь с таким telegram_id уже существует")
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Некорректный идентификатор пользователя")
	}

	user, err := h.userService.GetByID(id)
	if err != nil {
		return fail(c, err, "Пользователь не найден", "")
	}
	return c.JSON(user)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Некорректный идентификатор пользователя")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Некорректное тело запроса")
	}

	user, err := h.userService.Update(id, req)
	if err != nil {
		return fail(c, err, "Пользователь не найден", "")
	}
	return c.JSON(user)
}

func (h *UserHandler) GetByTelegramID(c *fiber.Ctx) error {
	telegramID, err := strconv.ParseInt(c.Params("telegramID"), 10, 64)
	if err != nil {
		return badRequest(c, "Некорректный telegram_id")
	}

	user, err := h.userService.GetByTelegramID(telegramID)
	if err != nil {
		return fail(c, err, "Пользователь не найден", "")
	}
	return c.JSON(user)
}

func (h *UserHandler) ListDoctors(c *fiber.Ctx) error {
	filter := services.DoctorFilter{Search: c.Query("search")}

	var parseErr error
	filter.CategoryID, parseErr = optionalUUID(c.Query("category"))
	if parseErr != nil {
		return badRequest(c, "Некорректный идентификатор категории")
	}
	filter.GeoPositionID, parseErr = optionalUUID(c.Query("geo_position"))
	if parseErr != nil {
		return badRequest(c, "Некорректный идентификатор геопозиции")
	}
	filter.ClinicID, parseErr = optionalUUID(c.Query("clinic"))
	if parseErr != nil {
		return badRequest(c, "Некорректный идентификатор клиники")
	}

	doctors, err := h.userService.ListDoctors(filter)
	if err != nil {
		return fail(c, err, "", "")
	}
	return c.JSON(doctors)
}

func (h *UserHandler) ListDoctorsRanked(c *fiber.Ctx) error {
	categoryID, err := optionalUUID(c.Query("category"))
	if err != nil {
		return badRequest(c, "Некорректный идентификатор категории")
	}

	doctors, err := h.userService.ListDoctorsRanked(categoryID)
	if err != nil {
		return fail(c, err, "", "")
	}
	return c.JSON(doctors)
}

func (h *UserHandler) ListDoctorsByCategory(c *fiber.Ctx) error {
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Некорректный идентификатор категории")
	}

	doctors, err := h.userService.ListDoctors(services.DoctorFilter{CategoryID: &categoryID})
	if err != nil {
		return fail(c, err, "", "")
	}
	return c.JSON(doctors)
}

func optionalUUID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
