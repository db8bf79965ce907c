package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"medrating/internal/services"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.catalogService.ListCategories()
	if err != nil {
		return fail(c, err, "", "")
	}
	return c.JSON(categories)
}

func (h *CatalogHandler) ListGeoPositions(c *fiber.Ctx) error {
	positions, err := h.catalogService.ListGeoPositions()
	if err != nil {
		return fail(c, err, "", "")
	}
	return c.JSON(positions)
}

func (h *CatalogHandler) ListClinics(c *fiber.Ctx) error {
	clinics, err := h.catalogService.ListClinics()
	if err != nil {
		return fail(c, err, "", "")
	}
	return c.JSON(clinics)
}

func (h *CatalogHandler) ListClinicsRanked(c *fiber.Ctx) error {
	clinics, err := h.catalogService.ListClinicsRanked()
	if err != nil {
		return fail(c, err, "", "")
	}
	return c.JSON(clinics)
}

func (h *CatalogHandler) GetClinic(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Некорректный идентификатор клиники")
	}

	clinic, err := h.catalogService.GetClinic(id)
	if err != nil {
		return fail(c, err, "Клиника не найдена", "")
	}
	return c.JSON(clinic)
}
