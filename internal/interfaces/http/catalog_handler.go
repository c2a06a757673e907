package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dentalcloud/dentalcloud-api/internal/application/catalog"
	"github.com/dentalcloud/dentalcloud-api/internal/application/dto"
)

// CatalogHandler requêtes HTTP des articles du catalogue (protégé).
type CatalogHandler struct {
	uc *catalog.ItemUseCase
}

// NewCatalogHandler construit le handler.
func NewCatalogHandler(uc *catalog.ItemUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// Create crée un article avec sa nomenclature de ressources.
// POST /api/catalog-items
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCatalogItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name est requis"})
	}
	out, err := h.uc.Create(GetLabID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID renvoie un article avec sa nomenclature.
// GET /api/catalog-items/:id
func (h *CatalogHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetLabID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "article non trouvé"})
	}
	return c.JSON(out)
}

// List liste les articles du laboratoire.
// GET /api/catalog-items?active_only=true
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paramètres invalides"})
	}
	out, err := h.uc.List(GetLabID(c), c.QueryBool("active_only", false), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update met à jour un article. Le stock ne se modifie pas par cette route :
// passer par les ajustements pour garder le grand livre cohérent.
// PUT /api/catalog-items/:id
func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCatalogItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.uc.Update(GetLabID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deactivate désactive un article sans le supprimer.
// DELETE /api/catalog-items/:id
func (h *CatalogHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(GetLabID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
