package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dentalcloud/dentalcloud-api/internal/application/dentist"
	"github.com/dentalcloud/dentalcloud-api/internal/application/dto"
)

// DentistHandler requêtes HTTP des cabinets dentaires (protégé).
type DentistHandler struct {
	uc *dentist.UseCase
}

// NewDentistHandler construit le handler.
func NewDentistHandler(uc *dentist.UseCase) *DentistHandler {
	return &DentistHandler{uc: uc}
}

// Create crée un cabinet.
// POST /api/dentists
func (h *DentistHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDentistRequest
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

// GetByID renvoie un cabinet.
// GET /api/dentists/:id
func (h *DentistHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetLabID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cabinet non trouvé"})
	}
	return c.JSON(out)
}

// List liste les cabinets du laboratoire.
// GET /api/dentists
func (h *DentistHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paramètres invalides"})
	}
	out, err := h.uc.List(GetLabID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update met à jour un cabinet (champs non nil uniquement).
// PUT /api/dentists/:id
func (h *DentistHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDentistRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.uc.Update(GetLabID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deactivate désactive un cabinet sans le supprimer, son historique de
// facturation restant référencé.
// DELETE /api/dentists/:id
func (h *DentistHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(GetLabID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
