package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dentalcloud/dentalcloud-api/internal/application/billing"
	"github.com/dentalcloud/dentalcloud-api/internal/application/dashboard"
	"github.com/dentalcloud/dentalcloud-api/internal/application/dto"
)

// ProformaHandler requêtes HTTP des proformas (protégé).
type ProformaHandler struct {
	uc   *billing.ProformaUseCase
	docs *billing.DocumentUseCase
	dash *dashboard.UseCase
}

// NewProformaHandler construit le handler.
func NewProformaHandler(uc *billing.ProformaUseCase, docs *billing.DocumentUseCase, dash *dashboard.UseCase) *ProformaHandler {
	return &ProformaHandler{uc: uc, docs: docs, dash: dash}
}

// Create regroupe des bons non facturés d'un même dentiste dans une
// proforma.
// POST /api/proformas
func (h *ProformaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProformaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	if in.DentistID == "" || len(in.DeliveryNoteIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dentist_id et delivery_note_ids sont requis"})
	}
	out, err := h.uc.Create(c.Context(), GetLabID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	h.dash.Invalidate(c.Context(), GetLabID(c))
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID renvoie une proforma.
// GET /api/proformas/:id
func (h *ProformaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetLabID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proforma non trouvée"})
	}
	return c.JSON(out)
}

// List liste les proformas du laboratoire.
// GET /api/proformas
func (h *ProformaHandler) List(c *fiber.Ctx) error {
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

// UpdateStatus change le statut d'une proforma. Une proforma facturée ne
// change plus.
// PATCH /api/proformas/:id/status
func (h *ProformaHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateProformaStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	if err := h.uc.UpdateStatus(GetLabID(c), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	h.dash.Invalidate(c.Context(), GetLabID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete supprime une proforma non facturée et détache ses bons.
// DELETE /api/proformas/:id
func (h *ProformaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetLabID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	h.dash.Invalidate(c.Context(), GetLabID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF renvoie la proforma en PDF.
// GET /api/proformas/:id/pdf
func (h *ProformaHandler) PDF(c *fiber.Ctx) error {
	pdf, filename, err := h.docs.ProformaPDF(GetLabID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// Send envoie la proforma en PDF par email.
// POST /api/proformas/:id/send
func (h *ProformaHandler) Send(c *fiber.Ctx) error {
	var in dto.SendDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.docs.SendProforma(GetLabID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
