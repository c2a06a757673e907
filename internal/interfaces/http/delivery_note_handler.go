package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dentalcloud/dentalcloud-api/internal/application/billing"
	"github.com/dentalcloud/dentalcloud-api/internal/application/dashboard"
	"github.com/dentalcloud/dentalcloud-api/internal/application/dto"
)

// DeliveryNoteHandler requêtes HTTP des bons de livraison (protégé).
type DeliveryNoteHandler struct {
	uc   *billing.NoteUseCase
	docs *billing.DocumentUseCase
	dash *dashboard.UseCase
}

// NewDeliveryNoteHandler construit le handler.
func NewDeliveryNoteHandler(uc *billing.NoteUseCase, docs *billing.DocumentUseCase, dash *dashboard.UseCase) *DeliveryNoteHandler {
	return &DeliveryNoteHandler{uc: uc, docs: docs, dash: dash}
}

// Create crée un bon et déduit le stock dans la même transaction.
// POST /api/delivery-notes
func (h *DeliveryNoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDeliveryNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	if in.DentistID == "" || len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dentist_id et items sont requis"})
	}
	out, err := h.uc.Create(c.Context(), GetLabID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	h.dash.Invalidate(c.Context(), GetLabID(c))
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID renvoie un bon.
// GET /api/delivery-notes/:id
func (h *DeliveryNoteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetLabID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bon de livraison non trouvé"})
	}
	return c.JSON(out)
}

// List liste les bons selon les filtres (dentiste, étape, période, non
// facturés).
// GET /api/delivery-notes
func (h *DeliveryNoteHandler) List(c *fiber.Ctx) error {
	var in dto.DeliveryNoteFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paramètres invalides"})
	}
	out, err := h.uc.List(GetLabID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update met à jour les métadonnées d'un bon. Les lignes sont immuables :
// supprimer puis recréer le bon pour les changer.
// PUT /api/delivery-notes/:id
func (h *DeliveryNoteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDeliveryNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.uc.Update(GetLabID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete supprime un bon non facturé et restaure le stock dans la même
// transaction.
// DELETE /api/delivery-notes/:id
func (h *DeliveryNoteHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetLabID(c), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	h.dash.Invalidate(c.Context(), GetLabID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF renvoie le bon en PDF (avec certificat de conformité CE).
// GET /api/delivery-notes/:id/pdf
func (h *DeliveryNoteHandler) PDF(c *fiber.Ctx) error {
	pdf, filename, err := h.docs.DeliveryNotePDF(GetLabID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// Send envoie le bon en PDF par email. L'échec d'envoi est renvoyé dans le
// corps (success à false), pas en erreur HTTP.
// POST /api/delivery-notes/:id/send
func (h *DeliveryNoteHandler) Send(c *fiber.Ctx) error {
	var in dto.SendDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.docs.SendDeliveryNote(GetLabID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
