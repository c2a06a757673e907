package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dentalcloud/dentalcloud-api/internal/application/billing"
	"github.com/dentalcloud/dentalcloud-api/internal/application/dashboard"
	"github.com/dentalcloud/dentalcloud-api/internal/application/dto"
)

// InvoiceHandler requêtes HTTP des factures (protégé).
type InvoiceHandler struct {
	uc   *billing.InvoiceUseCase
	docs *billing.DocumentUseCase
	dash *dashboard.UseCase
}

// NewInvoiceHandler construit le handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, docs *billing.DocumentUseCase, dash *dashboard.UseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, docs: docs, dash: dash}
}

// Create crée une facture depuis une proforma acceptée ou directement
// depuis des bons de livraison.
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	if in.ProformaID == "" && len(in.DeliveryNoteIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "proforma_id ou delivery_note_ids est requis"})
	}
	out, err := h.uc.Create(c.Context(), GetLabID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	h.dash.Invalidate(c.Context(), GetLabID(c))
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID renvoie une facture.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetLabID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "facture non trouvée"})
	}
	return c.JSON(out)
}

// List liste les factures du laboratoire.
// GET /api/invoices
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
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

// UpdateStatus change le statut d'une facture (draft, sent, paid). Pas de
// suppression : une facture émise s'annule par avoir.
// PATCH /api/invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	if err := h.uc.UpdateStatus(GetLabID(c), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	h.dash.Invalidate(c.Context(), GetLabID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF renvoie la facture en PDF.
// GET /api/invoices/:id/pdf
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	pdf, filename, err := h.docs.InvoicePDF(GetLabID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// Send envoie la facture en PDF par email.
// POST /api/invoices/:id/send
func (h *InvoiceHandler) Send(c *fiber.Ctx) error {
	var in dto.SendDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.docs.SendInvoice(GetLabID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
