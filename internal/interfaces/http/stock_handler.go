package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dentalcloud/dentalcloud-api/internal/application/dto"
	"github.com/dentalcloud/dentalcloud-api/internal/application/stock"
)

// StockHandler ajustements manuels et consultation du grand livre de stock
// (protégé).
type StockHandler struct {
	ledger  *stock.Ledger
	history *stock.History
}

// NewStockHandler construit le handler.
func NewStockHandler(ledger *stock.Ledger, history *stock.History) *StockHandler {
	return &StockHandler{ledger: ledger, history: history}
}

// AdjustItem ajuste le stock propre d'un article (quantité signée).
// POST /api/catalog-items/:id/stock-adjustments
func (h *StockHandler) AdjustItem(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	if in.Quantity.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity ne peut pas être zéro"})
	}
	err := h.ledger.Adjust(c.Context(), GetLabID(c), GetUserID(c), c.Params("id"), in.Quantity, in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ResourceMovement enregistre une entrée ou une sortie directe sur une
// ressource ou une de ses variantes.
// POST /api/resources/:id/movements
func (h *StockHandler) ResourceMovement(c *fiber.Ctx) error {
	var in dto.ResourceMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	if in.Type != "in" && in.Type != "out" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type doit être in ou out"})
	}
	if !in.Quantity.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity doit être strictement positive"})
	}
	err := h.ledger.RegisterResourceMovement(c.Context(), GetLabID(c), GetUserID(c), stock.ResourceMovementInput{
		ResourceID: c.Params("id"),
		VariantID:  in.VariantID,
		Type:       in.Type,
		Quantity:   in.Quantity,
		Notes:      in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ItemMovements historique des écritures d'un article.
// GET /api/catalog-items/:id/movements
func (h *StockHandler) ItemMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paramètres invalides"})
	}
	out, err := h.history.CatalogItemMovements(GetLabID(c), c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ResourceMovements historique des écritures d'une ressource, variantes
// comprises.
// GET /api/resources/:id/movements
func (h *StockHandler) ResourceMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paramètres invalides"})
	}
	out, err := h.history.ResourceMovements(GetLabID(c), c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
