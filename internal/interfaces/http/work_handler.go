package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dentalcloud/dentalcloud-api/internal/application/dto"
	"github.com/dentalcloud/dentalcloud-api/internal/application/work"
)

// WorkHandler tableau Kanban de production (protégé).
type WorkHandler struct {
	uc *work.UseCase
}

// NewWorkHandler construit le handler.
func NewWorkHandler(uc *work.UseCase) *WorkHandler {
	return &WorkHandler{uc: uc}
}

// Stages renvoie les étapes de production dans l'ordre du flux.
// GET /api/work/stages
func (h *WorkHandler) Stages(c *fiber.Ctx) error {
	return c.JSON(h.uc.ListStages())
}

// Board renvoie le tableau complet : une colonne par étape non terminale
// avec ses cartes.
// GET /api/work/board
func (h *WorkHandler) Board(c *fiber.Ctx) error {
	out, err := h.uc.Board(GetLabID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MoveStage déplace un bon vers une autre étape.
// PATCH /api/delivery-notes/:id/stage
func (h *WorkHandler) MoveStage(c *fiber.Ctx) error {
	var in dto.MoveStageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	if in.Stage == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "stage est requis"})
	}
	if err := h.uc.MoveStage(GetLabID(c), c.Params("id"), in.Stage); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
