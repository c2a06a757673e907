package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dentalcloud/dentalcloud-api/internal/application/dto"
	"github.com/dentalcloud/dentalcloud-api/internal/application/settings"
)

// SettingsHandler paramètres du laboratoire (admin uniquement).
type SettingsHandler struct {
	uc *settings.UseCase
}

// NewSettingsHandler construit le handler.
func NewSettingsHandler(uc *settings.UseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// GetLab renvoie les coordonnées du laboratoire.
// GET /api/settings/lab
func (h *SettingsHandler) GetLab(c *fiber.Ctx) error {
	out, err := h.uc.GetLab(GetLabID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateLab met à jour les coordonnées qui alimentent les PDF et le
// certificat de conformité.
// PUT /api/settings/lab
func (h *SettingsHandler) UpdateLab(c *fiber.Ctx) error {
	var in dto.UpdateLabRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.uc.UpdateLab(GetLabID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetSMTP renvoie la configuration SMTP, sans le mot de passe.
// GET /api/settings/smtp
func (h *SettingsHandler) GetSMTP(c *fiber.Ctx) error {
	out, err := h.uc.GetSMTP(GetLabID(c))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "configuration SMTP non renseignée"})
	}
	return c.JSON(out)
}

// UpdateSMTP remplace la configuration SMTP. Un mot de passe vide conserve
// l'ancien.
// PUT /api/settings/smtp
func (h *SettingsHandler) UpdateSMTP(c *fiber.Ctx) error {
	var in dto.UpdateSMTPSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.uc.UpdateSMTP(GetLabID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
