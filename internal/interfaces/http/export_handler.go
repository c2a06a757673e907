package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dentalcloud/dentalcloud-api/internal/application/dto"
	"github.com/dentalcloud/dentalcloud-api/internal/application/export"
	"github.com/dentalcloud/dentalcloud-api/internal/application/settings"
)

// ExportHandler export comptable FEC (admin uniquement).
type ExportHandler struct {
	fec      *export.FECExporter
	settings *settings.UseCase
}

// NewExportHandler construit le handler.
func NewExportHandler(fec *export.FECExporter, settings *settings.UseCase) *ExportHandler {
	return &ExportHandler{fec: fec, settings: settings}
}

// FEC renvoie le Fichier des Écritures Comptables d'un exercice, encodé en
// ISO-8859-15 comme attendu par l'administration fiscale.
// GET /api/exports/fec?year=2025
func (h *ExportHandler) FEC(c *fiber.Ctx) error {
	year := c.QueryInt("year", time.Now().Year())
	if year < 2000 || year > time.Now().Year() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "year invalide"})
	}

	lab, err := h.settings.GetLab(GetLabID(c))
	if err != nil {
		return respondError(c, err)
	}
	// Le SIREN est les 9 premiers chiffres du SIRET.
	siren := lab.SIRET
	if len(siren) > 9 {
		siren = siren[:9]
	}
	if siren == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "le SIRET du laboratoire doit être renseigné avant l'export"})
	}

	data, filename, err := h.fec.Export(GetLabID(c), siren, year)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/plain; charset=ISO-8859-15")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
