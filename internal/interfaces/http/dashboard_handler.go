package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dentalcloud/dentalcloud-api/internal/application/dashboard"
)

// DashboardHandler statistiques du laboratoire (protégé).
type DashboardHandler struct {
	uc *dashboard.UseCase
}

// NewDashboardHandler construit le handler.
func NewDashboardHandler(uc *dashboard.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats renvoie le tableau de bord : compteurs du mois, bons par étape,
// chiffre d'affaires mensuel et alertes de stock bas.
// GET /api/dashboard
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context(), GetLabID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
