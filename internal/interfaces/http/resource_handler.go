package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dentalcloud/dentalcloud-api/internal/application/catalog"
	"github.com/dentalcloud/dentalcloud-api/internal/application/dto"
)

// ResourceHandler requêtes HTTP des ressources consommables (protégé).
type ResourceHandler struct {
	uc *catalog.ResourceUseCase
}

// NewResourceHandler construit le handler.
func NewResourceHandler(uc *catalog.ResourceUseCase) *ResourceHandler {
	return &ResourceHandler{uc: uc}
}

// Create crée une ressource.
// POST /api/resources
func (h *ResourceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateResourceRequest
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

// GetByID renvoie une ressource avec ses variantes.
// GET /api/resources/:id
func (h *ResourceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetLabID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ressource non trouvée"})
	}
	return c.JSON(out)
}

// List liste les ressources du laboratoire.
// GET /api/resources
func (h *ResourceHandler) List(c *fiber.Ctx) error {
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

// Update met à jour une ressource. HasVariants ne change pas après création.
// PUT /api/resources/:id
func (h *ResourceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateResourceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.uc.Update(GetLabID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateVariant ajoute une variante (teinte) à une ressource à variantes.
// POST /api/resources/:id/variants
func (h *ResourceHandler) CreateVariant(c *fiber.Ctx) error {
	var in dto.CreateResourceVariantRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	if in.VariantName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "variant_name est requis"})
	}
	out, err := h.uc.CreateVariant(GetLabID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
