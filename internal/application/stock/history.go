package stock

import (
	"github.com/dentalcloud/dentalcloud-api/internal/application/dto"
	"github.com/dentalcloud/dentalcloud-api/internal/domain"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
)

// History consultation du grand livre de stock par compte.
type History struct {
	catalog   repository.CatalogRepository
	resources repository.ResourceRepository
	movements repository.StockMovementRepository
}

// NewHistory construit le cas d'usage de consultation.
func NewHistory(catalog repository.CatalogRepository, resources repository.ResourceRepository, movements repository.StockMovementRepository) *History {
	return &History{catalog: catalog, resources: resources, movements: movements}
}

// CatalogItemMovements écritures de la série article, plus récentes d'abord.
func (h *History) CatalogItemMovements(labID, itemID string, page dto.PageRequest) (*dto.StockMovementListResponse, error) {
	item, err := h.catalog.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.LabID != labID {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	list, err := h.movements.ListByCatalogItem(itemID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toMovementList(list, page), nil
}

// ResourceMovements écritures de la série ressource, variantes comprises.
func (h *History) ResourceMovements(labID, resourceID string, page dto.PageRequest) (*dto.StockMovementListResponse, error) {
	res, err := h.resources.GetByID(resourceID)
	if err != nil {
		return nil, err
	}
	if res == nil || res.LabID != labID {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	list, err := h.movements.ListByResource(resourceID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toMovementList(list, page), nil
}

func toMovementList(list []*entity.StockMovement, page dto.PageRequest) *dto.StockMovementListResponse {
	resp := &dto.StockMovementListResponse{
		Items: make([]dto.StockMovementResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, m := range list {
		resp.Items = append(resp.Items, dto.StockMovementResponse{
			ID:                m.ID,
			CatalogItemID:     m.CatalogItemID,
			ResourceID:        m.ResourceID,
			ResourceVariantID: m.ResourceVariantID,
			DeliveryNoteID:    m.DeliveryNoteID,
			ReferenceType:     m.ReferenceType,
			ReferenceID:       m.ReferenceID,
			MovementType:      m.MovementType,
			Quantity:          m.Quantity,
			Notes:             m.Notes,
			Reversed:          m.Reversed,
			CreatedBy:         m.CreatedBy,
			CreatedAt:         m.CreatedAt,
		})
	}
	return resp
}
