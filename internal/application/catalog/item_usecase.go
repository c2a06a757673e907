package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/dentalcloud/dentalcloud-api/internal/application/dto"
	"github.com/dentalcloud/dentalcloud-api/internal/domain"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
)

// ItemUseCase CRUD des articles du catalogue et de leur nomenclature.
// Le stock propre ne se modifie jamais ici : uniquement via le grand livre
// (ajustement manuel ou bon de livraison), pour garder une écriture par
// changement.
type ItemUseCase struct {
	repo repository.CatalogRepository
}

// NewItemUseCase construit le cas d'usage.
func NewItemUseCase(repo repository.CatalogRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create crée un article et sa nomenclature.
func (uc *ItemUseCase) Create(labID string, in dto.CreateCatalogItemRequest) (*dto.CatalogItemResponse, error) {
	for _, link := range in.Resources {
		if !link.QuantityNeeded.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
	}
	now := time.Now()
	item := &entity.CatalogItem{
		ID:            uuid.New().String(),
		LabID:         labID,
		Name:          in.Name,
		Description:   in.Description,
		DefaultUnit:   in.DefaultUnit,
		DefaultPrice:  in.DefaultPrice,
		TracksStock:   in.TracksStock,
		StockQuantity: in.StockQuantity,
		AlertLevel:    in.AlertLevel,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	if len(in.Resources) > 0 {
		if err := uc.repo.ReplaceResources(item.ID, toEdges(item.ID, in.Resources)); err != nil {
			return nil, err
		}
	}
	return uc.withResources(item)
}

// GetByID récupère un article avec sa nomenclature.
func (uc *ItemUseCase) GetByID(labID, id string) (*dto.CatalogItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.LabID != labID {
		return nil, nil
	}
	return uc.withResources(item)
}

// List liste les articles du laboratoire.
func (uc *ItemUseCase) List(labID string, activeOnly bool, page dto.PageRequest) (*dto.CatalogItemListResponse, error) {
	page.DefaultPage()
	items, err := uc.repo.ListByLab(labID, activeOnly, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.CatalogItemListResponse{
		Items: make([]dto.CatalogItemResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, it := range items {
		out.Items = append(out.Items, *toItemResponse(it, nil))
	}
	return out, nil
}

// Update met à jour un article et, si fournie, remplace sa nomenclature.
func (uc *ItemUseCase) Update(labID, id string, in dto.UpdateCatalogItemRequest) (*dto.CatalogItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.LabID != labID {
		return nil, nil
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.DefaultUnit != nil {
		item.DefaultUnit = *in.DefaultUnit
	}
	if in.DefaultPrice != nil {
		item.DefaultPrice = *in.DefaultPrice
	}
	if in.TracksStock != nil {
		item.TracksStock = *in.TracksStock
	}
	if in.AlertLevel != nil {
		item.AlertLevel = *in.AlertLevel
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	if in.Resources != nil {
		for _, link := range in.Resources {
			if !link.QuantityNeeded.IsPositive() {
				return nil, domain.ErrInvalidInput
			}
		}
		if err := uc.repo.ReplaceResources(item.ID, toEdges(item.ID, in.Resources)); err != nil {
			return nil, err
		}
	}
	return uc.withResources(item)
}

// Deactivate désactive un article. Jamais de suppression : des bons de
// livraison et factures peuvent le référencer.
func (uc *ItemUseCase) Deactivate(labID, id string) error {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil || item.LabID != labID {
		return domain.ErrNotFound
	}
	return uc.repo.SetActive(id, false)
}

func (uc *ItemUseCase) withResources(item *entity.CatalogItem) (*dto.CatalogItemResponse, error) {
	edges, err := uc.repo.ListResources(item.ID)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item, edges), nil
}

func toEdges(itemID string, links []dto.ResourceLink) []*entity.CatalogItemResource {
	edges := make([]*entity.CatalogItemResource, 0, len(links))
	for _, l := range links {
		edges = append(edges, &entity.CatalogItemResource{
			CatalogItemID:  itemID,
			ResourceID:     l.ResourceID,
			QuantityNeeded: l.QuantityNeeded,
		})
	}
	return edges
}

func toItemResponse(it *entity.CatalogItem, edges []*entity.CatalogItemResource) *dto.CatalogItemResponse {
	resp := &dto.CatalogItemResponse{
		ID:            it.ID,
		LabID:         it.LabID,
		Name:          it.Name,
		Description:   it.Description,
		DefaultUnit:   it.DefaultUnit,
		DefaultPrice:  it.DefaultPrice,
		TracksStock:   it.TracksStock,
		StockQuantity: it.StockQuantity,
		AlertLevel:    it.AlertLevel,
		IsActive:      it.IsActive,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
	for _, e := range edges {
		resp.Resources = append(resp.Resources, dto.ResourceLink{
			ResourceID:     e.ResourceID,
			QuantityNeeded: e.QuantityNeeded,
		})
	}
	return resp
}
