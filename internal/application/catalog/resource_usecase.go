package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/dentalcloud/dentalcloud-api/internal/application/dto"
	"github.com/dentalcloud/dentalcloud-api/internal/domain"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
)

// ResourceUseCase CRUD des ressources (matières premières) et de leurs
// variantes. Les mouvements de stock passent par le grand livre, pas par ici.
type ResourceUseCase struct {
	repo repository.ResourceRepository
}

// NewResourceUseCase construit le cas d'usage.
func NewResourceUseCase(repo repository.ResourceRepository) *ResourceUseCase {
	return &ResourceUseCase{repo: repo}
}

// Create crée une ressource.
func (uc *ResourceUseCase) Create(labID string, in dto.CreateResourceRequest) (*dto.ResourceResponse, error) {
	now := time.Now()
	res := &entity.Resource{
		ID:            uuid.New().String(),
		LabID:         labID,
		Name:          in.Name,
		Category:      in.Category,
		Unit:          in.Unit,
		HasVariants:   in.HasVariants,
		StockQuantity: in.StockQuantity,
		AlertLevel:    in.AlertLevel,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(res); err != nil {
		return nil, err
	}
	return toResourceResponse(res, nil), nil
}

// GetByID récupère une ressource avec ses variantes.
func (uc *ResourceUseCase) GetByID(labID, id string) (*dto.ResourceResponse, error) {
	res, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if res == nil || res.LabID != labID {
		return nil, nil
	}
	variants, err := uc.repo.ListVariants(res.ID)
	if err != nil {
		return nil, err
	}
	return toResourceResponse(res, variants), nil
}

// List liste les ressources du laboratoire, variantes incluses.
func (uc *ResourceUseCase) List(labID string, page dto.PageRequest) (*dto.ResourceListResponse, error) {
	page.DefaultPage()
	resources, err := uc.repo.ListByLab(labID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ResourceListResponse{
		Items: make([]dto.ResourceResponse, 0, len(resources)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, res := range resources {
		variants, err := uc.repo.ListVariants(res.ID)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, *toResourceResponse(res, variants))
	}
	return out, nil
}

// Update met à jour une ressource. HasVariants ne se change pas après
// création : le stock vivrait des deux côtés à la fois.
func (uc *ResourceUseCase) Update(labID, id string, in dto.UpdateResourceRequest) (*dto.ResourceResponse, error) {
	res, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if res == nil || res.LabID != labID {
		return nil, nil
	}
	if in.Name != nil {
		res.Name = *in.Name
	}
	if in.Category != nil {
		res.Category = *in.Category
	}
	if in.Unit != nil {
		res.Unit = *in.Unit
	}
	if in.AlertLevel != nil {
		res.AlertLevel = *in.AlertLevel
	}
	res.UpdatedAt = time.Now()
	if err := uc.repo.Update(res); err != nil {
		return nil, err
	}
	variants, err := uc.repo.ListVariants(res.ID)
	if err != nil {
		return nil, err
	}
	return toResourceResponse(res, variants), nil
}

// CreateVariant ajoute une variante à une ressource à variantes.
func (uc *ResourceUseCase) CreateVariant(labID, resourceID string, in dto.CreateResourceVariantRequest) (*dto.ResourceVariantResponse, error) {
	res, err := uc.repo.GetByID(resourceID)
	if err != nil {
		return nil, err
	}
	if res == nil || res.LabID != labID {
		return nil, domain.ErrNotFound
	}
	if !res.HasVariants {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	v := &entity.ResourceVariant{
		ID:            uuid.New().String(),
		ResourceID:    resourceID,
		Subcategory:   in.Subcategory,
		VariantName:   in.VariantName,
		StockQuantity: in.StockQuantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.CreateVariant(v); err != nil {
		return nil, err
	}
	return toVariantResponse(v), nil
}

func toResourceResponse(r *entity.Resource, variants []*entity.ResourceVariant) *dto.ResourceResponse {
	resp := &dto.ResourceResponse{
		ID:            r.ID,
		LabID:         r.LabID,
		Name:          r.Name,
		Category:      r.Category,
		Unit:          r.Unit,
		HasVariants:   r.HasVariants,
		StockQuantity: r.StockQuantity,
		AlertLevel:    r.AlertLevel,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	for _, v := range variants {
		resp.Variants = append(resp.Variants, *toVariantResponse(v))
	}
	return resp
}

func toVariantResponse(v *entity.ResourceVariant) *dto.ResourceVariantResponse {
	return &dto.ResourceVariantResponse{
		ID:            v.ID,
		ResourceID:    v.ResourceID,
		Subcategory:   v.Subcategory,
		VariantName:   v.VariantName,
		StockQuantity: v.StockQuantity,
	}
}
