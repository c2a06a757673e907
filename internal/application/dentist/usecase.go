package dentist

import (
	"time"

	"github.com/google/uuid"

	"github.com/dentalcloud/dentalcloud-api/internal/application/dto"
	"github.com/dentalcloud/dentalcloud-api/internal/domain"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
)

// UseCase CRUD des cabinets dentaires clients du laboratoire.
type UseCase struct {
	repo repository.DentistRepository
}

// NewUseCase construit le cas d'usage.
func NewUseCase(repo repository.DentistRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Create crée un cabinet.
func (uc *UseCase) Create(labID string, in dto.CreateDentistRequest) (*dto.DentistResponse, error) {
	now := time.Now()
	d := &entity.Dentist{
		ID:        uuid.New().String(),
		LabID:     labID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Notes:     in.Notes,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(d); err != nil {
		return nil, err
	}
	return toResponse(d), nil
}

// GetByID récupère un cabinet.
func (uc *UseCase) GetByID(labID, id string) (*dto.DentistResponse, error) {
	d, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil || d.LabID != labID {
		return nil, nil
	}
	return toResponse(d), nil
}

// List liste les cabinets du laboratoire.
func (uc *UseCase) List(labID string, page dto.PageRequest) (*dto.DentistListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByLab(labID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.DentistListResponse{
		Items: make([]dto.DentistResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, d := range list {
		out.Items = append(out.Items, *toResponse(d))
	}
	return out, nil
}

// Update met à jour un cabinet.
func (uc *UseCase) Update(labID, id string, in dto.UpdateDentistRequest) (*dto.DentistResponse, error) {
	d, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil || d.LabID != labID {
		return nil, nil
	}
	if in.Name != nil {
		d.Name = *in.Name
	}
	if in.Email != nil {
		d.Email = *in.Email
	}
	if in.Phone != nil {
		d.Phone = *in.Phone
	}
	if in.Address != nil {
		d.Address = *in.Address
	}
	if in.Notes != nil {
		d.Notes = *in.Notes
	}
	d.UpdatedAt = time.Now()
	if err := uc.repo.Update(d); err != nil {
		return nil, err
	}
	return toResponse(d), nil
}

// Deactivate désactive un cabinet sans le supprimer : les documents
// existants continuent de le référencer.
func (uc *UseCase) Deactivate(labID, id string) error {
	d, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if d == nil || d.LabID != labID {
		return domain.ErrNotFound
	}
	return uc.repo.SetActive(id, false)
}

func toResponse(d *entity.Dentist) *dto.DentistResponse {
	return &dto.DentistResponse{
		ID:        d.ID,
		LabID:     d.LabID,
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Address:   d.Address,
		Notes:     d.Notes,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
