package repository

import "github.com/dentalcloud/dentalcloud-api/internal/domain/entity"

// DentistRepository port de persistance des dentistes (clients du laboratoire).
type DentistRepository interface {
	Create(d *entity.Dentist) error
	GetByID(id string) (*entity.Dentist, error)
	ListByLab(labID string, limit, offset int) ([]*entity.Dentist, error)
	Update(d *entity.Dentist) error
	SetActive(id string, active bool) error
}
