package repository

import "github.com/dentalcloud/dentalcloud-api/internal/domain/entity"

// ProformaRepository port de persistance des proformas.
// NextNumber appelle la fonction SQL generate_next_proforma_number ;
// Create renvoie domain.ErrDuplicate sur violation d'unicité du numéro
// (23505), ce qui permet la boucle de retry du cas d'usage.
type ProformaRepository interface {
	Create(p *entity.Proforma) error
	GetByID(id string) (*entity.Proforma, error)
	ListByLab(labID string, limit, offset int) ([]*entity.Proforma, error)
	UpdateStatus(id, status string) error
	Delete(id string) error
	NextNumber(labID string) (string, error)
}

// InvoiceRepository port de persistance des factures. Mêmes garanties de
// numérotation que ProformaRepository (generate_next_invoice_number).
type InvoiceRepository interface {
	Create(inv *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	ListByLab(labID string, limit, offset int) ([]*entity.Invoice, error)
	ListByYear(labID string, year int) ([]*entity.Invoice, error)
	UpdateStatus(id, status string) error
	NextNumber(labID string) (string, error)
}
