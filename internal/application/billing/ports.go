package billing

import (
	"context"

	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
)

// Repos ports de persistance liés à une transaction en cours. Les repos de
// stock y figurent pour que la création d'un bon et la déduction, ou la
// suppression et la restauration, partagent la même transaction.
type Repos struct {
	Notes     repository.DeliveryNoteRepository
	Catalog   repository.CatalogRepository
	Resources repository.ResourceRepository
	Movements repository.StockMovementRepository
	Proformas repository.ProformaRepository
	Invoices  repository.InvoiceRepository
}

// TxRunner exécute fn dans une transaction : commit si fn renvoie nil,
// rollback sinon.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(r Repos) error) error
}

// DocumentGenerator rend les documents PDF. L'implémentation vit en
// infrastructure (maroto).
type DocumentGenerator interface {
	DeliveryNotePDF(lab *entity.Lab, dentist *entity.Dentist, note *entity.DeliveryNote) ([]byte, error)
	ProformaPDF(lab *entity.Lab, dentist *entity.Dentist, p *entity.Proforma, notes []*entity.DeliveryNote) ([]byte, error)
	InvoicePDF(lab *entity.Lab, dentist *entity.Dentist, inv *entity.Invoice, notes []*entity.DeliveryNote) ([]byte, error)
}

// EmailSender envoie un document en pièce jointe avec la configuration SMTP
// du laboratoire.
type EmailSender interface {
	SendDocument(labID, to, subject, body, filename string, pdf []byte) error
}
