package billing

import (
	"fmt"

	"github.com/dentalcloud/dentalcloud-api/internal/application/dto"
	"github.com/dentalcloud/dentalcloud-api/internal/domain"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
	"github.com/dentalcloud/dentalcloud-api/pkg/logger"
)

// DocumentUseCase rendu PDF et envoi par email des bons de livraison,
// proformas et factures.
type DocumentUseCase struct {
	labs      repository.LabRepository
	dentists  repository.DentistRepository
	notes     repository.DeliveryNoteRepository
	proformas repository.ProformaRepository
	invoices  repository.InvoiceRepository
	gen       DocumentGenerator
	mail      EmailSender
	log       *logger.Logger
}

// NewDocumentUseCase construit le cas d'usage.
func NewDocumentUseCase(
	labs repository.LabRepository,
	dentists repository.DentistRepository,
	notes repository.DeliveryNoteRepository,
	proformas repository.ProformaRepository,
	invoices repository.InvoiceRepository,
	gen DocumentGenerator,
	mail EmailSender,
	log *logger.Logger,
) *DocumentUseCase {
	return &DocumentUseCase{
		labs: labs, dentists: dentists, notes: notes,
		proformas: proformas, invoices: invoices,
		gen: gen, mail: mail, log: log,
	}
}

// DeliveryNotePDF rend le PDF d'un bon de livraison (bon + certificat de
// conformité). Renvoie aussi le nom de fichier proposé.
func (uc *DocumentUseCase) DeliveryNotePDF(labID, noteID string) ([]byte, string, error) {
	n, err := uc.notes.GetByID(noteID)
	if err != nil {
		return nil, "", err
	}
	if n == nil || n.LabID != labID {
		return nil, "", domain.ErrNotFound
	}
	lab, dentist, err := uc.labAndDentist(labID, n.DentistID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.gen.DeliveryNotePDF(lab, dentist, n)
	if err != nil {
		return nil, "", fmt.Errorf("rendu PDF du bon %s: %w", n.DeliveryNumber, err)
	}
	return pdf, fmt.Sprintf("%s.pdf", n.DeliveryNumber), nil
}

// ProformaPDF rend le PDF d'une proforma avec le détail de ses bons.
func (uc *DocumentUseCase) ProformaPDF(labID, proformaID string) ([]byte, string, error) {
	p, err := uc.proformas.GetByID(proformaID)
	if err != nil {
		return nil, "", err
	}
	if p == nil || p.LabID != labID {
		return nil, "", domain.ErrNotFound
	}
	lab, dentist, err := uc.labAndDentist(labID, p.DentistID)
	if err != nil {
		return nil, "", err
	}
	notes, err := uc.loadNotes(labID, p.DeliveryNoteIDs)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.gen.ProformaPDF(lab, dentist, p, notes)
	if err != nil {
		return nil, "", fmt.Errorf("rendu PDF de la proforma %s: %w", p.ProformaNumber, err)
	}
	return pdf, fmt.Sprintf("%s.pdf", p.ProformaNumber), nil
}

// InvoicePDF rend le PDF d'une facture avec le détail de ses bons.
func (uc *DocumentUseCase) InvoicePDF(labID, invoiceID string) ([]byte, string, error) {
	inv, err := uc.invoices.GetByID(invoiceID)
	if err != nil {
		return nil, "", err
	}
	if inv == nil || inv.LabID != labID {
		return nil, "", domain.ErrNotFound
	}
	lab, dentist, err := uc.labAndDentist(labID, inv.DentistID)
	if err != nil {
		return nil, "", err
	}
	notes, err := uc.loadNotes(labID, inv.DeliveryNoteIDs)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.gen.InvoicePDF(lab, dentist, inv, notes)
	if err != nil {
		return nil, "", fmt.Errorf("rendu PDF de la facture %s: %w", inv.InvoiceNumber, err)
	}
	return pdf, fmt.Sprintf("%s.pdf", inv.InvoiceNumber), nil
}

// SendDeliveryNote envoie le PDF du bon au dentiste. L'échec d'envoi est
// renvoyé dans le corps (success à false) plutôt qu'en erreur HTTP : le
// document existe, seul l'email a échoué.
func (uc *DocumentUseCase) SendDeliveryNote(labID, noteID string, in dto.SendDocumentRequest) (*dto.SendDocumentResponse, error) {
	n, err := uc.notes.GetByID(noteID)
	if err != nil {
		return nil, err
	}
	if n == nil || n.LabID != labID {
		return nil, domain.ErrNotFound
	}
	pdf, filename, err := uc.DeliveryNotePDF(labID, noteID)
	if err != nil {
		return nil, err
	}
	subject := in.Subject
	if subject == "" {
		subject = fmt.Sprintf("Bon de livraison %s", n.DeliveryNumber)
	}
	return uc.send(labID, n.DentistID, in, subject, filename, pdf)
}

// SendProforma envoie le PDF de la proforma au dentiste.
func (uc *DocumentUseCase) SendProforma(labID, proformaID string, in dto.SendDocumentRequest) (*dto.SendDocumentResponse, error) {
	p, err := uc.proformas.GetByID(proformaID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.LabID != labID {
		return nil, domain.ErrNotFound
	}
	pdf, filename, err := uc.ProformaPDF(labID, proformaID)
	if err != nil {
		return nil, err
	}
	subject := in.Subject
	if subject == "" {
		subject = fmt.Sprintf("Proforma %s", p.ProformaNumber)
	}
	return uc.send(labID, p.DentistID, in, subject, filename, pdf)
}

// SendInvoice envoie le PDF de la facture au dentiste.
func (uc *DocumentUseCase) SendInvoice(labID, invoiceID string, in dto.SendDocumentRequest) (*dto.SendDocumentResponse, error) {
	inv, err := uc.invoices.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.LabID != labID {
		return nil, domain.ErrNotFound
	}
	pdf, filename, err := uc.InvoicePDF(labID, invoiceID)
	if err != nil {
		return nil, err
	}
	subject := in.Subject
	if subject == "" {
		subject = fmt.Sprintf("Facture %s", inv.InvoiceNumber)
	}
	return uc.send(labID, inv.DentistID, in, subject, filename, pdf)
}

func (uc *DocumentUseCase) send(labID, dentistID string, in dto.SendDocumentRequest, subject, filename string, pdf []byte) (*dto.SendDocumentResponse, error) {
	to := in.To
	if to == "" {
		d, err := uc.dentists.GetByID(dentistID)
		if err != nil {
			return nil, err
		}
		if d == nil || d.Email == "" {
			return &dto.SendDocumentResponse{Success: false, Error: "Aucune adresse email pour ce dentiste."}, nil
		}
		to = d.Email
	}
	if err := uc.mail.SendDocument(labID, to, subject, in.Body, filename, pdf); err != nil {
		uc.log.Error().Err(err).Str("to", to).Str("document", filename).Msg("échec d'envoi du document")
		return &dto.SendDocumentResponse{Success: false, Error: err.Error()}, nil
	}
	return &dto.SendDocumentResponse{Success: true}, nil
}

func (uc *DocumentUseCase) labAndDentist(labID, dentistID string) (*entity.Lab, *entity.Dentist, error) {
	lab, err := uc.labs.GetByID(labID)
	if err != nil {
		return nil, nil, err
	}
	if lab == nil {
		return nil, nil, domain.ErrNotFound
	}
	dentist, err := uc.dentists.GetByID(dentistID)
	if err != nil {
		return nil, nil, err
	}
	if dentist == nil {
		return nil, nil, domain.ErrNotFound
	}
	return lab, dentist, nil
}

func (uc *DocumentUseCase) loadNotes(labID string, ids []string) ([]*entity.DeliveryNote, error) {
	notes := make([]*entity.DeliveryNote, 0, len(ids))
	for _, id := range ids {
		n, err := uc.notes.GetByID(id)
		if err != nil {
			return nil, err
		}
		if n == nil || n.LabID != labID {
			return nil, domain.ErrNotFound
		}
		notes = append(notes, n)
	}
	return notes, nil
}
