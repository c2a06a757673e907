package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dentalcloud/dentalcloud-api/internal/application/dto"
	"github.com/dentalcloud/dentalcloud-api/internal/domain"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
	"github.com/dentalcloud/dentalcloud-api/pkg/logger"
)

// defaultDueDays échéance par défaut d'une facture.
const defaultDueDays = 30

// InvoiceUseCase émission des factures, depuis une proforma acceptée ou
// directement depuis des bons de livraison.
type InvoiceUseCase struct {
	tx       TxRunner
	invoices repository.InvoiceRepository
	log      *logger.Logger
}

// NewInvoiceUseCase construit le cas d'usage.
func NewInvoiceUseCase(tx TxRunner, invoices repository.InvoiceRepository, log *logger.Logger) *InvoiceUseCase {
	return &InvoiceUseCase{tx: tx, invoices: invoices, log: log}
}

// Create émet une facture. Avec un proforma_id, les montants et les bons
// sont repris de la proforma, qui passe en invoiced dans la même
// transaction. Sans, la facture se construit comme une proforma depuis des
// bons non rattachés.
func (uc *InvoiceUseCase) Create(ctx context.Context, labID, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.ProformaID == "" && (in.DentistID == "" || len(in.DeliveryNoteIDs) == 0) {
		return nil, domain.ErrInvalidInput
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	due := in.DueDate
	if due == nil {
		d := date.AddDate(0, 0, defaultDueDays)
		due = &d
	}
	inv := &entity.Invoice{
		ID:        uuid.New().String(),
		LabID:     labID,
		Date:      date,
		DueDate:   due,
		Status:    entity.InvoiceStatusDraft,
		Notes:     in.Notes,
		CreatedBy: userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	err := withNumberRetry(uc.log, "facture", func() error {
		return uc.tx.RunBilling(ctx, func(r Repos) error {
			if in.ProformaID != "" {
				if err := uc.fillFromProforma(r, labID, in.ProformaID, inv); err != nil {
					return err
				}
			} else {
				if err := uc.fillFromNotes(r, labID, in, inv); err != nil {
					return err
				}
			}

			number, err := r.Invoices.NextNumber(labID)
			if err != nil {
				return err
			}
			inv.InvoiceNumber = number
			if err := r.Invoices.Create(inv); err != nil {
				return err
			}
			if in.ProformaID != "" {
				return r.Proformas.UpdateStatus(in.ProformaID, entity.ProformaStatusInvoiced)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("invoice_id", inv.ID).Str("number", inv.InvoiceNumber).Msg("facture émise")
	return toInvoiceResponse(inv), nil
}

func (uc *InvoiceUseCase) fillFromProforma(r Repos, labID, proformaID string, inv *entity.Invoice) error {
	p, err := r.Proformas.GetByID(proformaID)
	if err != nil {
		return err
	}
	if p == nil || p.LabID != labID {
		return domain.ErrNotFound
	}
	if p.Status == entity.ProformaStatusInvoiced {
		return domain.ErrAlreadyBilled
	}
	inv.DentistID = p.DentistID
	inv.ProformaID = p.ID
	inv.TaxRate = p.TaxRate
	inv.Subtotal = p.Subtotal
	inv.TaxAmount = p.TaxAmount
	inv.Total = p.Total
	inv.DeliveryNoteIDs = p.DeliveryNoteIDs
	return nil
}

func (uc *InvoiceUseCase) fillFromNotes(r Repos, labID string, in dto.CreateInvoiceRequest, inv *entity.Invoice) error {
	subtotal := decimal.Zero
	for _, noteID := range in.DeliveryNoteIDs {
		n, err := r.Notes.GetByID(noteID)
		if err != nil {
			return err
		}
		if n == nil || n.LabID != labID {
			return domain.ErrNotFound
		}
		if n.DentistID != in.DentistID {
			return domain.ErrInvalidInput
		}
		if n.ProformaID != "" {
			return domain.ErrAlreadyBilled
		}
		subtotal = subtotal.Add(n.Total())
	}
	inv.DentistID = in.DentistID
	inv.TaxRate = in.TaxRate
	inv.Subtotal = subtotal
	inv.TaxAmount = subtotal.Mul(in.TaxRate).Div(decimal.NewFromInt(100))
	inv.Total = inv.Subtotal.Add(inv.TaxAmount)
	inv.DeliveryNoteIDs = in.DeliveryNoteIDs
	return nil
}

// GetByID récupère une facture.
func (uc *InvoiceUseCase) GetByID(labID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoices.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.LabID != labID {
		return nil, nil
	}
	return toInvoiceResponse(inv), nil
}

// List liste les factures du laboratoire.
func (uc *InvoiceUseCase) List(labID string, page dto.PageRequest) (*dto.InvoiceListResponse, error) {
	page.DefaultPage()
	list, err := uc.invoices.ListByLab(labID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.InvoiceListResponse{
		Items: make([]dto.InvoiceResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, inv := range list {
		out.Items = append(out.Items, *toInvoiceResponse(inv))
	}
	return out, nil
}

// UpdateStatus change le statut d'une facture. Pas de suppression : une
// facture émise se corrige par avoir.
func (uc *InvoiceUseCase) UpdateStatus(labID, id string, in dto.UpdateInvoiceStatusRequest) error {
	inv, err := uc.invoices.GetByID(id)
	if err != nil {
		return err
	}
	if inv == nil || inv.LabID != labID {
		return domain.ErrNotFound
	}
	return uc.invoices.UpdateStatus(id, in.Status)
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:              inv.ID,
		LabID:           inv.LabID,
		DentistID:       inv.DentistID,
		InvoiceNumber:   inv.InvoiceNumber,
		ProformaID:      inv.ProformaID,
		Date:            inv.Date,
		DueDate:         inv.DueDate,
		Status:          inv.Status,
		TaxRate:         inv.TaxRate,
		Subtotal:        inv.Subtotal,
		TaxAmount:       inv.TaxAmount,
		Total:           inv.Total,
		Notes:           inv.Notes,
		DeliveryNoteIDs: inv.DeliveryNoteIDs,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
}
