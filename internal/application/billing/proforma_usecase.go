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

// ProformaUseCase regroupement de bons de livraison en proformas.
type ProformaUseCase struct {
	tx        TxRunner
	proformas repository.ProformaRepository
	log       *logger.Logger
}

// NewProformaUseCase construit le cas d'usage.
func NewProformaUseCase(tx TxRunner, proformas repository.ProformaRepository, log *logger.Logger) *ProformaUseCase {
	return &ProformaUseCase{tx: tx, proformas: proformas, log: log}
}

// Create crée une proforma depuis des bons de livraison d'un même dentiste.
// Chaque bon est rattaché à la proforma dans la même transaction : un bon
// déjà rattaché fait échouer l'appel.
func (uc *ProformaUseCase) Create(ctx context.Context, labID, userID string, in dto.CreateProformaRequest) (*dto.ProformaResponse, error) {
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	p := &entity.Proforma{
		ID:              uuid.New().String(),
		LabID:           labID,
		DentistID:       in.DentistID,
		Date:            date,
		Status:          entity.ProformaStatusDraft,
		TaxRate:         in.TaxRate,
		Notes:           in.Notes,
		DeliveryNoteIDs: in.DeliveryNoteIDs,
		CreatedBy:       userID,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	err := withNumberRetry(uc.log, "proforma", func() error {
		return uc.tx.RunBilling(ctx, func(r Repos) error {
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
			p.Subtotal = subtotal
			p.TaxAmount = subtotal.Mul(p.TaxRate).Div(decimal.NewFromInt(100))
			p.Total = p.Subtotal.Add(p.TaxAmount)

			number, err := r.Proformas.NextNumber(labID)
			if err != nil {
				return err
			}
			p.ProformaNumber = number
			if err := r.Proformas.Create(p); err != nil {
				return err
			}
			for _, noteID := range in.DeliveryNoteIDs {
				if err := r.Notes.SetProformaID(noteID, p.ID); err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("proforma_id", p.ID).Str("number", p.ProformaNumber).
		Int("notes", len(in.DeliveryNoteIDs)).Msg("proforma créée")
	return toProformaResponse(p), nil
}

// GetByID récupère une proforma.
func (uc *ProformaUseCase) GetByID(labID, id string) (*dto.ProformaResponse, error) {
	p, err := uc.proformas.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.LabID != labID {
		return nil, nil
	}
	return toProformaResponse(p), nil
}

// List liste les proformas du laboratoire.
func (uc *ProformaUseCase) List(labID string, page dto.PageRequest) (*dto.ProformaListResponse, error) {
	page.DefaultPage()
	list, err := uc.proformas.ListByLab(labID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ProformaListResponse{
		Items: make([]dto.ProformaResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, p := range list {
		out.Items = append(out.Items, *toProformaResponse(p))
	}
	return out, nil
}

// UpdateStatus change le statut. Le passage à invoiced est réservé à la
// création de facture.
func (uc *ProformaUseCase) UpdateStatus(labID, id string, in dto.UpdateProformaStatusRequest) error {
	p, err := uc.proformas.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil || p.LabID != labID {
		return domain.ErrNotFound
	}
	if in.Status == entity.ProformaStatusInvoiced || p.Status == entity.ProformaStatusInvoiced {
		return domain.ErrConflict
	}
	return uc.proformas.UpdateStatus(id, in.Status)
}

// Delete supprime une proforma non facturée et détache ses bons, qui
// redeviennent facturables.
func (uc *ProformaUseCase) Delete(ctx context.Context, labID, id string) error {
	return uc.tx.RunBilling(ctx, func(r Repos) error {
		p, err := r.Proformas.GetByID(id)
		if err != nil {
			return err
		}
		if p == nil || p.LabID != labID {
			return domain.ErrNotFound
		}
		if p.Status == entity.ProformaStatusInvoiced {
			return domain.ErrConflict
		}
		for _, noteID := range p.DeliveryNoteIDs {
			if err := r.Notes.SetProformaID(noteID, ""); err != nil {
				return err
			}
		}
		return r.Proformas.Delete(id)
	})
}

func toProformaResponse(p *entity.Proforma) *dto.ProformaResponse {
	return &dto.ProformaResponse{
		ID:              p.ID,
		LabID:           p.LabID,
		DentistID:       p.DentistID,
		ProformaNumber:  p.ProformaNumber,
		Date:            p.Date,
		Status:          p.Status,
		TaxRate:         p.TaxRate,
		Subtotal:        p.Subtotal,
		TaxAmount:       p.TaxAmount,
		Total:           p.Total,
		Notes:           p.Notes,
		DeliveryNoteIDs: p.DeliveryNoteIDs,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
