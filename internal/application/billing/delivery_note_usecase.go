package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dentalcloud/dentalcloud-api/internal/application/dto"
	"github.com/dentalcloud/dentalcloud-api/internal/application/stock"
	"github.com/dentalcloud/dentalcloud-api/internal/application/work"
	"github.com/dentalcloud/dentalcloud-api/internal/domain"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
	"github.com/dentalcloud/dentalcloud-api/pkg/logger"
)

// NoteUseCase cycle de vie des bons de livraison. La création insère le bon
// et déduit le stock dans une seule transaction ; la suppression restaure le
// stock de la même façon. Un échec de stock annule tout : jamais de bon sans
// ses écritures ni l'inverse.
type NoteUseCase struct {
	tx       TxRunner
	notes    repository.DeliveryNoteRepository
	dentists repository.DentistRepository
	ledger   *stock.Ledger
	log      *logger.Logger
}

// NewNoteUseCase construit le cas d'usage.
func NewNoteUseCase(tx TxRunner, notes repository.DeliveryNoteRepository, dentists repository.DentistRepository, ledger *stock.Ledger, log *logger.Logger) *NoteUseCase {
	return &NoteUseCase{tx: tx, notes: notes, dentists: dentists, ledger: ledger, log: log}
}

// Create crée un bon de livraison et déduit le stock adossé à ses lignes.
func (uc *NoteUseCase) Create(ctx context.Context, labID, userID string, in dto.CreateDeliveryNoteRequest) (*dto.DeliveryNoteResponse, error) {
	dentist, err := uc.dentists.GetByID(in.DentistID)
	if err != nil {
		return nil, err
	}
	if dentist == nil || dentist.LabID != labID {
		return nil, domain.ErrNotFound
	}
	for _, it := range in.Items {
		if !it.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	note := &entity.DeliveryNote{
		ID:               uuid.New().String(),
		LabID:            labID,
		DentistID:        in.DentistID,
		Date:             date,
		PatientName:      in.PatientName,
		PrescriptionDate: in.PrescriptionDate,
		Items:            toNoteItems(in.Items),
		Stage:            work.StageDefault,
		Notes:            in.Notes,
		CreatedBy:        userID,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	err = withNumberRetry(uc.log, "bon de livraison", func() error {
		return uc.tx.RunBilling(ctx, func(r Repos) error {
			number, err := r.Notes.NextNumber(labID)
			if err != nil {
				return err
			}
			note.DeliveryNumber = number
			if err := r.Notes.Create(note); err != nil {
				return err
			}
			return uc.ledger.DeductInTx(r.Catalog, r.Resources, r.Movements,
				labID, userID, note.ID, toLineItems(in.Items))
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("delivery_note_id", note.ID).Str("number", note.DeliveryNumber).
		Msg("bon de livraison créé")
	return toNoteResponse(note), nil
}

// GetByID récupère un bon de livraison.
func (uc *NoteUseCase) GetByID(labID, id string) (*dto.DeliveryNoteResponse, error) {
	n, err := uc.notes.GetByID(id)
	if err != nil {
		return nil, err
	}
	if n == nil || n.LabID != labID {
		return nil, nil
	}
	return toNoteResponse(n), nil
}

// List liste les bons avec filtres.
func (uc *NoteUseCase) List(labID string, in dto.DeliveryNoteFilterRequest) (*dto.DeliveryNoteListResponse, error) {
	in.DefaultPage()
	filter := repository.DeliveryNoteFilter{
		DentistID: in.DentistID,
		Stage:     in.Stage,
		Unbilled:  in.Unbilled,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	if in.From != "" {
		t, err := time.Parse("2006-01-02", in.From)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.From = &t
	}
	if in.To != "" {
		t, err := time.Parse("2006-01-02", in.To)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.To = &t
	}

	list, err := uc.notes.List(labID, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.DeliveryNoteListResponse{
		Items: make([]dto.DeliveryNoteResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}
	for _, n := range list {
		out.Items = append(out.Items, *toNoteResponse(n))
	}
	return out, nil
}

// Update met à jour les métadonnées d'un bon. Les lignes ne se modifient
// pas après création : le stock a déjà été déduit sur leur base.
func (uc *NoteUseCase) Update(labID, id string, in dto.UpdateDeliveryNoteRequest) (*dto.DeliveryNoteResponse, error) {
	n, err := uc.notes.GetByID(id)
	if err != nil {
		return nil, err
	}
	if n == nil || n.LabID != labID {
		return nil, nil
	}
	if in.PatientName != nil {
		n.PatientName = *in.PatientName
	}
	if in.PrescriptionDate != nil {
		n.PrescriptionDate = in.PrescriptionDate
	}
	if in.Notes != nil {
		n.Notes = *in.Notes
	}
	n.UpdatedAt = time.Now()
	if err := uc.notes.Update(n); err != nil {
		return nil, err
	}
	return toNoteResponse(n), nil
}

// Delete supprime un bon et restaure le stock déduit, dans une seule
// transaction. Refusé si le bon est rattaché à une proforma.
func (uc *NoteUseCase) Delete(ctx context.Context, labID, userID, id string) error {
	return uc.tx.RunBilling(ctx, func(r Repos) error {
		n, err := r.Notes.GetByID(id)
		if err != nil {
			return err
		}
		if n == nil || n.LabID != labID {
			return domain.ErrNotFound
		}
		if n.ProformaID != "" {
			return domain.ErrAlreadyBilled
		}
		if err := uc.ledger.RestoreInTx(r.Catalog, r.Resources, r.Movements, labID, userID, id); err != nil {
			return err
		}
		if err := r.Notes.Delete(id); err != nil {
			return err
		}
		uc.log.Info().Str("delivery_note_id", id).Msg("bon de livraison supprimé, stock restauré")
		return nil
	})
}

func toNoteItems(items []dto.DeliveryNoteItemRequest) []entity.DeliveryNoteItem {
	out := make([]entity.DeliveryNoteItem, 0, len(items))
	for _, it := range items {
		out = append(out, entity.DeliveryNoteItem{
			CatalogItemID:    it.CatalogItemID,
			Description:      it.Description,
			Quantity:         it.Quantity,
			Unit:             it.Unit,
			UnitPrice:        it.UnitPrice,
			Shade:            it.Shade,
			ToothNumber:      it.ToothNumber,
			ResourceVariants: it.ResourceVariants,
		})
	}
	return out
}

func toLineItems(items []dto.DeliveryNoteItemRequest) []stock.LineItem {
	out := make([]stock.LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, stock.LineItem{
			CatalogItemID:    it.CatalogItemID,
			Quantity:         it.Quantity,
			ResourceVariants: it.ResourceVariants,
		})
	}
	return out
}

func toNoteResponse(n *entity.DeliveryNote) *dto.DeliveryNoteResponse {
	resp := &dto.DeliveryNoteResponse{
		ID:               n.ID,
		LabID:            n.LabID,
		DentistID:        n.DentistID,
		DeliveryNumber:   n.DeliveryNumber,
		Date:             n.Date,
		PatientName:      n.PatientName,
		PrescriptionDate: n.PrescriptionDate,
		Items:            make([]dto.DeliveryNoteItemResponse, 0, len(n.Items)),
		Stage:            n.Stage,
		ProformaID:       n.ProformaID,
		Total:            n.Total(),
		Notes:            n.Notes,
		CreatedAt:        n.CreatedAt,
		UpdatedAt:        n.UpdatedAt,
	}
	for _, it := range n.Items {
		resp.Items = append(resp.Items, dto.DeliveryNoteItemResponse{
			CatalogItemID:    it.CatalogItemID,
			Description:      it.Description,
			Quantity:         it.Quantity,
			Unit:             it.Unit,
			UnitPrice:        it.UnitPrice,
			Shade:            it.Shade,
			ToothNumber:      it.ToothNumber,
			ResourceVariants: it.ResourceVariants,
		})
	}
	return resp
}
