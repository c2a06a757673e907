package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dentalcloud/dentalcloud-api/internal/domain"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
)

var _ repository.ProformaRepository = (*ProformaRepo)(nil)

const proformaColumns = `id, lab_id, dentist_id, proforma_number, date, status, tax_rate,
	subtotal, tax_amount, total, notes, delivery_note_ids, created_by, created_at, updated_at`

// ProformaRepo implémentation du port ProformaRepository sur PostgreSQL.
type ProformaRepo struct {
	q Querier
}

// NewProformaRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewProformaRepository(q Querier) *ProformaRepo {
	return &ProformaRepo{q: q}
}

// Create persiste une proforma. Renvoie domain.ErrDuplicate si le numéro est
// déjà pris, ce qui déclenche la boucle de nouvelle tentative.
func (r *ProformaRepo) Create(p *entity.Proforma) error {
	query := `
		INSERT INTO proformas (id, lab_id, dentist_id, proforma_number, date, status, tax_rate,
			subtotal, tax_amount, total, notes, delivery_note_ids, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.LabID, p.DentistID, p.ProformaNumber, p.Date, p.Status, p.TaxRate,
		p.Subtotal, p.TaxAmount, p.Total, p.Notes, p.DeliveryNoteIDs,
		p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert proforma: %w", err)
	}
	return nil
}

// GetByID récupère une proforma.
func (r *ProformaRepo) GetByID(id string) (*entity.Proforma, error) {
	var p entity.Proforma
	err := r.q.QueryRow(context.Background(),
		`SELECT `+proformaColumns+` FROM proformas WHERE id = $1`, id).Scan(
		&p.ID, &p.LabID, &p.DentistID, &p.ProformaNumber, &p.Date, &p.Status, &p.TaxRate,
		&p.Subtotal, &p.TaxAmount, &p.Total, &p.Notes, &p.DeliveryNoteIDs,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proforma: %w", err)
	}
	return &p, nil
}

// ListByLab liste les proformas d'un laboratoire, plus récentes d'abord.
func (r *ProformaRepo) ListByLab(labID string, limit, offset int) ([]*entity.Proforma, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+proformaColumns+` FROM proformas WHERE lab_id = $1
		 ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`,
		labID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list proformas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Proforma
	for rows.Next() {
		var p entity.Proforma
		if err := rows.Scan(&p.ID, &p.LabID, &p.DentistID, &p.ProformaNumber, &p.Date, &p.Status,
			&p.TaxRate, &p.Subtotal, &p.TaxAmount, &p.Total, &p.Notes, &p.DeliveryNoteIDs,
			&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan proforma: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// UpdateStatus change le statut d'une proforma.
func (r *ProformaRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE proformas SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update proforma status: %w", err)
	}
	return nil
}

// Delete supprime une proforma. Le détachement des bons est fait par
// l'appelant dans la même transaction.
func (r *ProformaRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM proformas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete proforma: %w", err)
	}
	return nil
}

// NextNumber tire le prochain numéro PRO-YYYY-NNNN via la fonction SQL.
func (r *ProformaRepo) NextNumber(labID string) (string, error) {
	var number string
	err := r.q.QueryRow(context.Background(),
		`SELECT generate_next_proforma_number($1)`, labID).Scan(&number)
	if err != nil {
		return "", fmt.Errorf("next proforma number: %w", err)
	}
	return number, nil
}
