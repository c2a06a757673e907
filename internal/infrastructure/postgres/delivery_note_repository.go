package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dentalcloud/dentalcloud-api/internal/domain"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
)

var _ repository.DeliveryNoteRepository = (*DeliveryNoteRepo)(nil)

const deliveryNoteColumns = `id, lab_id, dentist_id, delivery_number, date, patient_name,
	prescription_date, items, stage, proforma_id, notes, created_by, created_at, updated_at`

// DeliveryNoteRepo implémentation du port DeliveryNoteRepository sur
// PostgreSQL. Les lignes sont stockées en JSONB : elles sont immuables après
// création et toujours lues d'un bloc.
type DeliveryNoteRepo struct {
	q Querier
}

// NewDeliveryNoteRepository construit l'adaptateur. Passer pool ou tx.
func NewDeliveryNoteRepository(q Querier) *DeliveryNoteRepo {
	return &DeliveryNoteRepo{q: q}
}

// Create persiste un nouveau bon de livraison.
func (r *DeliveryNoteRepo) Create(n *entity.DeliveryNote) error {
	items, err := json.Marshal(n.Items)
	if err != nil {
		return fmt.Errorf("marshal delivery note items: %w", err)
	}
	query := `
		INSERT INTO delivery_notes (id, lab_id, dentist_id, delivery_number, date, patient_name,
			prescription_date, items, stage, proforma_id, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = r.q.Exec(context.Background(), query,
		n.ID, n.LabID, n.DentistID, n.DeliveryNumber, n.Date, n.PatientName,
		n.PrescriptionDate, items, n.Stage, nullable(n.ProformaID), n.Notes,
		n.CreatedBy, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert delivery note: %w", err)
	}
	return nil
}

// GetByID récupère un bon de livraison.
func (r *DeliveryNoteRepo) GetByID(id string) (*entity.DeliveryNote, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+deliveryNoteColumns+` FROM delivery_notes WHERE id = $1`, id)
	n, err := scanDeliveryNote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return n, nil
}

// List liste les bons d'un laboratoire selon les filtres.
func (r *DeliveryNoteRepo) List(labID string, f repository.DeliveryNoteFilter) ([]*entity.DeliveryNote, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + deliveryNoteColumns + ` FROM delivery_notes WHERE lab_id = $1`)
	args := []any{labID}

	add := func(clause string, v any) {
		args = append(args, v)
		sb.WriteString(fmt.Sprintf(" AND %s $%d", clause, len(args)))
	}
	if f.DentistID != "" {
		add("dentist_id =", f.DentistID)
	}
	if f.Stage != "" {
		add("stage =", f.Stage)
	}
	if f.From != nil {
		add("date >=", *f.From)
	}
	if f.To != nil {
		add("date <=", *f.To)
	}
	if f.Unbilled {
		sb.WriteString(" AND proforma_id IS NULL")
	}
	args = append(args, f.Limit, f.Offset)
	sb.WriteString(fmt.Sprintf(" ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args)))

	rows, err := r.q.Query(context.Background(), sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list delivery notes: %w", err)
	}
	defer rows.Close()
	var list []*entity.DeliveryNote
	for rows.Next() {
		n, err := scanDeliveryNote(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// Update met à jour les métadonnées d'un bon (jamais les lignes).
func (r *DeliveryNoteRepo) Update(n *entity.DeliveryNote) error {
	query := `
		UPDATE delivery_notes
		SET patient_name = $2, prescription_date = $3, notes = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		n.ID, n.PatientName, n.PrescriptionDate, n.Notes, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update delivery note: %w", err)
	}
	return nil
}

// UpdateStage déplace un bon vers une autre étape de production.
func (r *DeliveryNoteRepo) UpdateStage(id, stage string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE delivery_notes SET stage = $2, updated_at = now() WHERE id = $1`, id, stage)
	if err != nil {
		return fmt.Errorf("update delivery note stage: %w", err)
	}
	return nil
}

// SetProformaID rattache ou détache (proformaID vide) un bon d'une proforma.
func (r *DeliveryNoteRepo) SetProformaID(id, proformaID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE delivery_notes SET proforma_id = $2, updated_at = now() WHERE id = $1`,
		id, nullable(proformaID))
	if err != nil {
		return fmt.Errorf("set delivery note proforma: %w", err)
	}
	return nil
}

// Delete supprime un bon. La restauration du stock est faite par l'appelant
// dans la même transaction.
func (r *DeliveryNoteRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM delivery_notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete delivery note: %w", err)
	}
	return nil
}

// NextNumber tire le prochain numéro BL-YYYY-NNNN via la fonction SQL, qui
// incrémente la séquence du laboratoire de façon atomique.
func (r *DeliveryNoteRepo) NextNumber(labID string) (string, error) {
	var number string
	err := r.q.QueryRow(context.Background(),
		`SELECT generate_next_delivery_number($1)`, labID).Scan(&number)
	if err != nil {
		return "", fmt.Errorf("next delivery number: %w", err)
	}
	return number, nil
}

func scanDeliveryNote(row pgx.Row) (*entity.DeliveryNote, error) {
	var n entity.DeliveryNote
	var items []byte
	var proformaID *string
	err := row.Scan(
		&n.ID, &n.LabID, &n.DentistID, &n.DeliveryNumber, &n.Date, &n.PatientName,
		&n.PrescriptionDate, &items, &n.Stage, &proformaID, &n.Notes,
		&n.CreatedBy, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan delivery note: %w", err)
	}
	if err := json.Unmarshal(items, &n.Items); err != nil {
		return nil, fmt.Errorf("unmarshal delivery note items: %w", err)
	}
	n.ProformaID = deref(proformaID)
	return &n, nil
}
