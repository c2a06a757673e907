package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
)

var _ repository.DentistRepository = (*DentistRepo)(nil)

const dentistColumns = `id, lab_id, name, email, phone, address, notes, is_active, created_at, updated_at`

// DentistRepo implémentation du port DentistRepository sur PostgreSQL.
type DentistRepo struct {
	q Querier
}

// NewDentistRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewDentistRepository(q Querier) *DentistRepo {
	return &DentistRepo{q: q}
}

// Create persiste un nouveau cabinet.
func (r *DentistRepo) Create(d *entity.Dentist) error {
	query := `
		INSERT INTO dentists (id, lab_id, name, email, phone, address, notes, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.LabID, d.Name, d.Email, d.Phone, d.Address, d.Notes, d.IsActive,
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert dentist: %w", err)
	}
	return nil
}

// GetByID récupère un cabinet.
func (r *DentistRepo) GetByID(id string) (*entity.Dentist, error) {
	var d entity.Dentist
	err := r.q.QueryRow(context.Background(),
		`SELECT `+dentistColumns+` FROM dentists WHERE id = $1`, id).Scan(
		&d.ID, &d.LabID, &d.Name, &d.Email, &d.Phone, &d.Address, &d.Notes, &d.IsActive,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dentist: %w", err)
	}
	return &d, nil
}

// ListByLab liste les cabinets d'un laboratoire.
func (r *DentistRepo) ListByLab(labID string, limit, offset int) ([]*entity.Dentist, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+dentistColumns+` FROM dentists WHERE lab_id = $1 ORDER BY name LIMIT $2 OFFSET $3`,
		labID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list dentists: %w", err)
	}
	defer rows.Close()
	var list []*entity.Dentist
	for rows.Next() {
		var d entity.Dentist
		if err := rows.Scan(&d.ID, &d.LabID, &d.Name, &d.Email, &d.Phone, &d.Address, &d.Notes,
			&d.IsActive, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan dentist: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Update met à jour un cabinet.
func (r *DentistRepo) Update(d *entity.Dentist) error {
	query := `
		UPDATE dentists
		SET name = $2, email = $3, phone = $4, address = $5, notes = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.Name, d.Email, d.Phone, d.Address, d.Notes, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update dentist: %w", err)
	}
	return nil
}

// SetActive active ou désactive un cabinet.
func (r *DentistRepo) SetActive(id string, active bool) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE dentists SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set dentist active: %w", err)
	}
	return nil
}
