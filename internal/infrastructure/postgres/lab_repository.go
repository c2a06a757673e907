package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
)

var _ repository.LabRepository = (*LabRepo)(nil)
var _ repository.SettingsRepository = (*LabRepo)(nil)

// LabRepo implémentation des ports LabRepository et SettingsRepository sur
// PostgreSQL : la configuration SMTP est rattachée au laboratoire.
type LabRepo struct {
	q Querier
}

// NewLabRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewLabRepository(q Querier) *LabRepo {
	return &LabRepo{q: q}
}

// Create persiste un nouveau laboratoire.
func (r *LabRepo) Create(lab *entity.Lab) error {
	query := `
		INSERT INTO labs (id, name, address, phone, email, logo_url, siret, rcs, iban, bic,
			compliance_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		lab.ID, lab.Name, lab.Address, lab.Phone, lab.Email, lab.LogoURL,
		lab.SIRET, lab.RCS, lab.IBAN, lab.BIC, lab.ComplianceText,
		lab.CreatedAt, lab.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lab: %w", err)
	}
	return nil
}

// GetByID récupère un laboratoire.
func (r *LabRepo) GetByID(id string) (*entity.Lab, error) {
	query := `
		SELECT id, name, address, phone, email, logo_url, siret, rcs, iban, bic,
			compliance_text, created_at, updated_at
		FROM labs WHERE id = $1`
	var lab entity.Lab
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&lab.ID, &lab.Name, &lab.Address, &lab.Phone, &lab.Email, &lab.LogoURL,
		&lab.SIRET, &lab.RCS, &lab.IBAN, &lab.BIC, &lab.ComplianceText,
		&lab.CreatedAt, &lab.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lab: %w", err)
	}
	return &lab, nil
}

// Update met à jour les coordonnées du laboratoire.
func (r *LabRepo) Update(lab *entity.Lab) error {
	query := `
		UPDATE labs
		SET name = $2, address = $3, phone = $4, email = $5, logo_url = $6,
			siret = $7, rcs = $8, iban = $9, bic = $10, compliance_text = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		lab.ID, lab.Name, lab.Address, lab.Phone, lab.Email, lab.LogoURL,
		lab.SIRET, lab.RCS, lab.IBAN, lab.BIC, lab.ComplianceText, lab.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lab: %w", err)
	}
	return nil
}

// GetSMTPSettings configuration SMTP du laboratoire, nil si absente.
func (r *LabRepo) GetSMTPSettings(labID string) (*entity.SMTPSettings, error) {
	query := `
		SELECT id, lab_id, host, port, secure, username, password, from_email, from_name,
			is_active, updated_at
		FROM smtp_settings WHERE lab_id = $1`
	var s entity.SMTPSettings
	err := r.q.QueryRow(context.Background(), query, labID).Scan(
		&s.ID, &s.LabID, &s.Host, &s.Port, &s.Secure, &s.Username, &s.Password,
		&s.FromEmail, &s.FromName, &s.IsActive, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get smtp settings: %w", err)
	}
	return &s, nil
}

// UpsertSMTPSettings crée ou remplace la configuration SMTP du laboratoire.
func (r *LabRepo) UpsertSMTPSettings(s *entity.SMTPSettings) error {
	query := `
		INSERT INTO smtp_settings (id, lab_id, host, port, secure, username, password,
			from_email, from_name, is_active, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (lab_id) DO UPDATE SET
			host = EXCLUDED.host, port = EXCLUDED.port, secure = EXCLUDED.secure,
			username = EXCLUDED.username, password = EXCLUDED.password,
			from_email = EXCLUDED.from_email, from_name = EXCLUDED.from_name,
			is_active = EXCLUDED.is_active, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.LabID, s.Host, s.Port, s.Secure, s.Username, s.Password,
		s.FromEmail, s.FromName, s.IsActive, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert smtp settings: %w", err)
	}
	return nil
}
