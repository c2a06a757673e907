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

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, lab_id, email, password_hash, name, role, status, created_at, updated_at`

// UserRepo implémentation du port UserRepository sur PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nouvel utilisateur.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, lab_id, email, password_hash, name, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.LabID, user.Email, user.PasswordHash, user.Name, user.Role,
		user.Status, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID récupère un utilisateur par ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindByEmail récupère un utilisateur par email, tous laboratoires confondus
// (connexion et réinitialisation de mot de passe).
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// GetByEmailAndLab récupère un utilisateur par email au sein d'un laboratoire.
func (r *UserRepo) GetByEmailAndLab(email, labID string) (*entity.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE email = $1 AND lab_id = $2`, email, labID)
}

func (r *UserRepo) getOne(query string, args ...any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&u.ID, &u.LabID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Status,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// UpdatePassword remplace le hash du mot de passe.
func (r *UserRepo) UpdatePassword(userID, passwordHash string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`,
		userID, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return nil
}

// CreateResetCode persiste un code de réinitialisation haché.
func (r *UserRepo) CreateResetCode(code *entity.PasswordResetCode) error {
	query := `
		INSERT INTO password_reset_codes (id, user_id, code_hash, expires_at, used_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		code.ID, code.UserID, code.CodeHash, code.ExpiresAt, code.UsedAt, code.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert reset code: %w", err)
	}
	return nil
}

// GetActiveResetCode dernier code non utilisé et non expiré d'un utilisateur.
func (r *UserRepo) GetActiveResetCode(userID string) (*entity.PasswordResetCode, error) {
	query := `
		SELECT id, user_id, code_hash, expires_at, used_at, created_at
		FROM password_reset_codes
		WHERE user_id = $1 AND used_at IS NULL AND expires_at > now()
		ORDER BY created_at DESC LIMIT 1`
	var c entity.PasswordResetCode
	err := r.q.QueryRow(context.Background(), query, userID).Scan(
		&c.ID, &c.UserID, &c.CodeHash, &c.ExpiresAt, &c.UsedAt, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reset code: %w", err)
	}
	return &c, nil
}

// MarkResetCodeUsed marque un code comme consommé.
func (r *UserRepo) MarkResetCodeUsed(codeID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE password_reset_codes SET used_at = now() WHERE id = $1`, codeID)
	if err != nil {
		return fmt.Errorf("mark reset code used: %w", err)
	}
	return nil
}
