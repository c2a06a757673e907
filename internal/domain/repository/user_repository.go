package repository

import "github.com/dentalcloud/dentalcloud-api/internal/domain/entity"

// UserRepository port de persistance des utilisateurs et des codes de
// réinitialisation de mot de passe.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	GetByEmailAndLab(email, labID string) (*entity.User, error)
	UpdatePassword(userID, passwordHash string) error

	CreateResetCode(code *entity.PasswordResetCode) error
	GetActiveResetCode(userID string) (*entity.PasswordResetCode, error)
	MarkResetCodeUsed(codeID string) error
}
