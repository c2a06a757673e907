package entity

import "time"

// Rôles utilisateurs au sein d'un laboratoire.
const (
	RoleAdmin       = "admin"
	RoleProthesiste = "prothesiste"
	RoleAssistant   = "assistant"
)

// User représente un utilisateur rattaché à un laboratoire (tenant).
type User struct {
	ID           string
	LabID        string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin, prothesiste, assistant
	Status       string // active, disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PasswordResetCode code de réinitialisation à 6 chiffres, haché en base, expirant.
type PasswordResetCode struct {
	ID        string
	UserID    string
	CodeHash  string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}
