package dto

import "time"

// CreateDentistRequest entrée pour créer un cabinet dentaire client.
type CreateDentistRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// UpdateDentistRequest entrée de mise à jour (champs optionnels).
type UpdateDentistRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

// DentistResponse sortie d'un cabinet dentaire.
type DentistResponse struct {
	ID        string    `json:"id"`
	LabID     string    `json:"lab_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DentistListResponse liste paginée de cabinets.
type DentistListResponse struct {
	Items []DentistResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
