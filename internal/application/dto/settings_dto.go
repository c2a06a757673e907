package dto

import "time"

// UpdateLabRequest mise à jour des coordonnées du laboratoire. Elles
// alimentent les PDF et le certificat de conformité CE.
type UpdateLabRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address        *string `json:"address"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email" validate:"omitempty,email"`
	LogoURL        *string `json:"logo_url"`
	SIRET          *string `json:"siret"`
	RCS            *string `json:"rcs"`
	IBAN           *string `json:"iban"`
	BIC            *string `json:"bic"`
	ComplianceText *string `json:"compliance_text"`
}

// LabResponse sortie des coordonnées du laboratoire.
type LabResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	LogoURL        string    `json:"logo_url"`
	SIRET          string    `json:"siret"`
	RCS            string    `json:"rcs"`
	IBAN           string    `json:"iban"`
	BIC            string    `json:"bic"`
	ComplianceText string    `json:"compliance_text"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UpdateSMTPSettingsRequest configuration d'envoi d'emails.
type UpdateSMTPSettingsRequest struct {
	Host      string `json:"host" validate:"required"`
	Port      int    `json:"port" validate:"required,min=1,max=65535"`
	Secure    bool   `json:"secure"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FromEmail string `json:"from_email" validate:"required,email"`
	FromName  string `json:"from_name"`
	IsActive  bool   `json:"is_active"`
}

// SMTPSettingsResponse sortie de la configuration SMTP (sans mot de passe).
type SMTPSettingsResponse struct {
	Host      string    `json:"host"`
	Port      int       `json:"port"`
	Secure    bool      `json:"secure"`
	Username  string    `json:"username"`
	FromEmail string    `json:"from_email"`
	FromName  string    `json:"from_name"`
	IsActive  bool      `json:"is_active"`
	UpdatedAt time.Time `json:"updated_at"`
}
