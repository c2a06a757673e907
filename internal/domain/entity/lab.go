package entity

import "time"

// Lab représente un laboratoire de prothèse dentaire (tenant).
// Les coordonnées alimentent les PDF (bons de livraison, proformas, factures)
// et le certificat de conformité CE.
type Lab struct {
	ID             string
	Name           string
	Address        string
	Phone          string
	Email          string
	LogoURL        string
	SIRET          string
	RCS            string // mention d'immatriculation en pied de page
	IBAN           string
	BIC            string
	ComplianceText string // texte libre ajouté au certificat de conformité
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SMTPSettings configuration d'envoi d'emails, persistée en base (écran admin).
type SMTPSettings struct {
	ID        string
	LabID     string
	Host      string
	Port      int
	Secure    bool // TLS implicite (port 465)
	Username  string
	Password  string
	FromEmail string
	FromName  string
	IsActive  bool
	UpdatedAt time.Time
}
