package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProformaRequest regroupe des bons de livraison d'un même dentiste
// dans une proforma. Le numéro est attribué par le serveur.
type CreateProformaRequest struct {
	DentistID       string          `json:"dentist_id" validate:"required,uuid"`
	DeliveryNoteIDs []string        `json:"delivery_note_ids" validate:"required,min=1"`
	Date            time.Time       `json:"date"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	Notes           string          `json:"notes"`
}

// UpdateProformaStatusRequest changement de statut d'une proforma.
type UpdateProformaStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent accepted invoiced"`
}

// ProformaResponse sortie d'une proforma.
type ProformaResponse struct {
	ID              string          `json:"id"`
	LabID           string          `json:"lab_id"`
	DentistID       string          `json:"dentist_id"`
	ProformaNumber  string          `json:"proforma_number"`
	Date            time.Time       `json:"date"`
	Status          string          `json:"status"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	Total           decimal.Decimal `json:"total"`
	Notes           string          `json:"notes,omitempty"`
	DeliveryNoteIDs []string        `json:"delivery_note_ids"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProformaListResponse liste paginée de proformas.
type ProformaListResponse struct {
	Items []ProformaResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateInvoiceRequest crée une facture depuis une proforma acceptée
// (proforma_id) ou directement depuis des bons de livraison.
type CreateInvoiceRequest struct {
	ProformaID      string          `json:"proforma_id"`
	DentistID       string          `json:"dentist_id"`
	DeliveryNoteIDs []string        `json:"delivery_note_ids"`
	Date            time.Time       `json:"date"`
	DueDate         *time.Time      `json:"due_date"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	Notes           string          `json:"notes"`
}

// UpdateInvoiceStatusRequest changement de statut d'une facture.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent paid"`
}

// InvoiceResponse sortie d'une facture.
type InvoiceResponse struct {
	ID              string          `json:"id"`
	LabID           string          `json:"lab_id"`
	DentistID       string          `json:"dentist_id"`
	InvoiceNumber   string          `json:"invoice_number"`
	ProformaID      string          `json:"proforma_id,omitempty"`
	Date            time.Time       `json:"date"`
	DueDate         *time.Time      `json:"due_date,omitempty"`
	Status          string          `json:"status"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	Total           decimal.Decimal `json:"total"`
	Notes           string          `json:"notes,omitempty"`
	DeliveryNoteIDs []string        `json:"delivery_note_ids"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// InvoiceListResponse liste paginée de factures.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// SendDocumentRequest envoi d'un document PDF par email au dentiste.
type SendDocumentRequest struct {
	To      string `json:"to" validate:"omitempty,email"` // par défaut l'email du dentiste
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SendDocumentResponse résultat d'envoi : success à false avec un message
// plutôt qu'une erreur HTTP, l'échec d'email n'étant pas bloquant côté client.
type SendDocumentResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
