package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statuts d'une proforma.
const (
	ProformaStatusDraft    = "draft"
	ProformaStatusSent     = "sent"
	ProformaStatusAccepted = "accepted"
	ProformaStatusInvoiced = "invoiced"
)

// Proforma facture pro forma regroupant un ou plusieurs bons de livraison
// d'un même dentiste sur une période.
type Proforma struct {
	ID             string
	LabID          string
	DentistID      string
	ProformaNumber string // PRO-YYYY-NNNN, unique par laboratoire
	Date           time.Time
	Status         string
	TaxRate        decimal.Decimal // 0 par défaut : exonération art. 261-4-1° CGI
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
	Notes          string
	DeliveryNoteIDs []string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Statuts d'une facture.
const (
	InvoiceStatusDraft = "draft"
	InvoiceStatusSent  = "sent"
	InvoiceStatusPaid  = "paid"
)

// Invoice facture définitive, créée depuis une proforma acceptée ou
// directement depuis des bons de livraison.
type Invoice struct {
	ID            string
	LabID         string
	DentistID     string
	InvoiceNumber string // FAC-YYYY-NNNN, unique par laboratoire
	ProformaID    string // vide si émise directement
	Date          time.Time
	DueDate       *time.Time
	Status        string
	TaxRate       decimal.Decimal
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	Total         decimal.Decimal
	Notes         string
	DeliveryNoteIDs []string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
