package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryNoteItemRequest ligne de bon de livraison en entrée.
// ResourceVariants associe resource_id -> resource_variant_id pour les
// ressources à variantes de la nomenclature de l'article.
type DeliveryNoteItemRequest struct {
	CatalogItemID    string            `json:"catalog_item_id" validate:"required,uuid"`
	Description      string            `json:"description"`
	Quantity         decimal.Decimal   `json:"quantity" validate:"required"`
	Unit             string            `json:"unit"`
	UnitPrice        decimal.Decimal   `json:"unit_price"`
	Shade            string            `json:"shade"`
	ToothNumber      string            `json:"tooth_number"`
	ResourceVariants map[string]string `json:"resource_variants"`
}

// CreateDeliveryNoteRequest entrée pour créer un bon de livraison. La
// création déduit le stock dans la même transaction que l'insertion.
type CreateDeliveryNoteRequest struct {
	DentistID        string                    `json:"dentist_id" validate:"required,uuid"`
	Date             time.Time                 `json:"date"`
	PatientName      string                    `json:"patient_name"`
	PrescriptionDate *time.Time                `json:"prescription_date"`
	Items            []DeliveryNoteItemRequest `json:"items" validate:"required,min=1"`
	Notes            string                    `json:"notes"`
}

// UpdateDeliveryNoteRequest mise à jour des métadonnées d'un bon. Les lignes
// ne se modifient pas après création : supprimer puis recréer.
type UpdateDeliveryNoteRequest struct {
	PatientName      *string    `json:"patient_name"`
	PrescriptionDate *time.Time `json:"prescription_date"`
	Notes            *string    `json:"notes"`
}

// DeliveryNoteItemResponse ligne de bon en sortie.
type DeliveryNoteItemResponse struct {
	CatalogItemID    string            `json:"catalog_item_id"`
	Description      string            `json:"description"`
	Quantity         decimal.Decimal   `json:"quantity"`
	Unit             string            `json:"unit"`
	UnitPrice        decimal.Decimal   `json:"unit_price"`
	Shade            string            `json:"shade,omitempty"`
	ToothNumber      string            `json:"tooth_number,omitempty"`
	ResourceVariants map[string]string `json:"resource_variants,omitempty"`
}

// DeliveryNoteResponse sortie d'un bon de livraison.
type DeliveryNoteResponse struct {
	ID               string                     `json:"id"`
	LabID            string                     `json:"lab_id"`
	DentistID        string                     `json:"dentist_id"`
	DeliveryNumber   string                     `json:"delivery_number"`
	Date             time.Time                  `json:"date"`
	PatientName      string                     `json:"patient_name"`
	PrescriptionDate *time.Time                 `json:"prescription_date,omitempty"`
	Items            []DeliveryNoteItemResponse `json:"items"`
	Stage            string                     `json:"stage"`
	ProformaID       string                     `json:"proforma_id,omitempty"`
	Total            decimal.Decimal            `json:"total"`
	Notes            string                     `json:"notes,omitempty"`
	CreatedAt        time.Time                  `json:"created_at"`
	UpdatedAt        time.Time                  `json:"updated_at"`
}

// DeliveryNoteListResponse liste paginée de bons.
type DeliveryNoteListResponse struct {
	Items []DeliveryNoteResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// DeliveryNoteFilterRequest filtres des listages de bons.
type DeliveryNoteFilterRequest struct {
	PageRequest
	DentistID string `query:"dentist_id"`
	Stage     string `query:"stage"`
	From      string `query:"from"` // YYYY-MM-DD
	To        string `query:"to"`
	Unbilled  bool   `query:"unbilled"` // uniquement les bons sans proforma
}
