package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest ajustement manuel du stock propre d'un article.
// Quantity est signée : positive pour une entrée, négative pour une sortie.
type AdjustStockRequest struct {
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
	Notes    string          `json:"notes"`
}

// ResourceMovementRequest entrée ou sortie directe sur une ressource
// (réception de commande, casse, inventaire).
type ResourceMovementRequest struct {
	VariantID string          `json:"variant_id"`
	Type      string          `json:"type" validate:"required,oneof=in out"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	Notes     string          `json:"notes"`
}

// StockMovementResponse écriture du grand livre de stock.
type StockMovementResponse struct {
	ID                string          `json:"id"`
	CatalogItemID     string          `json:"catalog_item_id,omitempty"`
	ResourceID        string          `json:"resource_id,omitempty"`
	ResourceVariantID string          `json:"resource_variant_id,omitempty"`
	DeliveryNoteID    string          `json:"delivery_note_id,omitempty"`
	ReferenceType     string          `json:"reference_type,omitempty"`
	ReferenceID       string          `json:"reference_id,omitempty"`
	MovementType      string          `json:"movement_type"`
	Quantity          decimal.Decimal `json:"quantity"`
	Notes             string          `json:"notes,omitempty"`
	Reversed          bool            `json:"reversed"`
	CreatedBy         string          `json:"created_by"`
	CreatedAt         time.Time       `json:"created_at"`
}

// StockMovementListResponse liste paginée d'écritures.
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
