package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ResourceLink lien de nomenclature dans les entrées/sorties catalogue.
type ResourceLink struct {
	ResourceID     string          `json:"resource_id" validate:"required,uuid"`
	QuantityNeeded decimal.Decimal `json:"quantity_needed"`
}

// CreateCatalogItemRequest entrée pour créer un article du catalogue.
type CreateCatalogItemRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description"`
	DefaultUnit  string          `json:"default_unit" validate:"required"`
	DefaultPrice decimal.Decimal `json:"default_price"`
	TracksStock  bool            `json:"tracks_stock"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	AlertLevel   decimal.Decimal `json:"alert_level"`
	Resources    []ResourceLink  `json:"resources"`
}

// UpdateCatalogItemRequest entrée de mise à jour. Le stock propre ne se
// modifie pas ici : uniquement par ajustement manuel, pour garder une
// écriture par changement.
type UpdateCatalogItemRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description"`
	DefaultUnit  *string          `json:"default_unit"`
	DefaultPrice *decimal.Decimal `json:"default_price"`
	TracksStock  *bool            `json:"tracks_stock"`
	AlertLevel   *decimal.Decimal `json:"alert_level"`
	Resources    []ResourceLink   `json:"resources"`
}

// CatalogItemResponse sortie d'un article.
type CatalogItemResponse struct {
	ID            string          `json:"id"`
	LabID         string          `json:"lab_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	DefaultUnit   string          `json:"default_unit"`
	DefaultPrice  decimal.Decimal `json:"default_price"`
	TracksStock   bool            `json:"tracks_stock"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	AlertLevel    decimal.Decimal `json:"alert_level"`
	IsActive      bool            `json:"is_active"`
	Resources     []ResourceLink  `json:"resources,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CatalogItemListResponse liste paginée d'articles.
type CatalogItemListResponse struct {
	Items []CatalogItemResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// CreateResourceRequest entrée pour créer une ressource (matière première).
type CreateResourceRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Category      string          `json:"category"`
	Unit          string          `json:"unit"`
	HasVariants   bool            `json:"has_variants"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	AlertLevel    decimal.Decimal `json:"alert_level"`
}

// UpdateResourceRequest entrée de mise à jour d'une ressource.
type UpdateResourceRequest struct {
	Name       *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category   *string          `json:"category"`
	Unit       *string          `json:"unit"`
	AlertLevel *decimal.Decimal `json:"alert_level"`
}

// ResourceVariantResponse sortie d'une variante.
type ResourceVariantResponse struct {
	ID            string          `json:"id"`
	ResourceID    string          `json:"resource_id"`
	Subcategory   string          `json:"subcategory"`
	VariantName   string          `json:"variant_name"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
}

// ResourceResponse sortie d'une ressource avec ses variantes.
type ResourceResponse struct {
	ID            string                    `json:"id"`
	LabID         string                    `json:"lab_id"`
	Name          string                    `json:"name"`
	Category      string                    `json:"category"`
	Unit          string                    `json:"unit"`
	HasVariants   bool                      `json:"has_variants"`
	StockQuantity decimal.Decimal           `json:"stock_quantity"`
	AlertLevel    decimal.Decimal           `json:"alert_level"`
	Variants      []ResourceVariantResponse `json:"variants,omitempty"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}

// ResourceListResponse liste paginée de ressources.
type ResourceListResponse struct {
	Items []ResourceResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateResourceVariantRequest entrée pour créer une variante (teinte, taille...).
type CreateResourceVariantRequest struct {
	Subcategory   string          `json:"subcategory"`
	VariantName   string          `json:"variant_name" validate:"required,min=1,max=200"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
}
