package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Resource représente une matière première consommée par les articles du
// catalogue (poudre céramique, disque zircone...).
// Si HasVariants est vrai, le StockQuantity propre n'est pas autoritatif :
// le stock vit sur les variantes. Les deux ne sont jamais réconciliés
// automatiquement.
type Resource struct {
	ID            string
	LabID         string
	Name          string
	Category      string
	Unit          string
	HasVariants   bool
	StockQuantity decimal.Decimal
	AlertLevel    decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ResourceVariant déclinaison concrète (SKU) d'une ressource : teinte, taille...
type ResourceVariant struct {
	ID            string
	ResourceID    string
	Subcategory   string
	VariantName   string
	StockQuantity decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
