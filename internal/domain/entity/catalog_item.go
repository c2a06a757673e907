package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogItem représente un article produit/vendu par le laboratoire
// (couronne, bridge, gouttière...). Le stock propre n'est suivi que si
// TracksStock est vrai ; sinon le stock vit sur les ressources liées.
// Jamais supprimé tant que des documents l'y référencent : IsActive à false.
type CatalogItem struct {
	ID            string
	LabID         string
	Name          string
	Description   string
	DefaultUnit   string
	DefaultPrice  decimal.Decimal
	TracksStock   bool
	StockQuantity decimal.Decimal
	AlertLevel    decimal.Decimal // seuil d'alerte stock bas
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CatalogItemResource lien nomenclature : quantité de ressource consommée
// pour produire une unité de l'article.
type CatalogItemResource struct {
	CatalogItemID  string
	ResourceID     string
	QuantityNeeded decimal.Decimal // > 0
}
