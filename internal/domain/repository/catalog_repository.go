package repository

import (
	"github.com/shopspring/decimal"

	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
)

// CatalogRepository port de persistance des articles du catalogue et de leur
// nomenclature (liens article -> ressources).
// GetForUpdate verrouille la ligne (SELECT FOR UPDATE) : à utiliser dans une
// transaction pour toute séquence lecture-calcul-écriture du stock.
type CatalogRepository interface {
	Create(item *entity.CatalogItem) error
	GetByID(id string) (*entity.CatalogItem, error)
	GetForUpdate(id string) (*entity.CatalogItem, error)
	ListByLab(labID string, activeOnly bool, limit, offset int) ([]*entity.CatalogItem, error)
	Update(item *entity.CatalogItem) error
	UpdateStock(id string, quantity decimal.Decimal) error
	SetActive(id string, active bool) error

	ListResources(catalogItemID string) ([]*entity.CatalogItemResource, error)
	ReplaceResources(catalogItemID string, edges []*entity.CatalogItemResource) error
}
