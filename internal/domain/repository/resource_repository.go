package repository

import (
	"github.com/shopspring/decimal"

	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
)

// ResourceRepository port de persistance des ressources (matières premières)
// et de leurs variantes. Les méthodes *ForUpdate verrouillent la ligne
// (SELECT FOR UPDATE) pour les mises à jour de stock transactionnelles.
type ResourceRepository interface {
	Create(r *entity.Resource) error
	GetByID(id string) (*entity.Resource, error)
	GetForUpdate(id string) (*entity.Resource, error)
	ListByLab(labID string, limit, offset int) ([]*entity.Resource, error)
	Update(r *entity.Resource) error
	UpdateStock(id string, quantity decimal.Decimal) error

	CreateVariant(v *entity.ResourceVariant) error
	GetVariant(id string) (*entity.ResourceVariant, error)
	GetVariantForUpdate(id string) (*entity.ResourceVariant, error)
	ListVariants(resourceID string) ([]*entity.ResourceVariant, error)
	UpdateVariantStock(id string, quantity decimal.Decimal) error
}
