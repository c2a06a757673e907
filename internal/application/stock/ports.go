package stock

import (
	"context"

	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
)

// TxRunner exécute une fonction dans une transaction de base de données, en
// passant des repositories liés à cette transaction. Garantit l'atomicité du
// grand livre : toute erreur annule l'ensemble des écritures de l'appel.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		catalogRepo repository.CatalogRepository,
		resourceRepo repository.ResourceRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
