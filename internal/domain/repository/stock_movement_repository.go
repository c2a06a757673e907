package repository

import "github.com/dentalcloud/dentalcloud-api/internal/domain/entity"

// StockMovementRepository port de persistance du grand livre de stock.
// Les écritures sont append-only : jamais de mise à jour de quantité ni de
// suppression, seul le marqueur Reversed est posé lors d'une restauration.
type StockMovementRepository interface {
	Create(m *entity.StockMovement) error

	// ListCatalogMovementsForNote écritures de la série article
	// (movement_type = delivery_note) non compensées pour un bon de livraison.
	ListCatalogMovementsForNote(deliveryNoteID string) ([]*entity.StockMovement, error)
	// ListResourceMovementsForNote écritures de la série ressource
	// (movement_type = out, reference = bon) non compensées.
	ListResourceMovementsForNote(deliveryNoteID string) ([]*entity.StockMovement, error)
	MarkReversed(id string) error

	ListByCatalogItem(catalogItemID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByResource(resourceID string, limit, offset int) ([]*entity.StockMovement, error)
}
