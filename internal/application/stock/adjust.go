package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dentalcloud/dentalcloud-api/internal/domain"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
)

// Adjust applique un delta signé au stock propre d'un article du catalogue,
// avec garde de stock négatif et une écriture d'audit. Refusé si l'article
// n'active pas le suivi de stock.
func (l *Ledger) Adjust(ctx context.Context, labID, userID, catalogItemID string, delta decimal.Decimal, notes string) error {
	return l.txRunner.Run(ctx, func(
		catalogRepo repository.CatalogRepository,
		_ repository.ResourceRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		ci, err := catalogRepo.GetForUpdate(catalogItemID)
		if err != nil {
			return err
		}
		if ci == nil {
			return fmt.Errorf("article non trouvé: %w", domain.ErrNotFound)
		}
		if !ci.TracksStock {
			return domain.ErrStockNotTracked
		}
		newQty := ci.StockQuantity.Add(delta)
		if newQty.IsNegative() {
			return domain.ErrNegativeStock
		}
		if err := catalogRepo.UpdateStock(catalogItemID, newQty); err != nil {
			return err
		}
		m := &entity.StockMovement{
			ID:            uuid.New().String(),
			LabID:         labID,
			CatalogItemID: catalogItemID,
			MovementType:  entity.MovementTypeAdjustment,
			Quantity:      delta,
			Notes:         notes,
			StockApplied:  true,
			CreatedBy:     userID,
			CreatedAt:     time.Now(),
		}
		return movementRepo.Create(m)
	})
}

// ResourceMovementInput entrée ou sortie directe sur une ressource ou une
// de ses variantes (réception de commande, casse, inventaire).
type ResourceMovementInput struct {
	ResourceID string
	VariantID  string
	Type       string // in | out
	Quantity   decimal.Decimal
	Notes      string
}

// RegisterResourceMovement applique un mouvement direct sur une ressource ou
// une variante, avec la même garde de stock négatif que les déductions.
func (l *Ledger) RegisterResourceMovement(ctx context.Context, labID, userID string, in ResourceMovementInput) error {
	if in.ResourceID == "" || !in.Quantity.IsPositive() {
		return domain.ErrInvalidInput
	}
	if in.Type != entity.MovementTypeIn && in.Type != entity.MovementTypeOut {
		return domain.ErrInvalidInput
	}
	return l.txRunner.Run(ctx, func(
		_ repository.CatalogRepository,
		resourceRepo repository.ResourceRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		acc := accounts{resource: resourceRepo}
		res, err := resourceRepo.GetForUpdate(in.ResourceID)
		if err != nil {
			return err
		}
		if res == nil {
			return domain.ErrNotFound
		}

		var acct Account
		if in.VariantID != "" {
			v, err := resourceRepo.GetVariantForUpdate(in.VariantID)
			if err != nil {
				return err
			}
			if v == nil {
				return domain.ErrNotFound
			}
			acct = Account{Kind: AccountResourceVariant, ID: v.ID, Name: res.Name, VariantName: v.VariantName}
		} else {
			if res.HasVariants {
				return &MissingVariantError{ResourceName: res.Name}
			}
			acct = Account{Kind: AccountResource, ID: res.ID, Name: res.Name}
		}

		if in.Type == entity.MovementTypeOut {
			if _, err := acc.debit(acct, in.Quantity); err != nil {
				return err
			}
		} else {
			if _, err := acc.credit(acct, in.Quantity); err != nil {
				return err
			}
		}

		m := &entity.StockMovement{
			ID:                uuid.New().String(),
			LabID:             labID,
			ResourceID:        in.ResourceID,
			ResourceVariantID: in.VariantID,
			MovementType:      in.Type,
			Quantity:          in.Quantity,
			Notes:             in.Notes,
			StockApplied:      true,
			CreatedBy:         userID,
			CreatedAt:         time.Now(),
		}
		return movementRepo.Create(m)
	})
}
