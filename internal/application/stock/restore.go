package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
)

// RestoreForDeliveryNote annule les effets de stock d'un bon de livraison en
// relisant l'historique des écritures, pas la liste des lignes : modifier le
// bon après déduction ne change pas ce qui est restauré. Chaque écriture
// restaurée est marquée Reversed dans la même transaction ; un second appel
// ne trouve plus rien à compenser et est un no-op (restauration
// au-plus-une-fois).
func (l *Ledger) RestoreForDeliveryNote(ctx context.Context, labID, userID, deliveryNoteID string) error {
	return l.txRunner.Run(ctx, func(
		catalogRepo repository.CatalogRepository,
		resourceRepo repository.ResourceRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		return l.RestoreInTx(catalogRepo, resourceRepo, movementRepo, labID, userID, deliveryNoteID)
	})
}

// RestoreInTx même restauration avec des repositories déjà liés à une
// transaction en cours : permet de supprimer le bon et de restaurer le
// stock dans la même transaction.
func (l *Ledger) RestoreInTx(
	catalogRepo repository.CatalogRepository,
	resourceRepo repository.ResourceRepository,
	movementRepo repository.StockMovementRepository,
	labID, userID, deliveryNoteID string,
) error {
	acc := accounts{catalog: catalogRepo, resource: resourceRepo}
	now := time.Now()

	// Série article : écritures de déduction (type delivery_note).
	catalogMovs, err := movementRepo.ListCatalogMovementsForNote(deliveryNoteID)
	if err != nil {
		return fmt.Errorf("lecture des mouvements article: %w", err)
	}
	for _, m := range catalogMovs {
		ci, err := catalogRepo.GetForUpdate(m.CatalogItemID)
		if err != nil || ci == nil {
			l.log.Warn().Str("catalog_item_id", m.CatalogItemID).Err(err).
				Msg("article introuvable à la restauration, écriture ignorée")
			continue
		}
		restored := m.Quantity.Abs()
		acct := Account{Kind: AccountCatalogItem, ID: ci.ID, Name: ci.Name}
		// L'écriture d'audit existe aussi pour les lignes qui n'ont pas
		// touché le solde article (pas de suivi, ou déduction portée par la
		// nomenclature) : on ne recrédite que ce qui a été débité.
		if m.StockApplied {
			if _, err := acc.credit(acct, restored); err != nil {
				return err
			}
		}
		ret := &entity.StockMovement{
			ID:             uuid.New().String(),
			LabID:          labID,
			CatalogItemID:  m.CatalogItemID,
			DeliveryNoteID: deliveryNoteID,
			MovementType:   entity.MovementTypeReturn,
			Quantity:       restored,
			Notes:          fmt.Sprintf("Retour suite à annulation du bon de livraison %s", deliveryNoteID),
			StockApplied:   m.StockApplied,
			CreatedBy:      userID,
			CreatedAt:      now,
		}
		if err := movementRepo.Create(ret); err != nil {
			return fmt.Errorf("écriture de retour: %w", err)
		}
		if err := movementRepo.MarkReversed(m.ID); err != nil {
			return fmt.Errorf("marquage reversed: %w", err)
		}
	}

	// Série ressource : écritures de sortie (type out) référant le bon.
	resourceMovs, err := movementRepo.ListResourceMovementsForNote(deliveryNoteID)
	if err != nil {
		return fmt.Errorf("lecture des mouvements ressource: %w", err)
	}
	for _, m := range resourceMovs {
		var acct Account
		if m.ResourceVariantID != "" {
			acct = Account{Kind: AccountResourceVariant, ID: m.ResourceVariantID}
		} else {
			acct = Account{Kind: AccountResource, ID: m.ResourceID}
		}
		if _, err := acc.credit(acct, m.Quantity); err != nil {
			l.log.Warn().Str("resource_id", m.ResourceID).
				Str("variant_id", m.ResourceVariantID).Err(err).
				Msg("compte ressource introuvable à la restauration, écriture ignorée")
			continue
		}
		in := &entity.StockMovement{
			ID:                uuid.New().String(),
			LabID:             labID,
			ResourceID:        m.ResourceID,
			ResourceVariantID: m.ResourceVariantID,
			MovementType:      entity.MovementTypeIn,
			Quantity:          m.Quantity,
			ReferenceType:     entity.ReferenceTypeDeliveryNote,
			ReferenceID:       deliveryNoteID,
			StockApplied:      true,
			Notes:             fmt.Sprintf("Retour suite à annulation du bon de livraison %s", deliveryNoteID),
			CreatedBy:         userID,
			CreatedAt:         now,
		}
		if err := movementRepo.Create(in); err != nil {
			return fmt.Errorf("écriture d'entrée ressource: %w", err)
		}
		if err := movementRepo.MarkReversed(m.ID); err != nil {
			return fmt.Errorf("marquage reversed: %w", err)
		}
	}
	return nil
}
