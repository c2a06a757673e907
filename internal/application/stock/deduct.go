package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dentalcloud/dentalcloud-api/internal/domain"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
)

// DeductForDeliveryNote décrémente le stock adossé à chaque ligne du bon de
// livraison et enregistre les écritures correspondantes, le tout dans une
// seule transaction. Par ligne :
//
//   - article avec nomenclature : pour chaque lien, resourcesNeeded =
//     floor(quantité ligne / quantité nécessaire), débité sur la variante
//     choisie ou sur la ressource elle-même ;
//   - article sans nomenclature mais suivi en stock : débit direct ;
//   - sinon : aucun effet de stock.
//
// Une écriture d'audit côté article (type delivery_note) est insérée dans
// tous les cas, en plus de l'éventuelle écriture côté ressource : jusqu'à
// deux écritures par ligne. La première condition bloquante (stock
// insuffisant, variante manquante) interrompt l'appel et annule toutes les
// écritures déjà faites.
func (l *Ledger) DeductForDeliveryNote(ctx context.Context, labID, userID, deliveryNoteID string, items []LineItem) error {
	return l.txRunner.Run(ctx, func(
		catalogRepo repository.CatalogRepository,
		resourceRepo repository.ResourceRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		return l.DeductInTx(catalogRepo, resourceRepo, movementRepo, labID, userID, deliveryNoteID, items)
	})
}

// DeductInTx même déduction avec des repositories déjà liés à une
// transaction en cours : permet d'insérer le bon de livraison et de déduire
// le stock dans la même transaction.
func (l *Ledger) DeductInTx(
	catalogRepo repository.CatalogRepository,
	resourceRepo repository.ResourceRepository,
	movementRepo repository.StockMovementRepository,
	labID, userID, deliveryNoteID string,
	items []LineItem,
) error {
	acc := accounts{catalog: catalogRepo, resource: resourceRepo}
	now := time.Now()

	for _, item := range items {
		ci, err := catalogRepo.GetForUpdate(item.CatalogItemID)
		if err != nil || ci == nil {
			// Écart toléré : l'article a pu être désactivé entre la saisie
			// et la validation. La ligne est ignorée, pas d'échec global.
			l.log.Warn().Str("catalog_item_id", item.CatalogItemID).Err(err).
				Msg("article du catalogue introuvable, ligne ignorée")
			continue
		}

		edges, err := catalogRepo.ListResources(item.CatalogItemID)
		if err != nil {
			return fmt.Errorf("nomenclature de l'article %s: %w", item.CatalogItemID, err)
		}

		stockApplied := false
		switch {
		case len(edges) > 0:
			if err := l.deductResources(acc, movementRepo, labID, userID, deliveryNoteID, ci, item, edges, now); err != nil {
				return err
			}
		case ci.TracksStock:
			acct := Account{Kind: AccountCatalogItem, ID: ci.ID, Name: ci.Name}
			if _, err := acc.debit(acct, item.Quantity); err != nil {
				return err
			}
			stockApplied = true
		default:
			// Ni nomenclature ni suivi de stock : la ligne ne touche
			// aucun solde, seule l'écriture d'audit est insérée.
		}

		audit := &entity.StockMovement{
			ID:             uuid.New().String(),
			LabID:          labID,
			CatalogItemID:  item.CatalogItemID,
			DeliveryNoteID: deliveryNoteID,
			MovementType:   entity.MovementTypeDeliveryNote,
			Quantity:       item.Quantity.Neg(),
			Notes:          fmt.Sprintf("Déduction pour bon de livraison %s", deliveryNoteID),
			StockApplied:   stockApplied,
			CreatedBy:      userID,
			CreatedAt:      now,
		}
		if err := movementRepo.Create(audit); err != nil {
			return fmt.Errorf("écriture d'audit: %w", err)
		}
	}
	return nil
}

// deductResources applique la déduction d'une ligne adossée à une
// nomenclature : un débit et une écriture de sortie par lien ressource.
func (l *Ledger) deductResources(
	acc accounts,
	movementRepo repository.StockMovementRepository,
	labID, userID, deliveryNoteID string,
	ci *entity.CatalogItem,
	item LineItem,
	edges []*entity.CatalogItemResource,
	now time.Time,
) error {
	for _, edge := range edges {
		if !edge.QuantityNeeded.IsPositive() {
			return fmt.Errorf("quantité nécessaire invalide pour la ressource %s: %w", edge.ResourceID, domain.ErrInvalidInput)
		}

		res, err := acc.resource.GetForUpdate(edge.ResourceID)
		if err != nil || res == nil {
			l.log.Warn().Str("resource_id", edge.ResourceID).Err(err).
				Msg("ressource introuvable, lien de nomenclature ignoré")
			continue
		}

		// La sélection de variante est exigée dès que la ressource en a,
		// même quand la quantité de la ligne ne déclenche aucun débit.
		var v *entity.ResourceVariant
		if res.HasVariants {
			variantID := item.ResourceVariants[edge.ResourceID]
			if variantID == "" {
				return &MissingVariantError{ResourceName: res.Name}
			}
			if v, err = acc.resource.GetVariantForUpdate(variantID); err != nil {
				return err
			}
			if v == nil {
				return fmt.Errorf("variante de ressource non trouvée: %w", domain.ErrNotFound)
			}
		}

		needed := item.Quantity.Div(edge.QuantityNeeded).Floor()
		if !needed.IsPositive() {
			// Quantité de la ligne inférieure au ratio : rien à débiter.
			continue
		}

		movement := &entity.StockMovement{
			ID:            uuid.New().String(),
			LabID:         labID,
			ResourceID:    edge.ResourceID,
			MovementType:  entity.MovementTypeOut,
			Quantity:      needed,
			ReferenceType: entity.ReferenceTypeDeliveryNote,
			ReferenceID:   deliveryNoteID,
			StockApplied:  true,
			CreatedBy:     userID,
			CreatedAt:     now,
		}

		if res.HasVariants {
			acct := Account{Kind: AccountResourceVariant, ID: v.ID, Name: res.Name, VariantName: v.VariantName}
			if _, err := acc.debit(acct, needed); err != nil {
				return err
			}
			movement.ResourceVariantID = v.ID
			movement.Notes = fmt.Sprintf("Bon de livraison: %s %s de %s (Variante: %s)",
				item.Quantity.String(), ci.DefaultUnit, ci.Name, v.VariantName)
		} else {
			acct := Account{Kind: AccountResource, ID: res.ID, Name: res.Name}
			if _, err := acc.debit(acct, needed); err != nil {
				return err
			}
			movement.Notes = fmt.Sprintf("Bon de livraison: %s %s de %s",
				item.Quantity.String(), ci.DefaultUnit, ci.Name)
		}

		if err := movementRepo.Create(movement); err != nil {
			return fmt.Errorf("écriture de sortie ressource: %w", err)
		}
	}
	return nil
}
