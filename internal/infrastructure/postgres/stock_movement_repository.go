package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, lab_id, catalog_item_id, resource_id, resource_variant_id,
	delivery_note_id, reference_type, reference_id, movement_type, quantity, notes,
	stock_applied, reversed, created_by, created_at`

// StockMovementRepo implémentation du port StockMovementRepository sur
// PostgreSQL. Les colonnes de clé étrangère absentes sont stockées NULL et
// mappées sur la chaîne vide.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construit l'adaptateur. Passer pool ou tx.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create insère une écriture. Jamais de mise à jour : le grand livre est
// append-only.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, lab_id, catalog_item_id, resource_id, resource_variant_id,
			delivery_note_id, reference_type, reference_id, movement_type, quantity, notes,
			stock_applied, reversed, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.LabID, nullable(m.CatalogItemID), nullable(m.ResourceID), nullable(m.ResourceVariantID),
		nullable(m.DeliveryNoteID), nullable(m.ReferenceType), nullable(m.ReferenceID),
		m.MovementType, m.Quantity, m.Notes, m.StockApplied, m.Reversed, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListCatalogMovementsForNote écritures de déduction article non compensées
// d'un bon de livraison.
func (r *StockMovementRepo) ListCatalogMovementsForNote(deliveryNoteID string) ([]*entity.StockMovement, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM stock_movements
		WHERE delivery_note_id = $1 AND movement_type = $2 AND NOT reversed
		ORDER BY created_at`, movementColumns)
	return r.list(query, deliveryNoteID, entity.MovementTypeDeliveryNote)
}

// ListResourceMovementsForNote écritures de sortie ressource non compensées
// référant un bon de livraison.
func (r *StockMovementRepo) ListResourceMovementsForNote(deliveryNoteID string) ([]*entity.StockMovement, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM stock_movements
		WHERE reference_type = $1 AND reference_id = $2 AND movement_type = $3 AND NOT reversed
		ORDER BY created_at`, movementColumns)
	return r.list(query, entity.ReferenceTypeDeliveryNote, deliveryNoteID, entity.MovementTypeOut)
}

// MarkReversed pose le marqueur de compensation sur une écriture.
func (r *StockMovementRepo) MarkReversed(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE stock_movements SET reversed = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark stock movement reversed: %w", err)
	}
	return nil
}

// ListByCatalogItem historique d'un article, du plus récent au plus ancien.
func (r *StockMovementRepo) ListByCatalogItem(catalogItemID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM stock_movements
		WHERE catalog_item_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, movementColumns)
	return r.list(query, catalogItemID, limit, offset)
}

// ListByResource historique d'une ressource (variantes incluses).
func (r *StockMovementRepo) ListByResource(resourceID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM stock_movements
		WHERE resource_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, movementColumns)
	return r.list(query, resourceID, limit, offset)
}

func (r *StockMovementRepo) list(query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var catalogItemID, resourceID, variantID, noteID, refType, refID *string
	err := row.Scan(
		&m.ID, &m.LabID, &catalogItemID, &resourceID, &variantID,
		&noteID, &refType, &refID, &m.MovementType, &m.Quantity, &m.Notes,
		&m.StockApplied, &m.Reversed, &m.CreatedBy, &m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan stock movement: %w", err)
	}
	m.CatalogItemID = deref(catalogItemID)
	m.ResourceID = deref(resourceID)
	m.ResourceVariantID = deref(variantID)
	m.DeliveryNoteID = deref(noteID)
	m.ReferenceType = deref(refType)
	m.ReferenceID = deref(refID)
	return &m, nil
}

// nullable convertit la chaîne vide en NULL pour les colonnes à clé
// étrangère optionnelle.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
