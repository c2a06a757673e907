package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dentalcloud/dentalcloud-api/internal/domain"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

const catalogItemColumns = `id, lab_id, name, description, default_unit, default_price,
	tracks_stock, stock_quantity, alert_level, is_active, created_at, updated_at`

// CatalogRepo implémentation du port CatalogRepository sur PostgreSQL
// (utilisable avec pool ou tx).
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// Create persiste un nouvel article.
func (r *CatalogRepo) Create(item *entity.CatalogItem) error {
	query := `
		INSERT INTO catalog_items (id, lab_id, name, description, default_unit, default_price,
			tracks_stock, stock_quantity, alert_level, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.LabID, item.Name, item.Description, item.DefaultUnit, item.DefaultPrice,
		item.TracksStock, item.StockQuantity, item.AlertLevel, item.IsActive, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert catalog item: %w", err)
	}
	return nil
}

// GetByID récupère un article par ID.
func (r *CatalogRepo) GetByID(id string) (*entity.CatalogItem, error) {
	return r.get(id, false)
}

// GetForUpdate récupère un article en verrouillant la ligne (FOR UPDATE).
func (r *CatalogRepo) GetForUpdate(id string) (*entity.CatalogItem, error) {
	return r.get(id, true)
}

func (r *CatalogRepo) get(id string, forUpdate bool) (*entity.CatalogItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM catalog_items WHERE id = $1`, catalogItemColumns)
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var it entity.CatalogItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&it.ID, &it.LabID, &it.Name, &it.Description, &it.DefaultUnit, &it.DefaultPrice,
		&it.TracksStock, &it.StockQuantity, &it.AlertLevel, &it.IsActive, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalog item: %w", err)
	}
	return &it, nil
}

// ListByLab liste les articles d'un laboratoire.
func (r *CatalogRepo) ListByLab(labID string, activeOnly bool, limit, offset int) ([]*entity.CatalogItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM catalog_items WHERE lab_id = $1`, catalogItemColumns)
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, labID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
	}
	defer rows.Close()
	var list []*entity.CatalogItem
	for rows.Next() {
		var it entity.CatalogItem
		if err := rows.Scan(&it.ID, &it.LabID, &it.Name, &it.Description, &it.DefaultUnit, &it.DefaultPrice,
			&it.TracksStock, &it.StockQuantity, &it.AlertLevel, &it.IsActive, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Update met à jour un article. Le stock propre ne passe pas par ici.
func (r *CatalogRepo) Update(item *entity.CatalogItem) error {
	query := `
		UPDATE catalog_items
		SET name = $2, description = $3, default_unit = $4, default_price = $5,
			tracks_stock = $6, alert_level = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, item.DefaultUnit, item.DefaultPrice,
		item.TracksStock, item.AlertLevel, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update catalog item: %w", err)
	}
	return nil
}

// UpdateStock écrit le nouveau solde de stock propre (appelé par le grand
// livre, sous verrou FOR UPDATE).
func (r *CatalogRepo) UpdateStock(id string, quantity decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE catalog_items SET stock_quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update catalog item stock: %w", err)
	}
	return nil
}

// SetActive active ou désactive un article.
func (r *CatalogRepo) SetActive(id string, active bool) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE catalog_items SET is_active = $2, updated_at = now() WHERE id = $1`,
		id, active,
	)
	if err != nil {
		return fmt.Errorf("set catalog item active: %w", err)
	}
	return nil
}

// ListResources liste la nomenclature d'un article.
func (r *CatalogRepo) ListResources(catalogItemID string) ([]*entity.CatalogItemResource, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT catalog_item_id, resource_id, quantity_needed
		 FROM catalog_item_resources WHERE catalog_item_id = $1`,
		catalogItemID,
	)
	if err != nil {
		return nil, fmt.Errorf("list catalog item resources: %w", err)
	}
	defer rows.Close()
	var list []*entity.CatalogItemResource
	for rows.Next() {
		var e entity.CatalogItemResource
		if err := rows.Scan(&e.CatalogItemID, &e.ResourceID, &e.QuantityNeeded); err != nil {
			return nil, fmt.Errorf("scan catalog item resource: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// ReplaceResources remplace la nomenclature d'un article.
func (r *CatalogRepo) ReplaceResources(catalogItemID string, edges []*entity.CatalogItemResource) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx,
		`DELETE FROM catalog_item_resources WHERE catalog_item_id = $1`, catalogItemID); err != nil {
		return fmt.Errorf("clear catalog item resources: %w", err)
	}
	for _, e := range edges {
		if _, err := r.q.Exec(ctx,
			`INSERT INTO catalog_item_resources (catalog_item_id, resource_id, quantity_needed)
			 VALUES ($1, $2, $3)`,
			catalogItemID, e.ResourceID, e.QuantityNeeded); err != nil {
			return fmt.Errorf("insert catalog item resource: %w", err)
		}
	}
	return nil
}
