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

var _ repository.ResourceRepository = (*ResourceRepo)(nil)

const resourceColumns = `id, lab_id, name, category, unit, has_variants,
	stock_quantity, alert_level, created_at, updated_at`

const variantColumns = `id, resource_id, subcategory, variant_name, stock_quantity, created_at, updated_at`

// ResourceRepo implémentation du port ResourceRepository sur PostgreSQL
// (utilisable avec pool ou tx).
type ResourceRepo struct {
	q Querier
}

// NewResourceRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewResourceRepository(q Querier) *ResourceRepo {
	return &ResourceRepo{q: q}
}

// Create persiste une nouvelle ressource.
func (r *ResourceRepo) Create(res *entity.Resource) error {
	query := `
		INSERT INTO resources (id, lab_id, name, category, unit, has_variants,
			stock_quantity, alert_level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		res.ID, res.LabID, res.Name, res.Category, res.Unit, res.HasVariants,
		res.StockQuantity, res.AlertLevel, res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert resource: %w", err)
	}
	return nil
}

// GetByID récupère une ressource par ID.
func (r *ResourceRepo) GetByID(id string) (*entity.Resource, error) {
	return r.get(id, false)
}

// GetForUpdate récupère une ressource en verrouillant la ligne (FOR UPDATE).
func (r *ResourceRepo) GetForUpdate(id string) (*entity.Resource, error) {
	return r.get(id, true)
}

func (r *ResourceRepo) get(id string, forUpdate bool) (*entity.Resource, error) {
	query := fmt.Sprintf(`SELECT %s FROM resources WHERE id = $1`, resourceColumns)
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var res entity.Resource
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&res.ID, &res.LabID, &res.Name, &res.Category, &res.Unit, &res.HasVariants,
		&res.StockQuantity, &res.AlertLevel, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get resource: %w", err)
	}
	return &res, nil
}

// ListByLab liste les ressources d'un laboratoire.
func (r *ResourceRepo) ListByLab(labID string, limit, offset int) ([]*entity.Resource, error) {
	query := fmt.Sprintf(`SELECT %s FROM resources WHERE lab_id = $1 ORDER BY name LIMIT $2 OFFSET $3`, resourceColumns)
	rows, err := r.q.Query(context.Background(), query, labID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()
	var list []*entity.Resource
	for rows.Next() {
		var res entity.Resource
		if err := rows.Scan(&res.ID, &res.LabID, &res.Name, &res.Category, &res.Unit, &res.HasVariants,
			&res.StockQuantity, &res.AlertLevel, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		list = append(list, &res)
	}
	return list, rows.Err()
}

// Update met à jour une ressource. Ni le stock ni HasVariants ne passent
// par ici.
func (r *ResourceRepo) Update(res *entity.Resource) error {
	query := `
		UPDATE resources
		SET name = $2, category = $3, unit = $4, alert_level = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		res.ID, res.Name, res.Category, res.Unit, res.AlertLevel, res.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update resource: %w", err)
	}
	return nil
}

// UpdateStock écrit le nouveau solde de stock de la ressource.
func (r *ResourceRepo) UpdateStock(id string, quantity decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE resources SET stock_quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update resource stock: %w", err)
	}
	return nil
}

// CreateVariant persiste une nouvelle variante.
func (r *ResourceRepo) CreateVariant(v *entity.ResourceVariant) error {
	query := `
		INSERT INTO resource_variants (id, resource_id, subcategory, variant_name, stock_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.ResourceID, v.Subcategory, v.VariantName, v.StockQuantity, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert resource variant: %w", err)
	}
	return nil
}

// GetVariant récupère une variante par ID.
func (r *ResourceRepo) GetVariant(id string) (*entity.ResourceVariant, error) {
	return r.getVariant(id, false)
}

// GetVariantForUpdate récupère une variante en verrouillant la ligne.
func (r *ResourceRepo) GetVariantForUpdate(id string) (*entity.ResourceVariant, error) {
	return r.getVariant(id, true)
}

func (r *ResourceRepo) getVariant(id string, forUpdate bool) (*entity.ResourceVariant, error) {
	query := fmt.Sprintf(`SELECT %s FROM resource_variants WHERE id = $1`, variantColumns)
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var v entity.ResourceVariant
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.ResourceID, &v.Subcategory, &v.VariantName, &v.StockQuantity, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get resource variant: %w", err)
	}
	return &v, nil
}

// ListVariants liste les variantes d'une ressource.
func (r *ResourceRepo) ListVariants(resourceID string) ([]*entity.ResourceVariant, error) {
	query := fmt.Sprintf(`SELECT %s FROM resource_variants WHERE resource_id = $1 ORDER BY variant_name`, variantColumns)
	rows, err := r.q.Query(context.Background(), query, resourceID)
	if err != nil {
		return nil, fmt.Errorf("list resource variants: %w", err)
	}
	defer rows.Close()
	var list []*entity.ResourceVariant
	for rows.Next() {
		var v entity.ResourceVariant
		if err := rows.Scan(&v.ID, &v.ResourceID, &v.Subcategory, &v.VariantName, &v.StockQuantity, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan resource variant: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// UpdateVariantStock écrit le nouveau solde de stock de la variante.
func (r *ResourceRepo) UpdateVariantStock(id string, quantity decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE resource_variants SET stock_quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update resource variant stock: %w", err)
	}
	return nil
}
