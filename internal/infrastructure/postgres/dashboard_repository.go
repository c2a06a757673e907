package postgres

import (
	"context"
	"fmt"

	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo agrégations du tableau de bord sur PostgreSQL. Lecture
// seule, toujours sur le pool.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construit l'adaptateur.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// Counters compteurs de tête : bons du mois, proformas en attente, factures
// impayées, chiffre d'affaires du mois.
func (r *DashboardRepo) Counters(labID string) (*repository.Counters, error) {
	query := `
		SELECT
			(SELECT count(*) FROM delivery_notes
			 WHERE lab_id = $1 AND date_trunc('month', date) = date_trunc('month', now())),
			(SELECT count(*) FROM proformas
			 WHERE lab_id = $1 AND status IN ('draft', 'sent')),
			(SELECT count(*) FROM invoices
			 WHERE lab_id = $1 AND status <> 'paid'),
			(SELECT coalesce(sum(total), 0) FROM invoices
			 WHERE lab_id = $1 AND status <> 'draft'
			   AND date_trunc('month', date) = date_trunc('month', now()))`
	var c repository.Counters
	err := r.q.QueryRow(context.Background(), query, labID).Scan(
		&c.DeliveryNotesThisMonth, &c.PendingProformas, &c.UnpaidInvoices, &c.RevenueThisMonth,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard counters: %w", err)
	}
	return &c, nil
}

// CountNotesByStage nombre de bons par étape de production.
func (r *DashboardRepo) CountNotesByStage(labID string) ([]repository.StageCount, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT stage, count(*) FROM delivery_notes WHERE lab_id = $1 GROUP BY stage`,
		labID,
	)
	if err != nil {
		return nil, fmt.Errorf("count notes by stage: %w", err)
	}
	defer rows.Close()
	var list []repository.StageCount
	for rows.Next() {
		var s repository.StageCount
		if err := rows.Scan(&s.Stage, &s.Count); err != nil {
			return nil, fmt.Errorf("scan stage count: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// MonthlyRevenue chiffre d'affaires facturé des derniers mois (factures
// émises, brouillons exclus).
func (r *DashboardRepo) MonthlyRevenue(labID string, months int) ([]repository.MonthRevenue, error) {
	query := `
		SELECT date_part('year', date)::int, date_part('month', date)::int, coalesce(sum(total), 0)
		FROM invoices
		WHERE lab_id = $1 AND status <> 'draft'
		  AND date >= date_trunc('month', now()) - make_interval(months => $2 - 1)
		GROUP BY 1, 2 ORDER BY 1, 2`
	rows, err := r.q.Query(context.Background(), query, labID, months)
	if err != nil {
		return nil, fmt.Errorf("monthly revenue: %w", err)
	}
	defer rows.Close()
	var list []repository.MonthRevenue
	for rows.Next() {
		var m repository.MonthRevenue
		if err := rows.Scan(&m.Year, &m.Month, &m.Revenue); err != nil {
			return nil, fmt.Errorf("scan month revenue: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// LowStock comptes de stock sous leur seuil d'alerte, les trois types
// confondus. Le stock propre d'une ressource à variantes n'est pas
// autoritatif : le seuil s'applique alors à chaque variante.
func (r *DashboardRepo) LowStock(labID string) ([]repository.LowStockEntry, error) {
	query := `
		SELECT 'catalog_item', id, name, '', stock_quantity, alert_level
		FROM catalog_items
		WHERE lab_id = $1 AND is_active AND tracks_stock AND alert_level > 0 AND stock_quantity <= alert_level
		UNION ALL
		SELECT 'resource', id, name, '', stock_quantity, alert_level
		FROM resources
		WHERE lab_id = $1 AND NOT has_variants AND alert_level > 0 AND stock_quantity <= alert_level
		UNION ALL
		SELECT 'resource_variant', v.id, r.name, v.variant_name, v.stock_quantity, r.alert_level
		FROM resource_variants v
		JOIN resources r ON r.id = v.resource_id
		WHERE r.lab_id = $1 AND r.has_variants AND r.alert_level > 0 AND v.stock_quantity <= r.alert_level
		ORDER BY 3, 4`
	rows, err := r.q.Query(context.Background(), query, labID)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	defer rows.Close()
	var list []repository.LowStockEntry
	for rows.Next() {
		var e repository.LowStockEntry
		if err := rows.Scan(&e.Kind, &e.ID, &e.Name, &e.VariantName, &e.Quantity, &e.AlertLevel); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
