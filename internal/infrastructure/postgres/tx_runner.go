package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dentalcloud/dentalcloud-api/internal/application/billing"
	"github.com/dentalcloud/dentalcloud-api/internal/application/stock"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
)

var _ stock.TxRunner = (*TxRunner)(nil)
var _ billing.TxRunner = (*TxRunner)(nil)

// TxRunner exécute des callbacks dans une transaction PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construit le runner avec le pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run démarre une transaction, exécute fn avec les repos de stock liés à la
// tx, puis Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	catalogRepo repository.CatalogRepository,
	resourceRepo repository.ResourceRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCatalogRepository(tx), NewResourceRepository(tx), NewStockMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBilling démarre une transaction avec les repos de facturation en plus
// des repos de stock : créer un bon et déduire, ou supprimer et restaurer,
// dans la même transaction.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(repos billing.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := billing.Repos{
		Notes:     NewDeliveryNoteRepository(tx),
		Catalog:   NewCatalogRepository(tx),
		Resources: NewResourceRepository(tx),
		Movements: NewStockMovementRepository(tx),
		Proformas: NewProformaRepository(tx),
		Invoices:  NewInvoiceRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
