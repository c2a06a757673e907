package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dentalcloud/dentalcloud-api/internal/domain"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, lab_id, dentist_id, invoice_number, proforma_id, date, due_date,
	status, tax_rate, subtotal, tax_amount, total, notes, delivery_note_ids,
	created_by, created_at, updated_at`

// InvoiceRepo implémentation du port InvoiceRepository sur PostgreSQL.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste une facture. Renvoie domain.ErrDuplicate si le numéro est
// déjà pris.
func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, lab_id, dentist_id, invoice_number, proforma_id, date, due_date,
			status, tax_rate, subtotal, tax_amount, total, notes, delivery_note_ids,
			created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.LabID, inv.DentistID, inv.InvoiceNumber, nullable(inv.ProformaID),
		inv.Date, inv.DueDate, inv.Status, inv.TaxRate, inv.Subtotal, inv.TaxAmount,
		inv.Total, inv.Notes, inv.DeliveryNoteIDs, inv.CreatedBy, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID récupère une facture.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return inv, nil
}

// ListByLab liste les factures d'un laboratoire, plus récentes d'abord.
func (r *InvoiceRepo) ListByLab(labID string, limit, offset int) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+invoiceColumns+` FROM invoices WHERE lab_id = $1
		 ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`,
		labID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return collectInvoices(rows)
}

// ListByYear factures d'un exercice, dans l'ordre chronologique (export
// comptable).
func (r *InvoiceRepo) ListByYear(labID string, year int) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+invoiceColumns+` FROM invoices
		 WHERE lab_id = $1 AND date_part('year', date) = $2
		 ORDER BY date, invoice_number`,
		labID, year,
	)
	if err != nil {
		return nil, fmt.Errorf("list invoices by year: %w", err)
	}
	return collectInvoices(rows)
}

// UpdateStatus change le statut d'une facture.
func (r *InvoiceRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE invoices SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return nil
}

// NextNumber tire le prochain numéro FAC-YYYY-NNNN via la fonction SQL.
func (r *InvoiceRepo) NextNumber(labID string) (string, error) {
	var number string
	err := r.q.QueryRow(context.Background(),
		`SELECT generate_next_invoice_number($1)`, labID).Scan(&number)
	if err != nil {
		return "", fmt.Errorf("next invoice number: %w", err)
	}
	return number, nil
}

func collectInvoices(rows pgx.Rows) ([]*entity.Invoice, error) {
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var proformaID *string
	err := row.Scan(
		&inv.ID, &inv.LabID, &inv.DentistID, &inv.InvoiceNumber, &proformaID,
		&inv.Date, &inv.DueDate, &inv.Status, &inv.TaxRate, &inv.Subtotal, &inv.TaxAmount,
		&inv.Total, &inv.Notes, &inv.DeliveryNoteIDs, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan invoice: %w", err)
	}
	inv.ProformaID = deref(proformaID)
	return &inv, nil
}
