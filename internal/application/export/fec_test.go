package export_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/dentalcloud/dentalcloud-api/internal/application/export"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeInvoiceRepo struct {
	invoices []*entity.Invoice
}

func (f *fakeInvoiceRepo) Create(*entity.Invoice) error               { return nil }
func (f *fakeInvoiceRepo) GetByID(string) (*entity.Invoice, error)    { return nil, nil }
func (f *fakeInvoiceRepo) UpdateStatus(string, string) error          { return nil }
func (f *fakeInvoiceRepo) NextNumber(string) (string, error)          { return "", nil }
func (f *fakeInvoiceRepo) ListByLab(string, int, int) ([]*entity.Invoice, error) {
	return f.invoices, nil
}

func (f *fakeInvoiceRepo) ListByYear(labID string, year int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range f.invoices {
		if inv.LabID == labID && inv.Date.Year() == year {
			out = append(out, inv)
		}
	}
	return out, nil
}

type fakeDentistRepo struct {
	dentists map[string]*entity.Dentist
}

func (f *fakeDentistRepo) Create(*entity.Dentist) error      { return nil }
func (f *fakeDentistRepo) Update(*entity.Dentist) error      { return nil }
func (f *fakeDentistRepo) SetActive(string, bool) error      { return nil }
func (f *fakeDentistRepo) ListByLab(string, int, int) ([]*entity.Dentist, error) {
	return nil, nil
}

func (f *fakeDentistRepo) GetByID(id string) (*entity.Dentist, error) {
	return f.dentists[id], nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func invoice(labID, number, dentistID, status string, date time.Time, subtotal, tax, total string) *entity.Invoice {
	return &entity.Invoice{
		ID:            "inv-" + number,
		LabID:         labID,
		DentistID:     dentistID,
		InvoiceNumber: number,
		Date:          date,
		Status:        status,
		Subtotal:      d(subtotal),
		TaxAmount:     d(tax),
		Total:         d(total),
	}
}

// decodeLatin9 retranscode le fichier vers l'UTF-8 pour les assertions.
func decodeLatin9(t *testing.T, raw []byte) string {
	t.Helper()
	out, _, err := transform.Bytes(charmap.ISO8859_15.NewDecoder(), raw)
	require.NoError(t, err)
	return string(out)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestExport_FichierEtNom(t *testing.T) {
	lab := "lab-1"
	invoices := &fakeInvoiceRepo{invoices: []*entity.Invoice{
		invoice(lab, "FAC-2025-0001", "den-1", entity.InvoiceStatusPaid,
			time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "250.00", "0", "250.00"),
	}}
	dentists := &fakeDentistRepo{dentists: map[string]*entity.Dentist{
		"den-1": {ID: "den-1", Name: "Cabinet Legrand"},
	}}

	raw, filename, err := export.NewFECExporter(invoices, dentists).Export(lab, "123456789", 2025)
	require.NoError(t, err)
	assert.Equal(t, "123456789FEC20251231.txt", filename)

	content := decodeLatin9(t, raw)
	lines := strings.Split(strings.TrimRight(content, "\r\n"), "\r\n")
	// En-tête + débit client + crédit prestations (pas de TVA).
	require.Len(t, lines, 3)

	header := strings.Split(lines[0], "\t")
	assert.Len(t, header, 18, "le FEC compte 18 colonnes réglementaires")
	assert.Equal(t, "JournalCode", header[0])
	assert.Equal(t, "Idevise", header[17])

	debit := strings.Split(lines[1], "\t")
	require.Len(t, debit, 18)
	assert.Equal(t, "VE", debit[0])
	assert.Equal(t, "411000", debit[4])
	assert.Equal(t, "Cabinet Legrand", debit[7])
	assert.Equal(t, "250,00", debit[11], "montant au format virgule décimale")
	assert.Equal(t, "0,00", debit[12])

	credit := strings.Split(lines[2], "\t")
	assert.Equal(t, "706000", credit[4])
	assert.Equal(t, "0,00", credit[11])
	assert.Equal(t, "250,00", credit[12])
}

func TestExport_EquilibreDebitCredit(t *testing.T) {
	lab := "lab-1"
	invoices := &fakeInvoiceRepo{invoices: []*entity.Invoice{
		invoice(lab, "FAC-2025-0001", "den-1", entity.InvoiceStatusSent,
			time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), "100.00", "20.00", "120.00"),
	}}
	dentists := &fakeDentistRepo{dentists: map[string]*entity.Dentist{
		"den-1": {ID: "den-1", Name: "Cabinet Dupont"},
	}}

	raw, _, err := export.NewFECExporter(invoices, dentists).Export(lab, "123456789", 2025)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(decodeLatin9(t, raw), "\r\n"), "\r\n")
	// En-tête + débit client + crédit prestations + crédit TVA.
	require.Len(t, lines, 4)

	sum := func(col int) decimal.Decimal {
		total := decimal.Zero
		for _, line := range lines[1:] {
			cols := strings.Split(line, "\t")
			total = total.Add(d(strings.ReplaceAll(cols[col], ",", ".")))
		}
		return total
	}
	assert.True(t, sum(11).Equal(sum(12)), "débits et crédits doivent s'équilibrer")

	tva := strings.Split(lines[3], "\t")
	assert.Equal(t, "445710", tva[4])
	assert.Equal(t, "20,00", tva[12])
}

func TestExport_IgnoreBrouillonsEtAutresExercices(t *testing.T) {
	lab := "lab-1"
	invoices := &fakeInvoiceRepo{invoices: []*entity.Invoice{
		invoice(lab, "FAC-2025-0001", "den-1", entity.InvoiceStatusDraft,
			time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), "50.00", "0", "50.00"),
		invoice(lab, "FAC-2024-0009", "den-1", entity.InvoiceStatusPaid,
			time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC), "80.00", "0", "80.00"),
	}}
	dentists := &fakeDentistRepo{dentists: map[string]*entity.Dentist{
		"den-1": {ID: "den-1", Name: "Cabinet Martin"},
	}}

	raw, _, err := export.NewFECExporter(invoices, dentists).Export(lab, "123456789", 2025)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(decodeLatin9(t, raw), "\r\n"), "\r\n")
	assert.Len(t, lines, 1, "seul l'en-tête reste : brouillons et autres exercices exclus")
}

func TestExport_EncodageISO8859_15(t *testing.T) {
	lab := "lab-1"
	invoices := &fakeInvoiceRepo{invoices: []*entity.Invoice{
		invoice(lab, "FAC-2025-0002", "den-2", entity.InvoiceStatusPaid,
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), "300.00", "0", "300.00"),
	}}
	dentists := &fakeDentistRepo{dentists: map[string]*entity.Dentist{
		"den-2": {ID: "den-2", Name: "Cabinet Léveillé"},
	}}

	raw, _, err := export.NewFECExporter(invoices, dentists).Export(lab, "123456789", 2025)
	require.NoError(t, err)

	// "é" vaut 0xE9 en ISO-8859-15, jamais la séquence UTF-8 0xC3 0xA9.
	assert.Contains(t, string(raw), string([]byte{'L', 0xE9, 'v'}))
	assert.NotContains(t, string(raw), string([]byte{0xC3, 0xA9}))
}

func TestExport_AnneeInvalide(t *testing.T) {
	_, _, err := export.NewFECExporter(&fakeInvoiceRepo{}, &fakeDentistRepo{}).Export("lab-1", "123456789", 1890)
	assert.Error(t, err)
}
