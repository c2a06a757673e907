package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/dentalcloud/dentalcloud-api/internal/domain"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
)

// Comptes du plan comptable général utilisés par l'export.
const (
	accountClients = "411000" // clients
	accountSales   = "706000" // prestations de services
	accountVAT     = "445710" // TVA collectée
)

// fecHeader colonnes réglementaires du Fichier des Écritures Comptables
// (arrêté du 29 juillet 2013, art. A47 A-1 du LPF).
var fecHeader = []string{
	"JournalCode", "JournalLib", "EcritureNum", "EcritureDate",
	"CompteNum", "CompteLib", "CompAuxNum", "CompAuxLib",
	"PieceRef", "PieceDate", "EcritureLib", "Debit", "Credit",
	"EcritureLet", "DateLet", "ValidDate", "Montantdevise", "Idevise",
}

// FECExporter produit le FEC des ventes d'un exercice : une écriture par
// facture (client au débit, prestations et TVA au crédit). Le fichier est
// tabulé et encodé en ISO-8859-15, attendu par les logiciels comptables.
type FECExporter struct {
	invoices repository.InvoiceRepository
	dentists repository.DentistRepository
}

// NewFECExporter construit l'exporteur.
func NewFECExporter(invoices repository.InvoiceRepository, dentists repository.DentistRepository) *FECExporter {
	return &FECExporter{invoices: invoices, dentists: dentists}
}

// Export génère le FEC de l'année demandée. Renvoie le contenu encodé et
// le nom de fichier réglementaire SIRENFECAAAAMMJJ.txt.
func (e *FECExporter) Export(labID, siren string, year int) ([]byte, string, error) {
	if year < 2000 || year > 2100 {
		return nil, "", domain.ErrInvalidInput
	}
	invoices, err := e.invoices.ListByYear(labID, year)
	if err != nil {
		return nil, "", err
	}

	var b strings.Builder
	b.WriteString(strings.Join(fecHeader, "\t"))
	b.WriteString("\r\n")

	num := 0
	for _, inv := range invoices {
		if inv.Status == entity.InvoiceStatusDraft {
			continue
		}
		num++
		clientName, err := e.clientName(inv.DentistID)
		if err != nil {
			return nil, "", err
		}
		for _, line := range invoiceLines(inv, num, clientName) {
			b.WriteString(strings.Join(line, "\t"))
			b.WriteString("\r\n")
		}
	}

	encoded, err := encodeLatin9(b.String())
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("%sFEC%d1231.txt", siren, year)
	return encoded, filename, nil
}

// invoiceLines écritures d'une facture : débit client, crédit prestations,
// crédit TVA si la facture en porte. Débits et crédits s'équilibrent.
func invoiceLines(inv *entity.Invoice, num int, clientName string) [][]string {
	date := inv.Date.Format("20060102")
	label := fmt.Sprintf("Facture %s %s", inv.InvoiceNumber, clientName)
	base := func(compte, compteLib, auxNum, auxLib string, debit, credit decimal.Decimal) []string {
		return []string{
			"VE", "Ventes", fmt.Sprintf("%d", num), date,
			compte, compteLib, auxNum, auxLib,
			inv.InvoiceNumber, date, label,
			amount(debit), amount(credit),
			"", "", date, "", "",
		}
	}

	lines := [][]string{
		base(accountClients, "Clients", inv.DentistID, clientName, inv.Total, decimal.Zero),
		base(accountSales, "Prestations de services", "", "", decimal.Zero, inv.Subtotal),
	}
	if inv.TaxAmount.IsPositive() {
		lines = append(lines, base(accountVAT, "TVA collectée", "", "", decimal.Zero, inv.TaxAmount))
	}
	return lines
}

func (e *FECExporter) clientName(dentistID string) (string, error) {
	d, err := e.dentists.GetByID(dentistID)
	if err != nil {
		return "", err
	}
	if d == nil {
		return "Client inconnu", nil
	}
	return d.Name, nil
}

// amount montant au format FEC : virgule décimale, deux décimales.
func amount(d decimal.Decimal) string {
	return strings.ReplaceAll(d.StringFixed(2), ".", ",")
}

// encodeLatin9 transcode l'UTF-8 interne vers ISO-8859-15.
func encodeLatin9(s string) ([]byte, error) {
	var out bytes.Buffer
	w := transform.NewWriter(&out, charmap.ISO8859_15.NewEncoder())
	if _, err := w.Write([]byte(s)); err != nil {
		return nil, fmt.Errorf("encodage ISO-8859-15: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("encodage ISO-8859-15: %w", err)
	}
	return out.Bytes(), nil
}
