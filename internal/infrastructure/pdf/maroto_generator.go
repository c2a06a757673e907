// Package pdf implémente le rendu des documents du laboratoire avec
// Maroto v2 : bon de livraison (avec certificat de conformité CE en
// seconde page), proforma et facture.
//
// Gabarit A4 commun :
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Laboratoire + SIRET  │  N° document + Date          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DESTINATAIRE: cabinet dentaire + contact                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Qté | Désignation | Teinte | Dent | P.U. | Montant   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAUX: Total HT / TVA / Total TTC                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: mentions légales + coordonnées bancaires            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/dentalcloud/dentalcloud-api/internal/application/billing"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
)

// ── Palette ───────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 15, Green: 118, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const vatExemptionNote = "* Exonération de TVA : Article 261-4-1° du Code Général des Impôts"

var _ billing.DocumentGenerator = (*MarotoGenerator)(nil)

// MarotoGenerator implémente billing.DocumentGenerator avec Maroto v2.
type MarotoGenerator struct{}

// NewMarotoGenerator construit le générateur.
func NewMarotoGenerator() *MarotoGenerator { return &MarotoGenerator{} }

func newDocument(title string, lab *entity.Lab) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(lab.Name, true).
		Build()
	return maroto.New(cfg)
}

// DeliveryNotePDF rend le bon de livraison, suivi du certificat de
// conformité CE sur une page dédiée (règlement UE 2017/745).
func (g *MarotoGenerator) DeliveryNotePDF(lab *entity.Lab, dentist *entity.Dentist, note *entity.DeliveryNote) ([]byte, error) {
	m := newDocument("Bon de livraison "+note.DeliveryNumber, lab)

	m.AddRows(headerRow(lab, "BON DE LIVRAISON", note.DeliveryNumber, note.Date.Format("02/01/2006")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(recipientRow(dentist))
	m.AddRows(patientRow(note))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(itemsHeaderRow())
	for _, r := range itemRows(note.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(note.Total(), decimal.Zero, decimal.Zero, note.Total()))

	if note.Notes != "" {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Remarques : "+note.Notes, props.Text{Size: 8, Color: colorGray, Top: 2}),
		)))
	}

	m.AddPages(page.New().Add(certificateRows(lab, note)...))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: bon de livraison: %w", err)
	}
	return doc.GetBytes(), nil
}

// ProformaPDF rend la proforma avec le détail des bons regroupés.
func (g *MarotoGenerator) ProformaPDF(lab *entity.Lab, dentist *entity.Dentist, p *entity.Proforma, notes []*entity.DeliveryNote) ([]byte, error) {
	m := newDocument("Proforma "+p.ProformaNumber, lab)
	buildBillingDocument(m, lab, dentist, "PROFORMA", p.ProformaNumber, p.Date.Format("02/01/2006"),
		notes, p.Subtotal, p.TaxRate, p.TaxAmount, p.Total, p.Notes, "")

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: proforma: %w", err)
	}
	return doc.GetBytes(), nil
}

// InvoicePDF rend la facture avec le détail des bons regroupés et la date
// d'échéance.
func (g *MarotoGenerator) InvoicePDF(lab *entity.Lab, dentist *entity.Dentist, inv *entity.Invoice, notes []*entity.DeliveryNote) ([]byte, error) {
	m := newDocument("Facture "+inv.InvoiceNumber, lab)
	due := ""
	if inv.DueDate != nil {
		due = inv.DueDate.Format("02/01/2006")
	}
	buildBillingDocument(m, lab, dentist, "FACTURE", inv.InvoiceNumber, inv.Date.Format("02/01/2006"),
		notes, inv.Subtotal, inv.TaxRate, inv.TaxAmount, inv.Total, inv.Notes, due)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: facture: %w", err)
	}
	return doc.GetBytes(), nil
}

// buildBillingDocument corps commun proforma/facture : en-tête, bons listés
// ligne à ligne, totaux puis mentions légales.
func buildBillingDocument(
	m core.Maroto,
	lab *entity.Lab,
	dentist *entity.Dentist,
	kind, number, date string,
	notes []*entity.DeliveryNote,
	subtotal, taxRate, taxAmount, total decimal.Decimal,
	remarks, dueDate string,
) {
	m.AddRows(headerRow(lab, kind, number, date))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(recipientRow(dentist))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(notesHeaderRow())
	for _, n := range notes {
		m.AddRows(noteSummaryRow(n))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(subtotal, taxRate, taxAmount, total))

	if dueDate != "" {
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New("Échéance : "+dueDate, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
		)))
	}
	if remarks != "" {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Remarques : "+remarks, props.Text{Size: 8, Color: colorGray, Top: 2}),
		)))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range legalFooterRows(lab, taxRate) {
		m.AddRows(r)
	}
}

// ── Sections ──────────────────────────────────────────────────────────────────

// headerRow : nom du laboratoire + SIRET (gauche), type et numéro du
// document + date (droite).
func headerRow(lab *entity.Lab, kind, number, date string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(lab.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(labContactLine(lab), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(kind, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date : "+date, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// recipientRow : cabinet destinataire.
func recipientRow(dentist *entity.Dentist) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DESTINATAIRE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(dentist.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("%s   |   Tél : %s   |   Email : %s",
				nonEmpty(dentist.Address, "—"),
				nonEmpty(dentist.Phone, "—"),
				nonEmpty(dentist.Email, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// patientRow : patient et date de prescription du bon.
func patientRow(note *entity.DeliveryNote) core.Row {
	prescription := "—"
	if note.PrescriptionDate != nil {
		prescription = note.PrescriptionDate.Format("02/01/2006")
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Patient : %s   |   Prescription du : %s",
			nonEmpty(note.PatientName, "—"), prescription,
		), props.Text{Size: 9, Top: 2}),
	))
}

// itemsHeaderRow : en-tête de la table des lignes du bon.
func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qté", 1, align.Center),
		h("Désignation", 5, align.Left),
		h("Teinte", 1, align.Center),
		h("Dent", 1, align.Center),
		h("P.U. HT", 2, align.Right),
		h("Montant HT", 2, align.Right),
	)
}

// itemRows : une ligne par travail du bon.
func itemRows(items []entity.DeliveryNoteItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				it.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				nonEmpty(it.Shade, "—"),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				nonEmpty(it.ToothNumber, "—"),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				formatEuro(it.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				formatEuro(it.Quantity.Mul(it.UnitPrice)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// notesHeaderRow : en-tête de la table des bons regroupés (proforma,
// facture).
func notesHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("N° bon", 3, align.Left),
		h("Date", 2, align.Center),
		h("Patient", 4, align.Left),
		h("Montant HT", 3, align.Right),
	)
}

// noteSummaryRow : une ligne par bon de livraison rattaché.
func noteSummaryRow(n *entity.DeliveryNote) core.Row {
	return row.New(7).Add(
		col.New(3).Add(text.New(
			n.DeliveryNumber,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(2).Add(text.New(
			n.Date.Format("02/01/2006"),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(4).Add(text.New(
			nonEmpty(n.PatientName, "—"),
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(3).Add(text.New(
			formatEuro(n.Total()),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// totalsRow : bloc des totaux aligné à droite.
func totalsRow(subtotal, taxRate, taxAmount, total decimal.Decimal) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	taxLabel := "TVA *"
	if taxRate.IsPositive() {
		taxLabel = fmt.Sprintf("TVA (%s%%)", taxRate.String())
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Total HT :"),
			label(taxLabel+" :"),
			grandLabel("TOTAL TTC :"),
		),
		col.New(3).Add(
			value(formatEuro(subtotal)),
			value(formatEuro(taxAmount)),
			grandValue(formatEuro(total)),
		),
		col.New(3),
	)
}

// legalFooterRows : exonération de TVA le cas échéant, puis coordonnées
// bancaires et mention d'immatriculation.
func legalFooterRows(lab *entity.Lab, taxRate decimal.Decimal) []core.Row {
	var rows []core.Row

	if !taxRate.IsPositive() {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(vatExemptionNote, props.Text{Size: 7, Color: colorGray, Top: 1}),
		)))
	}

	if lab.IBAN != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Règlement par virement   |   IBAN : %s   |   BIC : %s",
				lab.IBAN, nonEmpty(lab.BIC, "—"),
			), props.Text{Size: 7, Color: colorGray, Top: 1}),
		)))
	}

	registration := fmt.Sprintf("%s — SIRET %s", lab.Name, nonEmpty(lab.SIRET, "—"))
	if lab.RCS != "" {
		registration += " — " + lab.RCS
	}
	rows = append(rows, row.New(5).Add(col.New(12).Add(
		text.New(registration, props.Text{Size: 7, Color: colorGray, Top: 1}),
	)))

	return rows
}

// certificateRows : certificat de conformité CE du dispositif médical sur
// mesure, page dédiée du bon de livraison.
func certificateRows(lab *entity.Lab, note *entity.DeliveryNote) []core.Row {
	prescription := "—"
	if note.PrescriptionDate != nil {
		prescription = note.PrescriptionDate.Format("02/01/2006")
	}

	rows := []core.Row{
		row.New(14).Add(col.New(12).Add(
			text.New("DÉCLARATION DE CONFORMITÉ", props.Text{
				Style: fontstyle.Bold, Size: 13, Align: align.Center,
				Color: colorPrimary, Top: 2,
			}),
			text.New("Dispositif médical sur mesure — Règlement (UE) 2017/745, annexe XIII", props.Text{
				Size: 9, Align: align.Center, Top: 10, Color: colorGray,
			}),
		)),
		line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}),
		row.New(10).Add(col.New(12).Add(
			text.New("Fabricant : "+lab.Name, props.Text{Style: fontstyle.Bold, Size: 9, Top: 2}),
			text.New(labContactLine(lab), props.Text{Size: 8, Top: 7, Color: colorGray}),
		)),
		row.New(8).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Bon de livraison : %s   |   Patient : %s   |   Prescription du : %s",
				note.DeliveryNumber, nonEmpty(note.PatientName, "—"), prescription,
			), props.Text{Size: 9, Top: 2}),
		)),
		row.New(12).Add(col.New(12).Add(
			text.New(
				"Le fabricant déclare que le dispositif décrit ci-dessous est conforme aux "+
					"exigences générales en matière de sécurité et de performances du règlement "+
					"(UE) 2017/745, et qu'il a été fabriqué conformément à la prescription écrite "+
					"du praticien désigné sur le présent bon.",
				props.Text{Size: 9, Top: 2},
			),
		)),
	}

	rows = append(rows, row.New(6).Add(col.New(12).Add(
		text.New("Dispositifs concernés :", props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}),
	)))
	for _, it := range note.Items {
		desc := it.Description
		if it.Shade != "" {
			desc += "  (teinte " + it.Shade + ")"
		}
		if it.ToothNumber != "" {
			desc += "  dent " + it.ToothNumber
		}
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("•  "+desc, props.Text{Size: 8, Top: 1, Left: 3}),
		)))
	}

	if lab.ComplianceText != "" {
		rows = append(rows,
			line.NewRow(3),
			row.New(12).Add(col.New(12).Add(
				text.New(lab.ComplianceText, props.Text{Size: 8, Color: colorGray, Top: 2}),
			)),
		)
	}

	rows = append(rows,
		line.NewRow(3),
		row.New(12).Add(
			col.New(6).Add(
				text.New("Fait le "+note.Date.Format("02/01/2006"), props.Text{Size: 9, Top: 2}),
			),
			col.New(6).Add(
				text.New("Signature et cachet du laboratoire", props.Text{
					Size: 8, Align: align.Right, Top: 2, Color: colorGray,
				}),
			),
		),
	)

	return rows
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func labContactLine(lab *entity.Lab) string {
	return fmt.Sprintf("%s   |   Tél : %s   |   Email : %s",
		nonEmpty(lab.Address, "—"),
		nonEmpty(lab.Phone, "—"),
		nonEmpty(lab.Email, "—"),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatEuro rend un montant avec deux décimales, virgule décimale et
// espace des milliers. Ex : "1234.5" → "1 234,50 €"
func formatEuro(d decimal.Decimal) string {
	s := d.StringFixed(2)
	intPart, decPart := s[:len(s)-3], s[len(s)-2:]
	neg := false
	if len(intPart) > 0 && intPart[0] == '-' {
		neg = true
		intPart = intPart[1:]
	}
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, intPart[i])
	}
	out := string(buf) + "," + decPart + " €"
	if neg {
		out = "-" + out
	}
	return out
}
