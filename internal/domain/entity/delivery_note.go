package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryNoteItem ligne d'un bon de livraison. ResourceVariants associe
// chaque ressource à variantes de la nomenclature à la variante choisie
// (resource_id -> resource_variant_id).
type DeliveryNoteItem struct {
	CatalogItemID    string            `json:"catalog_item_id"`
	Description      string            `json:"description"`
	Quantity         decimal.Decimal   `json:"quantity"`
	Unit             string            `json:"unit"`
	UnitPrice        decimal.Decimal   `json:"unit_price"`
	Shade            string            `json:"shade,omitempty"`
	ToothNumber      string            `json:"tooth_number,omitempty"`
	ResourceVariants map[string]string `json:"resource_variants,omitempty"`
}

// DeliveryNote bon de livraison laboratoire -> dentiste. Les lignes sont
// stockées en JSON ; la déduction et la restauration de stock sont pilotées
// par cette liste à la création et par l'historique des mouvements à la
// suppression.
type DeliveryNote struct {
	ID               string
	LabID            string
	DentistID        string
	DeliveryNumber   string
	Date             time.Time
	PatientName      string
	PrescriptionDate *time.Time
	Items            []DeliveryNoteItem
	Stage            string // étape de production (tableau Kanban)
	ProformaID       string // renseigné quand le bon est rattaché à une proforma
	Notes            string
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Total calcule le montant HT du bon (somme quantité x prix unitaire).
func (n *DeliveryNote) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range n.Items {
		total = total.Add(it.Quantity.Mul(it.UnitPrice))
	}
	return total
}
