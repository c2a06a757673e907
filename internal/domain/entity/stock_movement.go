package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Types de mouvement de stock. Deux séries parallèles coexistent,
// distinguées par la clé étrangère renseignée :
//   - série article : delivery_note (déduction), return (retour), manual_adjustment
//   - série ressource : out (sortie), in (entrée)
const (
	MovementTypeDeliveryNote = "delivery_note"
	MovementTypeReturn       = "return"
	MovementTypeAdjustment   = "manual_adjustment"
	MovementTypeOut          = "out"
	MovementTypeIn           = "in"
)

// Types de référence d'origine d'un mouvement.
const (
	ReferenceTypeDeliveryNote = "delivery_note"
)

// StockMovement écriture immuable du grand livre de stock : un mouvement,
// sa cause, son auteur. Append-only : une restauration insère une écriture
// compensatoire, jamais de suppression. Reversed marque les écritures déjà
// compensées pour garantir une restauration au-plus-une-fois.
type StockMovement struct {
	ID                string
	LabID             string
	CatalogItemID     string // série article (vide sinon)
	ResourceID        string // série ressource (vide sinon)
	ResourceVariantID string
	DeliveryNoteID    string // série article : bon de livraison d'origine
	ReferenceType     string // série ressource : type du document d'origine
	ReferenceID       string // série ressource : ID du document d'origine
	MovementType      string
	Quantity          decimal.Decimal // signée pour la série article, magnitude pour la série ressource
	Notes             string
	StockApplied      bool // l'écriture a modifié un solde (faux pour l'audit d'une ligne sans effet de stock)
	Reversed          bool
	CreatedBy         string
	CreatedAt         time.Time
}
