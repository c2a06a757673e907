package stock

import (
	"github.com/shopspring/decimal"

	"github.com/dentalcloud/dentalcloud-api/pkg/logger"
)

// Ledger grand livre de stock : déduction à la création d'un bon de
// livraison, restauration à sa suppression, ajustements manuels et
// mouvements directs de ressources. Chaque opération s'exécute dans une
// transaction unique avec verrouillage de ligne (SELECT FOR UPDATE) : un
// échec sur une ligne annule toutes les écritures de l'appel.
type Ledger struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewLedger construit le grand livre.
func NewLedger(txRunner TxRunner, log *logger.Logger) *Ledger {
	return &Ledger{txRunner: txRunner, log: log}
}

// LineItem ligne d'un bon de livraison vue du stock. ResourceVariants
// associe chaque ressource à variantes de la nomenclature à la variante
// choisie (resource_id -> resource_variant_id).
type LineItem struct {
	CatalogItemID    string
	Quantity         decimal.Decimal
	ResourceVariants map[string]string
}
