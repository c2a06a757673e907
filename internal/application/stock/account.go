package stock

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dentalcloud/dentalcloud-api/internal/domain"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
)

// AccountKind emplacement de stock : article du catalogue, ressource sans
// variantes, ou variante de ressource.
type AccountKind string

const (
	AccountCatalogItem     AccountKind = "catalog_item"
	AccountResource        AccountKind = "resource"
	AccountResourceVariant AccountKind = "resource_variant"
)

// Account désigne un compte de stock unique. Name et VariantName servent aux
// messages d'erreur ; seuls Kind et ID identifient le compte.
type Account struct {
	Kind        AccountKind
	ID          string
	Name        string
	VariantName string
}

// accounts vue unifiée des trois emplacements de stock : un seul chemin de
// code pour débiter et créditer, quel que soit le type de compte. Les
// repositories passés sont liés à la transaction en cours.
type accounts struct {
	catalog  repository.CatalogRepository
	resource repository.ResourceRepository
}

// balanceForUpdate lit le solde du compte en verrouillant la ligne.
// Renvoie domain.ErrNotFound si le compte n'existe plus.
func (a accounts) balanceForUpdate(acct Account) (decimal.Decimal, error) {
	switch acct.Kind {
	case AccountCatalogItem:
		item, err := a.catalog.GetForUpdate(acct.ID)
		if err != nil {
			return decimal.Zero, err
		}
		if item == nil {
			return decimal.Zero, domain.ErrNotFound
		}
		return item.StockQuantity, nil
	case AccountResource:
		res, err := a.resource.GetForUpdate(acct.ID)
		if err != nil {
			return decimal.Zero, err
		}
		if res == nil {
			return decimal.Zero, domain.ErrNotFound
		}
		return res.StockQuantity, nil
	case AccountResourceVariant:
		v, err := a.resource.GetVariantForUpdate(acct.ID)
		if err != nil {
			return decimal.Zero, err
		}
		if v == nil {
			return decimal.Zero, domain.ErrNotFound
		}
		return v.StockQuantity, nil
	}
	return decimal.Zero, fmt.Errorf("compte de stock inconnu: %s", acct.Kind)
}

func (a accounts) setBalance(acct Account, qty decimal.Decimal) error {
	switch acct.Kind {
	case AccountCatalogItem:
		return a.catalog.UpdateStock(acct.ID, qty)
	case AccountResource:
		return a.resource.UpdateStock(acct.ID, qty)
	case AccountResourceVariant:
		return a.resource.UpdateVariantStock(acct.ID, qty)
	}
	return fmt.Errorf("compte de stock inconnu: %s", acct.Kind)
}

// debit retire qty du compte. Garde de stock négatif : si le résultat serait
// négatif, renvoie InsufficientStockError sans écrire.
func (a accounts) debit(acct Account, qty decimal.Decimal) (decimal.Decimal, error) {
	balance, err := a.balanceForUpdate(acct)
	if err != nil {
		return decimal.Zero, err
	}
	newBalance := balance.Sub(qty)
	if newBalance.IsNegative() {
		return decimal.Zero, &InsufficientStockError{Account: acct, Available: balance, Required: qty}
	}
	if err := a.setBalance(acct, newBalance); err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}

// credit ajoute qty au compte (restauration, retour, entrée).
func (a accounts) credit(acct Account, qty decimal.Decimal) (decimal.Decimal, error) {
	balance, err := a.balanceForUpdate(acct)
	if err != nil {
		return decimal.Zero, err
	}
	newBalance := balance.Add(qty)
	if err := a.setBalance(acct, newBalance); err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}
