package stock

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dentalcloud/dentalcloud-api/internal/domain"
)

// InsufficientStockError échec de déduction : le solde deviendrait négatif.
// Le message nomme le compte touché, le stock disponible et la quantité
// requise ; le solde stocké n'est pas modifié.
type InsufficientStockError struct {
	Account   Account
	Available decimal.Decimal
	Required  decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	switch e.Account.Kind {
	case AccountResourceVariant:
		return fmt.Sprintf(
			"Stock insuffisant pour la variante %q de la ressource %q. Stock disponible: %s, nécessaire: %s",
			e.Account.VariantName, e.Account.Name, e.Available.String(), e.Required.String(),
		)
	case AccountResource:
		return fmt.Sprintf(
			"Stock insuffisant pour la ressource %q. Stock disponible: %s, nécessaire: %s",
			e.Account.Name, e.Available.String(), e.Required.String(),
		)
	default:
		return fmt.Sprintf(
			"Stock insuffisant pour l'article %q. Stock disponible: %s, demandé: %s",
			e.Account.Name, e.Available.String(), e.Required.String(),
		)
	}
}

// Is permet errors.Is(err, domain.ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == domain.ErrInsufficientStock
}

// MissingVariantError la ressource utilise des variantes mais aucune n'a été
// sélectionnée pour elle dans le bon de livraison. Échec dur : pas de
// variante par défaut implicite.
type MissingVariantError struct {
	ResourceName string
}

func (e *MissingVariantError) Error() string {
	return fmt.Sprintf(
		"La ressource %q nécessite une variante, mais aucune n'a été sélectionnée.",
		e.ResourceName,
	)
}

// Is permet errors.Is(err, domain.ErrMissingVariant).
func (e *MissingVariantError) Is(target error) bool {
	return target == domain.ErrMissingVariant
}
