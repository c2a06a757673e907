package domain

import "errors"

// Erreurs de domaine (sans dépendances externes).
var (
	ErrNotFound           = errors.New("ressource non trouvée")
	ErrUserNotFound       = errors.New("utilisateur non trouvé")
	ErrEmailAlreadyExists = errors.New("cet email est déjà enregistré")
	ErrInvalidInput       = errors.New("entrée invalide")
	ErrDuplicate          = errors.New("ressource dupliquée")
	ErrUnauthorized       = errors.New("non autorisé")
	ErrForbidden          = errors.New("accès refusé")
	ErrConflict           = errors.New("conflit avec l'état actuel")
	ErrInsufficientStock  = errors.New("stock insuffisant")
	ErrMissingVariant     = errors.New("variante de ressource non sélectionnée")
	ErrStockNotTracked    = errors.New("le suivi du stock n'est pas activé pour cet article")
	ErrNegativeStock      = errors.New("le stock ne peut pas être négatif")
	ErrInvalidResetCode   = errors.New("code de réinitialisation invalide ou expiré")
	ErrAlreadyBilled      = errors.New("bon de livraison déjà facturé")
)
