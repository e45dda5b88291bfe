package domain

import "errors"

// Erreurs de domaine (sans dépendances externes).
var (
	ErrNotFound          = errors.New("ressource introuvable")
	ErrInvalidInput      = errors.New("entrée invalide")
	ErrInvalidQuantity   = errors.New("quantité invalide")
	ErrInsufficientStock = errors.New("stock insuffisant")
	ErrInvalidState      = errors.New("statut d'inventaire incompatible avec l'opération")
	ErrDuplicate         = errors.New("ressource dupliquée")
	ErrConflict          = errors.New("conflit avec l'état actuel")
	ErrQuantityImmutable = errors.New("la quantité ne se modifie que par mouvement de stock")
)
