// Package stock porte les règles pures du livre de stock (service de domaine).
package stock

import (
	"github.com/shopspring/decimal"

	"github.com/Cyrivelus/stockpro/internal/domain"
	"github.com/Cyrivelus/stockpro/internal/domain/entity"
)

// ValidateMovement vérifie un mouvement proposé contre un instantané de la
// quantité courante. Prédicat pur : la fraîcheur de l'instantané est garantie
// par l'appelant (verrou de ligne pendant la séquence lire-valider-écrire).
func ValidateMovement(currentQty int, direction string, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	switch direction {
	case entity.MovementEntree:
		// une réception n'est jamais refusée pour raison de quantité
		return nil
	case entity.MovementSortie:
		if quantity > currentQty {
			return domain.ErrInsufficientStock
		}
		return nil
	}
	return domain.ErrInvalidInput
}

// SignedDelta retourne le delta signé qu'un mouvement applique à la quantité
// (entrée +, sortie −).
func SignedDelta(direction string, quantity int) int {
	if direction == entity.MovementSortie {
		return -quantity
	}
	return quantity
}

// LineTotal calcule quantité × prix unitaire.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(quantity)).Mul(unitPrice)
}
