package entity

import "github.com/shopspring/decimal"

// InventoryItem est une ligne de rapprochement, unique par (inventaire, article).
// TheoreticalQuantity est figée au moment de l'ouverture de la session, elle ne
// suit pas le stock vivant. Les champs dérivés se recalculent toujours ensemble.
type InventoryItem struct {
	InventoryID string
	ItemID      string

	TheoreticalQuantity int
	ActualQuantity      int
	Difference          int // actual − theoretical ; négatif = freinte, positif = excédent

	UnitPrice        decimal.Decimal
	TheoreticalValue decimal.Decimal
	ActualValue      decimal.Decimal
	ValueDifference  decimal.Decimal

	Notes string
}

// Recompute recalcule tous les champs dérivés depuis les champs de base.
// À appeler après toute modification d'ActualQuantity ou d'UnitPrice pour
// qu'aucun dérivé ne reste obsolète.
func (l *InventoryItem) Recompute() {
	l.Difference = l.ActualQuantity - l.TheoreticalQuantity
	l.TheoreticalValue = decimal.NewFromInt(int64(l.TheoreticalQuantity)).Mul(l.UnitPrice)
	l.ActualValue = decimal.NewFromInt(int64(l.ActualQuantity)).Mul(l.UnitPrice)
	l.ValueDifference = l.ActualValue.Sub(l.TheoreticalValue)
}
