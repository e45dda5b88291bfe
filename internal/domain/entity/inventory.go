package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statuts d'une session d'inventaire. Valide est terminal.
const (
	InventoryPlanifie = "planifie"
	InventoryEnCours  = "en_cours"
	InventoryTermine  = "termine"
	InventoryValide   = "valide"
)

// Inventory est une session de comptage physique. TotalItems et TotalValue
// sont dérivés de ses lignes et recalculés à la clôture.
type Inventory struct {
	ID         string
	Name       string
	Date       time.Time
	Status     string
	Notes      string
	TotalItems int
	TotalValue decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
	CreatedBy  string
}

// Open indique si les lignes de la session peuvent encore être saisies.
func (inv *Inventory) Open() bool {
	return inv.Status == InventoryPlanifie || inv.Status == InventoryEnCours
}
