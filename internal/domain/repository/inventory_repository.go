package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Cyrivelus/stockpro/internal/domain/entity"
)

// InventoryRepository définit le port de persistance des sessions d'inventaire
// et de leurs lignes. Les transitions de statut et la saisie des comptages se
// font sous verrou de la ligne inventories (GetForUpdate) pour qu'une clôture
// ne puisse pas agréger une ligne en cours d'écriture.
type InventoryRepository interface {
	Create(inv *entity.Inventory) error
	GetByID(id string) (*entity.Inventory, error)
	// GetForUpdate verrouille la session (SELECT ... FOR UPDATE).
	GetForUpdate(id string) (*entity.Inventory, error)
	UpdateStatus(id, status string, updatedAt time.Time) error
	// UpdateTotals écrit les agrégats recalculés et le nouveau statut ensemble.
	UpdateTotals(id string, totalItems int, totalValue decimal.Decimal, status string, updatedAt time.Time) error
	List(limit, offset int) ([]*entity.Inventory, error)

	CreateLine(line *entity.InventoryItem) error
	GetLine(inventoryID, itemID string) (*entity.InventoryItem, error)
	UpdateLine(line *entity.InventoryItem) error
	ListLines(inventoryID string) ([]*entity.InventoryItem, error)
}
