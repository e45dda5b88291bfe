package reconciliation

import (
	"context"

	"github.com/Cyrivelus/stockpro/internal/domain/repository"
)

// TxRunner exécute une fonction dans une transaction de BD avec les dépôts
// d'inventaire et d'articles attachés à cette transaction. Le verrou pris sur
// la ligne inventories y sérialise saisies de comptage et clôtures.
type TxRunner interface {
	RunInventory(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		itemRepo repository.ItemRepository,
	) error) error
}
