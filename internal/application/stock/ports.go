package stock

import (
	"context"

	"github.com/Cyrivelus/stockpro/internal/domain/repository"
)

// TxRunner exécute une fonction dans une transaction de BD, en lui passant des
// dépôts attachés à cette transaction. Garantit le tout-ou-rien de l'application
// d'un mouvement : mise à jour de l'article et écriture du mouvement, ou ni
// l'un ni l'autre.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error) error
}
