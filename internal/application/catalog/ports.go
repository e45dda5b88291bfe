package catalog

import (
	"context"

	"github.com/Cyrivelus/stockpro/internal/domain/repository"
)

// TxRunner exécute une fonction dans une transaction de BD avec le dépôt
// d'articles attaché à cette transaction. Update y relit l'article sous verrou
// de ligne : un mouvement ne peut pas s'intercaler entre la lecture de la
// quantité et l'écriture de la valeur totale recalculée.
type TxRunner interface {
	RunItems(ctx context.Context, fn func(itemRepo repository.ItemRepository) error) error
}
