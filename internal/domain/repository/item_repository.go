package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Cyrivelus/stockpro/internal/domain/entity"
)

// ItemFilter critères de listage des articles.
type ItemFilter struct {
	CategoryID   string
	Status       string
	LowStockOnly bool
}

// ItemRepository définit le port de persistance des articles.
// Toute écriture de Quantity/TotalValue passe par UpdateStock, appelé sous
// verrou de ligne (GetForUpdate) dans une transaction.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetByCode(code string) (*entity.Item, error)
	// GetForUpdate verrouille la ligne de l'article (SELECT ... FOR UPDATE).
	GetForUpdate(id string) (*entity.Item, error)
	UpdateStock(id string, quantity int, totalValue decimal.Decimal, updatedAt time.Time) error
	// Update ne touche jamais quantity ni total_value (champs descriptifs + prix).
	Update(item *entity.Item) error
	Delete(id string) error
	List(filter ItemFilter, limit, offset int) ([]*entity.Item, error)
	// ListAll retourne tous les articles, pour l'instantané d'ouverture d'inventaire.
	ListAll() ([]*entity.Item, error)
}
