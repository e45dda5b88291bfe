package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Cyrivelus/stockpro/internal/application/catalog"
	"github.com/Cyrivelus/stockpro/internal/application/reconciliation"
	"github.com/Cyrivelus/stockpro/internal/application/stock"
	"github.com/Cyrivelus/stockpro/internal/domain/repository"
)

// Le runner sert les trois écrivains : mouvements, rapprochement, catalogue.
var _ stock.TxRunner = (*TxRunner)(nil)
var _ reconciliation.TxRunner = (*TxRunner)(nil)
var _ catalog.TxRunner = (*TxRunner)(nil)

// TxRunner exécute des callbacks dans une transaction PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construit le runner avec le pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run ouvre une transaction, exécute fn avec des dépôts attachés à la tx et
// fait Commit ou Rollback. Une annulation de contexte avant le commit laisse
// la base inchangée.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	itemRepo := NewItemRepository(tx)
	movRepo := NewMovementRepository(tx)

	if err := fn(itemRepo, movRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunItems ouvre une transaction avec le seul dépôt d'articles (mises à jour
// du catalogue sous verrou de ligne).
func (r *TxRunner) RunItems(ctx context.Context, fn func(itemRepo repository.ItemRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewItemRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunInventory ouvre une transaction avec les dépôts d'inventaire et
// d'articles (ouverture de session, comptages, clôtures).
func (r *TxRunner) RunInventory(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	itemRepo repository.ItemRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	invRepo := NewInventoryRepository(tx)
	itemRepo := NewItemRepository(tx)

	if err := fn(invRepo, itemRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
