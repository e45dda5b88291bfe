package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Cyrivelus/stockpro/internal/domain"
	"github.com/Cyrivelus/stockpro/internal/domain/entity"
	"github.com/Cyrivelus/stockpro/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, name, date, status, notes, total_items, total_value,
	created_at, updated_at, created_by`

const lineColumns = `inventory_id, item_id, theoretical_quantity, actual_quantity, difference,
	unit_price, theoretical_value, actual_value, value_difference, notes`

// InventoryRepo implémentation du port InventoryRepository sur PostgreSQL
// (pool ou tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construit l'adaptateur. Passer un pool ou une tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create persiste une nouvelle session d'inventaire.
func (r *InventoryRepo) Create(inv *entity.Inventory) error {
	query := `
		INSERT INTO inventories (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.Name, inv.Date, inv.Status, inv.Notes,
		inv.TotalItems, inv.TotalValue, inv.CreatedAt, inv.UpdatedAt,
		nullable(inv.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// GetByID retourne une session par ID, nil si absente.
func (r *InventoryRepo) GetByID(id string) (*entity.Inventory, error) {
	return r.get(id, "")
}

// GetForUpdate retourne la session en verrouillant sa ligne (SELECT FOR UPDATE).
// Sérialise saisies de comptage et clôtures sur une même session.
func (r *InventoryRepo) GetForUpdate(id string) (*entity.Inventory, error) {
	return r.get(id, " FOR UPDATE")
}

func (r *InventoryRepo) get(id, suffix string) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories WHERE id = $1` + suffix
	inv, err := scanInventory(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return inv, nil
}

// UpdateStatus écrit une transition de statut.
func (r *InventoryRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	query := `UPDATE inventories SET status = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update inventory status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateTotals écrit les agrégats recalculés et le statut dans la même requête.
func (r *InventoryRepo) UpdateTotals(id string, totalItems int, totalValue decimal.Decimal, status string, updatedAt time.Time) error {
	query := `
		UPDATE inventories SET total_items = $2, total_value = $3, status = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, totalItems, totalValue, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update inventory totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List retourne les sessions, de la plus récente à la plus ancienne.
func (r *InventoryRepo) List(limit, offset int) ([]*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories ORDER BY date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Inventory
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// CreateLine persiste une ligne de rapprochement. Le doublon
// (inventaire, article) remonte ErrDuplicate.
func (r *InventoryRepo) CreateLine(line *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		line.InventoryID, line.ItemID,
		line.TheoreticalQuantity, line.ActualQuantity, line.Difference,
		line.UnitPrice, line.TheoreticalValue, line.ActualValue, line.ValueDifference,
		line.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory line: %w", err)
	}
	return nil
}

// GetLine retourne la ligne (inventaire, article), nil si absente.
func (r *InventoryRepo) GetLine(inventoryID, itemID string) (*entity.InventoryItem, error) {
	query := `SELECT ` + lineColumns + ` FROM inventory_items WHERE inventory_id = $1 AND item_id = $2`
	line, err := scanLine(r.q.QueryRow(context.Background(), query, inventoryID, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory line: %w", err)
	}
	return line, nil
}

// UpdateLine écrit le comptage et tous les champs dérivés ensemble : aucun
// dérivé ne peut rester obsolète en base.
func (r *InventoryRepo) UpdateLine(line *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items SET
			actual_quantity = $3, difference = $4, unit_price = $5,
			theoretical_value = $6, actual_value = $7, value_difference = $8, notes = $9
		WHERE inventory_id = $1 AND item_id = $2`
	tag, err := r.q.Exec(context.Background(), query,
		line.InventoryID, line.ItemID,
		line.ActualQuantity, line.Difference, line.UnitPrice,
		line.TheoreticalValue, line.ActualValue, line.ValueDifference, line.Notes,
	)
	if err != nil {
		return fmt.Errorf("update inventory line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListLines retourne toutes les lignes d'une session.
func (r *InventoryRepo) ListLines(inventoryID string) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + lineColumns + ` FROM inventory_items WHERE inventory_id = $1 ORDER BY item_id`
	rows, err := r.q.Query(context.Background(), query, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("list inventory lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.InventoryItem
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func scanInventory(row pgx.Row) (*entity.Inventory, error) {
	var inv entity.Inventory
	var createdBy *string
	err := row.Scan(
		&inv.ID, &inv.Name, &inv.Date, &inv.Status, &inv.Notes,
		&inv.TotalItems, &inv.TotalValue, &inv.CreatedAt, &inv.UpdatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	if createdBy != nil {
		inv.CreatedBy = *createdBy
	}
	return &inv, nil
}

func scanLine(row pgx.Row) (*entity.InventoryItem, error) {
	var l entity.InventoryItem
	err := row.Scan(
		&l.InventoryID, &l.ItemID,
		&l.TheoreticalQuantity, &l.ActualQuantity, &l.Difference,
		&l.UnitPrice, &l.TheoreticalValue, &l.ActualValue, &l.ValueDifference,
		&l.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
