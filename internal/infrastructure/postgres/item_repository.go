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

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, code, name, description, category_id, brand, model, serial_number,
	condition, quantity, min_stock, location, unit_price, total_value, status,
	created_at, updated_at, created_by`

// ItemRepo implémentation du port ItemRepository sur PostgreSQL (pool ou tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construit l'adaptateur. Passer un pool ou une tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nouvel article. Un code déjà pris remonte ErrDuplicate.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Code, item.Name, item.Description, nullable(item.CategoryID),
		item.Brand, item.Model, item.SerialNumber, item.Condition,
		item.Quantity, item.MinStock, item.Location,
		item.UnitPrice, item.TotalValue, item.Status,
		item.CreatedAt, item.UpdatedAt, nullable(item.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID retourne un article par ID, nil si absent.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	return r.getWhere("id = $1", id, "")
}

// GetByCode retourne un article par code, nil si absent.
func (r *ItemRepo) GetByCode(code string) (*entity.Item, error) {
	return r.getWhere("code = $1", code, "")
}

// GetForUpdate retourne l'article en verrouillant sa ligne (SELECT FOR UPDATE).
// À utiliser dans une transaction, le verrou tient jusqu'au commit.
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return r.getWhere("id = $1", id, " FOR UPDATE")
}

func (r *ItemRepo) getWhere(where, arg, suffix string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE ` + where + suffix
	row := r.q.QueryRow(context.Background(), query, arg)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// UpdateStock écrit la quantité et la valeur totale recalculée. Appelé sous
// verrou de ligne, dans la même transaction que l'écriture du mouvement.
func (r *ItemRepo) UpdateStock(id string, quantity int, totalValue decimal.Decimal, updatedAt time.Time) error {
	query := `UPDATE items SET quantity = $2, total_value = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, quantity, totalValue, updatedAt)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update écrit les champs descriptifs et le prix ; ne touche pas quantity.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET
			name = $2, description = $3, category_id = $4, brand = $5, model = $6,
			serial_number = $7, condition = $8, min_stock = $9, location = $10,
			unit_price = $11, total_value = $12, status = $13, updated_at = $14
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, nullable(item.CategoryID),
		item.Brand, item.Model, item.SerialNumber, item.Condition,
		item.MinStock, item.Location, item.UnitPrice, item.TotalValue,
		item.Status, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete supprime un article. La FK des mouvements protège le livre :
// un article référencé remonte ErrConflict.
func (r *ItemRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List retourne les articles selon le filtre, triés par code.
func (r *ItemRepo) List(filter repository.ItemFilter, limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.CategoryID != "" {
		query += fmt.Sprintf(" AND category_id = $%d", pos)
		args = append(args, filter.CategoryID)
		pos++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	if filter.LowStockOnly {
		query += " AND quantity <= min_stock"
	}
	query += fmt.Sprintf(" ORDER BY code LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	return r.list(query, args...)
}

// ListAll retourne tous les articles (instantané d'ouverture d'inventaire).
func (r *ItemRepo) ListAll() ([]*entity.Item, error) {
	return r.list(`SELECT ` + itemColumns + ` FROM items ORDER BY code`)
}

func (r *ItemRepo) list(query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var items []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var i entity.Item
	var categoryID, createdBy *string
	err := row.Scan(
		&i.ID, &i.Code, &i.Name, &i.Description, &categoryID,
		&i.Brand, &i.Model, &i.SerialNumber, &i.Condition,
		&i.Quantity, &i.MinStock, &i.Location,
		&i.UnitPrice, &i.TotalValue, &i.Status,
		&i.CreatedAt, &i.UpdatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	if categoryID != nil {
		i.CategoryID = *categoryID
	}
	if createdBy != nil {
		i.CreatedBy = *createdBy
	}
	return &i, nil
}

// nullable convertit une chaîne vide en NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
