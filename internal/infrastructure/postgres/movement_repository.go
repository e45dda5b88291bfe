package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Cyrivelus/stockpro/internal/domain/entity"
	"github.com/Cyrivelus/stockpro/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, item_id, direction, quantity, acquisition_mode_id, supplier_id,
	donor, source, unit_price, total_price, beneficiary_id, destination,
	invoice_number, receipt_number, movement_date, created_at, created_by, notes`

// MovementRepo implémentation du port MovementRepository sur PostgreSQL
// (pool ou tx). Insertion seule : le livre est en append-only.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construit l'adaptateur. Passer un pool ou une tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste une écriture du livre et renseigne son ID séquentiel.
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO movements (item_id, direction, quantity, acquisition_mode_id, supplier_id,
			donor, source, unit_price, total_price, beneficiary_id, destination,
			invoice_number, receipt_number, movement_date, created_at, created_by, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		m.ItemID, m.Direction, m.Quantity, m.AcquisitionModeID, m.SupplierID,
		m.Donor, m.Source, m.UnitPrice, m.TotalPrice, m.BeneficiaryID, m.Destination,
		m.InvoiceNumber, m.ReceiptNumber, m.MovementDate, m.CreatedAt,
		nullable(m.CreatedBy), m.Notes,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID retourne une écriture par ID, nil si absente.
func (r *MovementRepo) GetByID(id int64) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List retourne l'historique filtrable par article, sens et période,
// du plus récent au plus ancien.
func (r *MovementRepo) List(filter repository.MovementFilter, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ItemID != "" {
		query += fmt.Sprintf(" AND item_id = $%d", pos)
		args = append(args, filter.ItemID)
		pos++
	}
	if filter.Direction != "" {
		query += fmt.Sprintf(" AND direction = $%d", pos)
		args = append(args, filter.Direction)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND movement_date >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND movement_date <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY movement_date DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var createdBy *string
	err := row.Scan(
		&m.ID, &m.ItemID, &m.Direction, &m.Quantity, &m.AcquisitionModeID, &m.SupplierID,
		&m.Donor, &m.Source, &m.UnitPrice, &m.TotalPrice, &m.BeneficiaryID, &m.Destination,
		&m.InvoiceNumber, &m.ReceiptNumber, &m.MovementDate, &m.CreatedAt, &createdBy, &m.Notes,
	)
	if err != nil {
		return nil, err
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}
