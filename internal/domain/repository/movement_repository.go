package repository

import (
	"time"

	"github.com/Cyrivelus/stockpro/internal/domain/entity"
)

// MovementFilter critères d'historique des mouvements.
type MovementFilter struct {
	ItemID    string
	Direction string
	From      *time.Time
	To        *time.Time
}

// MovementRepository définit le port de persistance du livre de stock.
// Volontairement sans Update ni Delete : une écriture est immuable, une
// erreur se corrige par un mouvement compensatoire.
type MovementRepository interface {
	// Create persiste le mouvement et renseigne son ID séquentiel.
	Create(movement *entity.Movement) error
	GetByID(id int64) (*entity.Movement, error)
	List(filter MovementFilter, limit, offset int) ([]*entity.Movement, error)
}
