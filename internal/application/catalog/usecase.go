// Package catalog gère le cycle de vie des articles hors quantité : la
// quantité ne bouge que par mouvement de stock.
package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Cyrivelus/stockpro/internal/domain"
	"github.com/Cyrivelus/stockpro/internal/domain/entity"
	"github.com/Cyrivelus/stockpro/internal/domain/repository"
)

// ItemUseCase opérations opérateur sur le catalogue d'articles. Les lectures
// passent par itemRepo (pool) ; Update passe par txRunner pour relire
// l'article sous verrou de ligne avant de réécrire la valeur totale.
type ItemUseCase struct {
	itemRepo repository.ItemRepository
	txRunner TxRunner
	clock    func() time.Time
}

// NewItemUseCase construit le cas d'usage.
func NewItemUseCase(itemRepo repository.ItemRepository, txRunner TxRunner, clock func() time.Time) *ItemUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &ItemUseCase{itemRepo: itemRepo, txRunner: txRunner, clock: clock}
}

// CreateItemInput entrée de création d'article.
type CreateItemInput struct {
	Code         string
	Name         string
	Description  string
	CategoryID   string
	Brand        string
	Model        string
	SerialNumber string
	Condition    string
	MinStock     int
	Location     string
	UnitPrice    decimal.Decimal
	Status       string
	UserID       string
}

// Create enregistre un article à quantité zéro : le stock initial s'enregistre
// ensuite comme une entrée, pour que la quantité reste la somme signée des
// mouvements depuis la création.
func (uc *ItemUseCase) Create(ctx context.Context, input CreateItemInput) (*entity.Item, error) {
	if input.Code == "" || input.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.UnitPrice.IsNegative() || input.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	status := input.Status
	if status == "" {
		status = entity.ItemStatusDisponible
	}
	if !entity.ValidItemStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	condition := input.Condition
	if condition == "" {
		condition = entity.ConditionNeuf
	}

	now := uc.clock()
	item := &entity.Item{
		ID:           uuid.New().String(),
		Code:         input.Code,
		Name:         input.Name,
		Description:  input.Description,
		CategoryID:   input.CategoryID,
		Brand:        input.Brand,
		Model:        input.Model,
		SerialNumber: input.SerialNumber,
		Condition:    condition,
		Quantity:     0,
		MinStock:     input.MinStock,
		Location:     input.Location,
		UnitPrice:    input.UnitPrice,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    input.UserID,
	}
	item.RecomputeTotalValue()

	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItemInput champs modifiables d'un article. Les pointeurs nil sont
// laissés tels quels. Quantity est présent uniquement pour détecter une
// tentative de modification directe, qui est refusée.
type UpdateItemInput struct {
	Name         *string
	Description  *string
	CategoryID   *string
	Brand        *string
	Model        *string
	SerialNumber *string
	Condition    *string
	MinStock     *int
	Location     *string
	UnitPrice    *decimal.Decimal
	Status       *string
	Quantity     *int
}

// Update modifie les champs descriptifs d'un article. Une tentative de changer
// la quantité est refusée avec ErrQuantityImmutable : c'est un mouvement qu'il
// faut enregistrer. Un changement de prix unitaire recalcule la valeur totale ;
// l'article est relu sous verrou de ligne pour que le recalcul parte de la
// quantité de la ligne elle-même, pas d'un instantané qu'un mouvement commité
// entre-temps aurait périmé.
func (uc *ItemUseCase) Update(ctx context.Context, id string, input UpdateItemInput) (*entity.Item, error) {
	var item *entity.Item
	err := uc.txRunner.RunItems(ctx, func(itemRepo repository.ItemRepository) error {
		var err error
		item, err = itemRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if input.Quantity != nil && *input.Quantity != item.Quantity {
			return domain.ErrQuantityImmutable
		}

		if input.Name != nil {
			item.Name = *input.Name
		}
		if input.Description != nil {
			item.Description = *input.Description
		}
		if input.CategoryID != nil {
			item.CategoryID = *input.CategoryID
		}
		if input.Brand != nil {
			item.Brand = *input.Brand
		}
		if input.Model != nil {
			item.Model = *input.Model
		}
		if input.SerialNumber != nil {
			item.SerialNumber = *input.SerialNumber
		}
		if input.Condition != nil {
			item.Condition = *input.Condition
		}
		if input.MinStock != nil {
			if *input.MinStock < 0 {
				return domain.ErrInvalidInput
			}
			item.MinStock = *input.MinStock
		}
		if input.Location != nil {
			item.Location = *input.Location
		}
		if input.UnitPrice != nil {
			if input.UnitPrice.IsNegative() {
				return domain.ErrInvalidInput
			}
			item.UnitPrice = *input.UnitPrice
		}
		if input.Status != nil {
			if !entity.ValidItemStatus(*input.Status) {
				return domain.ErrInvalidInput
			}
			item.Status = *input.Status
		}
		item.RecomputeTotalValue()
		item.UpdatedAt = uc.clock()

		return itemRepo.Update(item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Get retourne un article par ID.
func (uc *ItemUseCase) Get(ctx context.Context, id string) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// GetByCode retourne un article par code.
func (uc *ItemUseCase) GetByCode(ctx context.Context, code string) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// List retourne les articles selon le filtre, paginés.
func (uc *ItemUseCase) List(ctx context.Context, filter repository.ItemFilter, limit, offset int) ([]*entity.Item, error) {
	return uc.itemRepo.List(filter, limit, offset)
}

// Delete supprime un article. La clé étrangère des mouvements protège le
// livre : un article référencé par un mouvement remonte ErrConflict.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.itemRepo.Delete(id)
}
