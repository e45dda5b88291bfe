// Package reconciliation porte le moteur de rapprochement d'inventaire :
// machine à états planifie → en_cours → termine → valide, sans retour arrière.
package reconciliation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Cyrivelus/stockpro/internal/domain"
	"github.com/Cyrivelus/stockpro/internal/domain/entity"
	"github.com/Cyrivelus/stockpro/internal/domain/repository"
)

// UseCase pilote les sessions d'inventaire physique.
type UseCase struct {
	txRunner TxRunner
	clock    func() time.Time
}

// NewUseCase construit le moteur de rapprochement. clock injectée pour les tests.
func NewUseCase(txRunner TxRunner, clock func() time.Time) *UseCase {
	if clock == nil {
		clock = time.Now
	}
	return &UseCase{txRunner: txRunner, clock: clock}
}

// OpenInput entrée pour ouvrir une session d'inventaire.
type OpenInput struct {
	Name   string
	Date   time.Time
	Notes  string
	UserID string
}

// Open crée la session en planifie puis fige, pour chaque article existant,
// une ligne avec théorique = réel = quantité courante et le prix unitaire
// copié. Passe en en_cours dès qu'au moins une ligne existe. Le réel initial
// égale le théorique en attendant le comptage physique.
func (uc *UseCase) Open(ctx context.Context, input OpenInput) (*entity.Inventory, error) {
	if input.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.clock()
	date := input.Date
	if date.IsZero() {
		date = now
	}

	inv := &entity.Inventory{
		ID:         uuid.New().String(),
		Name:       input.Name,
		Date:       date,
		Status:     entity.InventoryPlanifie,
		Notes:      input.Notes,
		TotalValue: decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
		CreatedBy:  input.UserID,
	}

	err := uc.txRunner.RunInventory(ctx, func(
		invRepo repository.InventoryRepository,
		itemRepo repository.ItemRepository,
	) error {
		if err := invRepo.Create(inv); err != nil {
			return err
		}
		items, err := itemRepo.ListAll()
		if err != nil {
			return err
		}
		for _, item := range items {
			line := &entity.InventoryItem{
				InventoryID:         inv.ID,
				ItemID:              item.ID,
				TheoreticalQuantity: item.Quantity,
				ActualQuantity:      item.Quantity,
				UnitPrice:           item.UnitPrice,
			}
			line.Recompute()
			if err := invRepo.CreateLine(line); err != nil {
				return err
			}
		}
		if len(items) > 0 {
			inv.Status = entity.InventoryEnCours
			return invRepo.UpdateStatus(inv.ID, inv.Status, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// RecordCount saisit la quantité physiquement comptée d'une ligne et recalcule
// ses champs dérivés, le tout sous verrou de la session. Ne touche jamais la
// quantité vivante de l'article : le comptage reste informatif jusqu'à la
// clôture.
func (uc *UseCase) RecordCount(ctx context.Context, inventoryID, itemID string, actualQuantity int, notes string) (*entity.InventoryItem, error) {
	if actualQuantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var line *entity.InventoryItem
	err := uc.txRunner.RunInventory(ctx, func(
		invRepo repository.InventoryRepository,
		itemRepo repository.ItemRepository,
	) error {
		inv, err := invRepo.GetForUpdate(inventoryID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if !inv.Open() {
			return domain.ErrInvalidState
		}
		line, err = invRepo.GetLine(inventoryID, itemID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrNotFound
		}
		line.ActualQuantity = actualQuantity
		if notes != "" {
			line.Notes = notes
		}
		line.Recompute()
		return invRepo.UpdateLine(line)
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

// Finalize recalcule les agrégats de la session depuis ses lignes
// (total_items = nombre de lignes, total_value = Σ actual_value) et passe en
// termine. Refusé si la session n'a aucune ligne ou n'est plus ouverte.
func (uc *UseCase) Finalize(ctx context.Context, inventoryID string) (*entity.Inventory, error) {
	var inv *entity.Inventory
	err := uc.txRunner.RunInventory(ctx, func(
		invRepo repository.InventoryRepository,
		itemRepo repository.ItemRepository,
	) error {
		var err error
		inv, err = invRepo.GetForUpdate(inventoryID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if !inv.Open() {
			return domain.ErrInvalidState
		}
		lines, err := invRepo.ListLines(inventoryID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrInvalidState
		}

		total := decimal.Zero
		for _, l := range lines {
			total = total.Add(l.ActualValue)
		}
		now := uc.clock()
		inv.TotalItems = len(lines)
		inv.TotalValue = total
		inv.Status = entity.InventoryTermine
		inv.UpdatedAt = now
		return invRepo.UpdateTotals(inv.ID, inv.TotalItems, inv.TotalValue, inv.Status, now)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Validate passe une session termine en valide, état terminal : lignes et
// session deviennent immuables. La quantité vivante des articles n'est pas
// ajustée ; un écart constaté se corrige par mouvement compensatoire explicite.
func (uc *UseCase) Validate(ctx context.Context, inventoryID string) (*entity.Inventory, error) {
	var inv *entity.Inventory
	err := uc.txRunner.RunInventory(ctx, func(
		invRepo repository.InventoryRepository,
		itemRepo repository.ItemRepository,
	) error {
		var err error
		inv, err = invRepo.GetForUpdate(inventoryID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.Status != entity.InventoryTermine {
			return domain.ErrInvalidState
		}
		now := uc.clock()
		inv.Status = entity.InventoryValide
		inv.UpdatedAt = now
		return invRepo.UpdateStatus(inv.ID, inv.Status, now)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}
