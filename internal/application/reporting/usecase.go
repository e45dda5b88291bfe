// Package reporting expose les projections en lecture seule consommées par
// les couches de restitution externes (exports, tableaux de bord). Les
// lectures se font sur le même magasin que le moteur d'écriture : pas de
// cache matérialisé qui pourrait dériver.
package reporting

import (
	"context"

	"github.com/Cyrivelus/stockpro/internal/application/dto"
	"github.com/Cyrivelus/stockpro/internal/domain"
	"github.com/Cyrivelus/stockpro/internal/domain/repository"
)

// UseCase projections de consultation du stock et des inventaires.
type UseCase struct {
	itemRepo repository.ItemRepository
	movRepo  repository.MovementRepository
	invRepo  repository.InventoryRepository
}

// NewUseCase construit la surface de consultation.
func NewUseCase(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	invRepo repository.InventoryRepository,
) *UseCase {
	return &UseCase{itemRepo: itemRepo, movRepo: movRepo, invRepo: invRepo}
}

// CurrentStock retourne l'état du stock courant avec l'indicateur d'alerte
// (quantité <= stock minimum) par article.
func (uc *UseCase) CurrentStock(ctx context.Context, filter repository.ItemFilter, limit, offset int) ([]dto.StockLineDTO, error) {
	items, err := uc.itemRepo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	lines := make([]dto.StockLineDTO, 0, len(items))
	for _, item := range items {
		lines = append(lines, dto.StockLineDTO{
			ItemID:     item.ID,
			Code:       item.Code,
			Name:       item.Name,
			Quantity:   item.Quantity,
			MinStock:   item.MinStock,
			UnitPrice:  item.UnitPrice,
			TotalValue: item.TotalValue,
			Status:     item.Status,
			LowStock:   item.IsLowStock(),
		})
	}
	return lines, nil
}

// MovementHistory retourne l'historique du livre, filtrable par article,
// période et sens, du plus récent au plus ancien.
func (uc *UseCase) MovementHistory(ctx context.Context, filter repository.MovementFilter, limit, offset int) ([]dto.MovementDTO, error) {
	movements, err := uc.movRepo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementToDTO(m))
	}
	return out, nil
}

// VarianceReport retourne le rapport d'écarts d'une session : toutes ses
// lignes plus l'agrégat, lus dans le même magasin au même instant.
func (uc *UseCase) VarianceReport(ctx context.Context, inventoryID string) (*dto.VarianceReportDTO, error) {
	inv, err := uc.invRepo.GetByID(inventoryID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.invRepo.ListLines(inventoryID)
	if err != nil {
		return nil, err
	}
	report := &dto.VarianceReportDTO{
		Inventory: dto.InventoryToDTO(inv),
		Lines:     make([]dto.InventoryLineDTO, 0, len(lines)),
	}
	for _, l := range lines {
		report.Lines = append(report.Lines, dto.InventoryLineToDTO(l))
	}
	return report, nil
}

// ListInventories retourne les sessions d'inventaire, paginées.
func (uc *UseCase) ListInventories(ctx context.Context, limit, offset int) ([]dto.InventoryDTO, error) {
	invs, err := uc.invRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryDTO, 0, len(invs))
	for _, inv := range invs {
		out = append(out, dto.InventoryToDTO(inv))
	}
	return out, nil
}
