package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Cyrivelus/stockpro/internal/domain/entity"
)

// OpenInventoryRequest body pour POST /api/inventories.
type OpenInventoryRequest struct {
	Name  string     `json:"name"`
	Date  *time.Time `json:"date,omitempty"`
	Notes string     `json:"notes,omitempty"`
}

// RecordCountRequest body pour la saisie d'un comptage physique.
type RecordCountRequest struct {
	ActualQuantity int    `json:"actual_quantity"`
	Notes          string `json:"notes,omitempty"`
}

// InventoryDTO représentation d'une session d'inventaire.
type InventoryDTO struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Date       time.Time       `json:"date"`
	Status     string          `json:"status"`
	Notes      string          `json:"notes,omitempty"`
	TotalItems int             `json:"total_items"`
	TotalValue decimal.Decimal `json:"total_value"`
	CreatedBy  string          `json:"created_by,omitempty"`
}

// InventoryToDTO convertit l'entité en représentation de réponse.
func InventoryToDTO(inv *entity.Inventory) InventoryDTO {
	return InventoryDTO{
		ID:         inv.ID,
		Name:       inv.Name,
		Date:       inv.Date,
		Status:     inv.Status,
		Notes:      inv.Notes,
		TotalItems: inv.TotalItems,
		TotalValue: inv.TotalValue,
		CreatedBy:  inv.CreatedBy,
	}
}

// InventoryLineDTO ligne de rapprochement avec ses écarts signés.
type InventoryLineDTO struct {
	ItemID              string          `json:"item_id"`
	TheoreticalQuantity int             `json:"theoretical_quantity"`
	ActualQuantity      int             `json:"actual_quantity"`
	Difference          int             `json:"difference"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	TheoreticalValue    decimal.Decimal `json:"theoretical_value"`
	ActualValue         decimal.Decimal `json:"actual_value"`
	ValueDifference     decimal.Decimal `json:"value_difference"`
	Notes               string          `json:"notes,omitempty"`
}

// InventoryLineToDTO convertit une ligne en représentation de réponse.
func InventoryLineToDTO(l *entity.InventoryItem) InventoryLineDTO {
	return InventoryLineDTO{
		ItemID:              l.ItemID,
		TheoreticalQuantity: l.TheoreticalQuantity,
		ActualQuantity:      l.ActualQuantity,
		Difference:          l.Difference,
		UnitPrice:           l.UnitPrice,
		TheoreticalValue:    l.TheoreticalValue,
		ActualValue:         l.ActualValue,
		ValueDifference:     l.ValueDifference,
		Notes:               l.Notes,
	}
}

// VarianceReportDTO rapport d'écarts d'une session : toutes les lignes plus
// l'agrégat de la session.
type VarianceReportDTO struct {
	Inventory InventoryDTO       `json:"inventory"`
	Lines     []InventoryLineDTO `json:"lines"`
}
