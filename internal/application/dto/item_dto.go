package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Cyrivelus/stockpro/internal/domain/entity"
)

// CreateItemRequest body pour POST /api/items.
type CreateItemRequest struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	CategoryID   string          `json:"category_id,omitempty"`
	Brand        string          `json:"brand,omitempty"`
	Model        string          `json:"model,omitempty"`
	SerialNumber string          `json:"serial_number,omitempty"`
	Condition    string          `json:"condition,omitempty"`
	MinStock     int             `json:"min_stock"`
	Location     string          `json:"location,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Status       string          `json:"status,omitempty"`
}

// UpdateItemRequest body pour PUT /api/items/:id. Les champs absents ne sont
// pas modifiés. quantity n'est accepté que s'il est égal à la valeur courante.
type UpdateItemRequest struct {
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	CategoryID   *string          `json:"category_id,omitempty"`
	Brand        *string          `json:"brand,omitempty"`
	Model        *string          `json:"model,omitempty"`
	SerialNumber *string          `json:"serial_number,omitempty"`
	Condition    *string          `json:"condition,omitempty"`
	MinStock     *int             `json:"min_stock,omitempty"`
	Location     *string          `json:"location,omitempty"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	Status       *string          `json:"status,omitempty"`
	Quantity     *int             `json:"quantity,omitempty"`
}

// ItemDTO représentation d'un article dans les réponses.
type ItemDTO struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	CategoryID   string          `json:"category_id,omitempty"`
	Brand        string          `json:"brand,omitempty"`
	Model        string          `json:"model,omitempty"`
	SerialNumber string          `json:"serial_number,omitempty"`
	Condition    string          `json:"condition"`
	Quantity     int             `json:"quantity"`
	MinStock     int             `json:"min_stock"`
	Location     string          `json:"location,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalValue   decimal.Decimal `json:"total_value"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ItemToDTO convertit l'entité en représentation de réponse.
func ItemToDTO(i *entity.Item) ItemDTO {
	return ItemDTO{
		ID:           i.ID,
		Code:         i.Code,
		Name:         i.Name,
		Description:  i.Description,
		CategoryID:   i.CategoryID,
		Brand:        i.Brand,
		Model:        i.Model,
		SerialNumber: i.SerialNumber,
		Condition:    i.Condition,
		Quantity:     i.Quantity,
		MinStock:     i.MinStock,
		Location:     i.Location,
		UnitPrice:    i.UnitPrice,
		TotalValue:   i.TotalValue,
		Status:       i.Status,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}
