package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Cyrivelus/stockpro/internal/domain/entity"
)

// ApplyMovementRequest body pour POST /api/movements.
type ApplyMovementRequest struct {
	ItemID            string          `json:"item_id"`
	Direction         string          `json:"direction"` // entree | sortie
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	AcquisitionModeID *string         `json:"acquisition_mode_id,omitempty"`
	SupplierID        *string         `json:"supplier_id,omitempty"`
	Donor             string          `json:"donor,omitempty"`
	Source            string          `json:"source,omitempty"`
	BeneficiaryID     *string         `json:"beneficiary_id,omitempty"`
	Destination       string          `json:"destination,omitempty"`
	InvoiceNumber     string          `json:"invoice_number,omitempty"`
	ReceiptNumber     string          `json:"receipt_number,omitempty"`
	MovementDate      *time.Time      `json:"movement_date,omitempty"`
	Notes             string          `json:"notes,omitempty"`
}

// MovementDTO représentation d'une écriture du livre de stock.
type MovementDTO struct {
	ID            int64           `json:"id"`
	ItemID        string          `json:"item_id"`
	Direction     string          `json:"direction"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	BeneficiaryID *string         `json:"beneficiary_id,omitempty"`
	Destination   string          `json:"destination,omitempty"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	ReceiptNumber string          `json:"receipt_number,omitempty"`
	MovementDate  time.Time       `json:"movement_date"`
	CreatedBy     string          `json:"created_by,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// MovementToDTO convertit l'entité en représentation de réponse.
func MovementToDTO(m *entity.Movement) MovementDTO {
	return MovementDTO{
		ID:            m.ID,
		ItemID:        m.ItemID,
		Direction:     m.Direction,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		TotalPrice:    m.TotalPrice,
		BeneficiaryID: m.BeneficiaryID,
		Destination:   m.Destination,
		InvoiceNumber: m.InvoiceNumber,
		ReceiptNumber: m.ReceiptNumber,
		MovementDate:  m.MovementDate,
		CreatedBy:     m.CreatedBy,
		Notes:         m.Notes,
	}
}

// StockLineDTO ligne de l'état du stock courant.
type StockLineDTO struct {
	ItemID     string          `json:"item_id"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	MinStock   int             `json:"min_stock"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalValue decimal.Decimal `json:"total_value"`
	Status     string          `json:"status"`
	LowStock   bool            `json:"low_stock"`
}
