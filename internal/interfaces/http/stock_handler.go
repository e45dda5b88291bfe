package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Cyrivelus/stockpro/internal/application/dto"
	"github.com/Cyrivelus/stockpro/internal/application/reporting"
	"github.com/Cyrivelus/stockpro/internal/application/stock"
	"github.com/Cyrivelus/stockpro/internal/domain/repository"
)

// StockHandler requêtes HTTP des mouvements et de l'état du stock (protégé).
type StockHandler struct {
	apply     *stock.ApplyMovementUseCase
	reporting *reporting.UseCase
}

// NewStockHandler construit le handler.
func NewStockHandler(apply *stock.ApplyMovementUseCase, reporting *reporting.UseCase) *StockHandler {
	return &StockHandler{apply: apply, reporting: reporting}
}

// ApplyMovement enregistre une entrée ou une sortie de stock.
func (h *StockHandler) ApplyMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "jeton invalide"})
	}
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	mov, err := h.apply.Apply(c.Context(), stock.MovementInput{
		UserID:            userID,
		ItemID:            in.ItemID,
		Direction:         in.Direction,
		Quantity:          in.Quantity,
		UnitPrice:         in.UnitPrice,
		AcquisitionModeID: in.AcquisitionModeID,
		SupplierID:        in.SupplierID,
		Donor:             in.Donor,
		Source:            in.Source,
		BeneficiaryID:     in.BeneficiaryID,
		Destination:       in.Destination,
		InvoiceNumber:     in.InvoiceNumber,
		ReceiptNumber:     in.ReceiptNumber,
		MovementDate:      in.MovementDate,
		Notes:             in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementToDTO(mov))
}

// MovementHistory historique du livre, filtrable par article, sens et période.
func (h *StockHandler) MovementHistory(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paramètres invalides"})
	}
	page.DefaultPage()

	filter := repository.MovementFilter{
		ItemID:    c.Query("item_id"),
		Direction: c.Query("direction"),
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from : date RFC3339 attendue"})
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to : date RFC3339 attendue"})
		}
		filter.To = &t
	}

	movements, err := h.reporting.MovementHistory(c.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"count": len(movements), "movements": movements})
}

// CurrentStock état du stock courant avec indicateur d'alerte par article.
func (h *StockHandler) CurrentStock(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paramètres invalides"})
	}
	page.DefaultPage()
	filter := repository.ItemFilter{
		CategoryID:   c.Query("category_id"),
		Status:       c.Query("status"),
		LowStockOnly: c.QueryBool("low_stock"),
	}
	lines, err := h.reporting.CurrentStock(c.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"count": len(lines), "stock": lines})
}
