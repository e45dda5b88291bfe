package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Cyrivelus/stockpro/internal/application/dto"
	"github.com/Cyrivelus/stockpro/internal/application/reconciliation"
	"github.com/Cyrivelus/stockpro/internal/application/reporting"
)

// InventoryHandler requêtes HTTP des sessions d'inventaire (protégé).
type InventoryHandler struct {
	engine    *reconciliation.UseCase
	reporting *reporting.UseCase
}

// NewInventoryHandler construit le handler.
func NewInventoryHandler(engine *reconciliation.UseCase, reporting *reporting.UseCase) *InventoryHandler {
	return &InventoryHandler{engine: engine, reporting: reporting}
}

// Open ouvre une session et fige l'instantané théorique de tous les articles.
func (h *InventoryHandler) Open(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "jeton invalide"})
	}
	var in dto.OpenInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	input := reconciliation.OpenInput{Name: in.Name, Notes: in.Notes, UserID: userID}
	if in.Date != nil {
		input.Date = *in.Date
	}
	inv, err := h.engine.Open(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.InventoryToDTO(inv))
}

// List liste les sessions d'inventaire.
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paramètres invalides"})
	}
	page.DefaultPage()
	invs, err := h.reporting.ListInventories(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"count": len(invs), "inventories": invs})
}

// RecordCount saisit le comptage physique d'une ligne.
func (h *InventoryHandler) RecordCount(c *fiber.Ctx) error {
	var in dto.RecordCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	line, err := h.engine.RecordCount(c.Context(), c.Params("id"), c.Params("itemID"), in.ActualQuantity, in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.InventoryLineToDTO(line))
}

// Finalize clôture la session : agrégats recalculés depuis les lignes.
func (h *InventoryHandler) Finalize(c *fiber.Ctx) error {
	inv, err := h.engine.Finalize(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.InventoryToDTO(inv))
}

// Validate fige définitivement la session.
func (h *InventoryHandler) Validate(c *fiber.Ctx) error {
	inv, err := h.engine.Validate(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.InventoryToDTO(inv))
}

// Report rapport d'écarts : toutes les lignes plus l'agrégat de la session.
func (h *InventoryHandler) Report(c *fiber.Ctx) error {
	report, err := h.reporting.VarianceReport(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
