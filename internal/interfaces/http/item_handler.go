package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Cyrivelus/stockpro/internal/application/catalog"
	"github.com/Cyrivelus/stockpro/internal/application/dto"
	"github.com/Cyrivelus/stockpro/internal/domain/repository"
)

// ItemHandler requêtes HTTP du catalogue d'articles (protégé).
type ItemHandler struct {
	uc *catalog.ItemUseCase
}

// NewItemHandler construit le handler.
func NewItemHandler(uc *catalog.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create crée un article (quantité initiale zéro, le stock s'enregistre en entrée).
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	item, err := h.uc.Create(c.Context(), catalog.CreateItemInput{
		Code:         in.Code,
		Name:         in.Name,
		Description:  in.Description,
		CategoryID:   in.CategoryID,
		Brand:        in.Brand,
		Model:        in.Model,
		SerialNumber: in.SerialNumber,
		Condition:    in.Condition,
		MinStock:     in.MinStock,
		Location:     in.Location,
		UnitPrice:    in.UnitPrice,
		Status:       in.Status,
		UserID:       GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ItemToDTO(item))
}

// Get retourne un article par ID.
func (h *ItemHandler) Get(c *fiber.Ctx) error {
	item, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ItemToDTO(item))
}

// List liste les articles (filtres : category_id, status, low_stock).
func (h *ItemHandler) List(c *fiber.Ctx) error {
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
	items, err := h.uc.List(c.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, dto.ItemToDTO(item))
	}
	return c.JSON(fiber.Map{"count": len(out), "items": out})
}

// Update modifie les champs descriptifs d'un article. Une modification
// directe de la quantité est refusée.
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	item, err := h.uc.Update(c.Context(), c.Params("id"), catalog.UpdateItemInput{
		Name:         in.Name,
		Description:  in.Description,
		CategoryID:   in.CategoryID,
		Brand:        in.Brand,
		Model:        in.Model,
		SerialNumber: in.SerialNumber,
		Condition:    in.Condition,
		MinStock:     in.MinStock,
		Location:     in.Location,
		UnitPrice:    in.UnitPrice,
		Status:       in.Status,
		Quantity:     in.Quantity,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ItemToDTO(item))
}

// Delete supprime un article non référencé par le livre.
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
