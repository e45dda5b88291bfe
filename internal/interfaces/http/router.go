package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Cyrivelus/stockpro/internal/application/catalog"
	"github.com/Cyrivelus/stockpro/internal/application/reconciliation"
	"github.com/Cyrivelus/stockpro/internal/application/reporting"
	"github.com/Cyrivelus/stockpro/internal/application/stock"
)

// RouterDeps dépendances du router.
type RouterDeps struct {
	ItemUC        *catalog.ItemUseCase
	ApplyMovement *stock.ApplyMovementUseCase
	Reconcile     *reconciliation.UseCase
	Reporting     *reporting.UseCase
	JWTSecret     string
}

// Router enregistre les routes de l'API. Tout passe derrière le middleware
// d'authentification : chaque écriture porte un created_by.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Catalogue d'articles
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.Get)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	// Mouvements et état du stock
	stockHandler := NewStockHandler(deps.ApplyMovement, deps.Reporting)
	api.Post("/movements", stockHandler.ApplyMovement)
	api.Get("/movements", stockHandler.MovementHistory)
	api.Get("/stock", stockHandler.CurrentStock)

	// Sessions d'inventaire
	inventories := api.Group("/inventories")
	inventoryHandler := NewInventoryHandler(deps.Reconcile, deps.Reporting)
	inventories.Post("/", inventoryHandler.Open)
	inventories.Get("/", inventoryHandler.List)
	inventories.Get("/:id/report", inventoryHandler.Report)
	inventories.Put("/:id/items/:itemID", inventoryHandler.RecordCount)
	inventories.Post("/:id/finalize", inventoryHandler.Finalize)
	inventories.Post("/:id/validate", inventoryHandler.Validate)
}
