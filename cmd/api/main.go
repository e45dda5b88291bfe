package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Cyrivelus/stockpro/internal/application/catalog"
	"github.com/Cyrivelus/stockpro/internal/application/reconciliation"
	"github.com/Cyrivelus/stockpro/internal/application/reporting"
	"github.com/Cyrivelus/stockpro/internal/application/stock"
	"github.com/Cyrivelus/stockpro/internal/infrastructure/postgres"
	httpRouter "github.com/Cyrivelus/stockpro/internal/interfaces/http"
	"github.com/Cyrivelus/stockpro/pkg/config"
	"github.com/Cyrivelus/stockpro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("charger la configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("démarrage de l'application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion à PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	movRepo := postgres.NewMovementRepository(pool)
	invRepo := postgres.NewInventoryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	itemUC := catalog.NewItemUseCase(itemRepo, txRunner, time.Now)
	applyUC := stock.NewApplyMovementUseCase(txRunner, time.Now)
	reconcileUC := reconciliation.NewUseCase(txRunner, time.Now)
	reportingUC := reporting.NewUseCase(itemRepo, movRepo, invRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:        itemUC,
		ApplyMovement: applyUC,
		Reconcile:     reconcileUC,
		Reporting:     reportingUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP terminé")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}
}
