package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"go-stockledger/internal/handler"
	"go-stockledger/internal/middleware"
	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"
	"go-stockledger/internal/service"
	"go-stockledger/internal/ws"
	"go-stockledger/pkg/config"
	"go-stockledger/pkg/database"
	"go-stockledger/pkg/jwt"
	"go-stockledger/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New("stockledger", cfg.App.LogLevel, cfg.App.LogFormat)

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	if err := db.AutoMigrate(
		&model.Product{},
		&model.Stakeholder{},
		&model.Transaction{},
		&model.TransactionLine{},
		&model.User{},
		&model.RefreshToken{},
	); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	hub := ws.NewHub()
	go hub.Run()

	productRepo := repository.NewProductRepo(db)
	stakeholderRepo := repository.NewStakeholderRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	userRepo := repository.NewUserRepo(db)
	refreshRepo := repository.NewRefreshTokenRepo(db)

	tokens := jwt.NewTokenManager(cfg.JWT)

	catalogSvc := service.NewCatalogService(productRepo, hub, log)
	stakeholderSvc := service.NewStakeholderService(stakeholderRepo, log)
	ledgerSvc := service.NewLedgerService(productRepo, txRepo, db, hub, log)
	reportSvc := service.NewReportService(productRepo, txRepo)
	authSvc := service.NewAuthService(userRepo, refreshRepo, tokens, cfg.Password, log)

	productHandler := handler.NewProductHandler(catalogSvc)
	stakeholderHandler := handler.NewStakeholderHandler(stakeholderSvc)
	txHandler := handler.NewTransactionHandler(ledgerSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	authHandler := handler.NewAuthHandler(authSvc, cfg.JWT)

	app := fiber.New(fiber.Config{
		AppName:      "StockLedger v1.0",
		ErrorHandler: handler.ErrorHandler(log),
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CORSOrigins,
		AllowCredentials: cfg.App.CORSOrigins != "*",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.ReadMax,
		Expiration: cfg.RateLimit.Window,
	}))

	// Mutating endpoints get a stricter per-IP ceiling on top of the
	// global one.
	writeLimit := limiter.New(limiter.Config{
		Max:        cfg.RateLimit.WriteMax,
		Expiration: cfg.RateLimit.Window,
	})

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", writeLimit, authHandler.Register)
	auth.Post("/login", writeLimit, authHandler.Login)
	auth.Post("/refresh", writeLimit, authHandler.Refresh)
	auth.Post("/logout", writeLimit, authHandler.Logout)

	// Search routes register before /:id so the literal segment wins.
	api.Get("/products/search", productHandler.Search)
	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.Get)

	api.Get("/transactions", txHandler.List)
	api.Get("/transactions/:id", txHandler.Get)
	api.Post("/transactions", writeLimit, txHandler.Create)

	protected := api.Group("", middleware.RequireAuth(tokens))

	protected.Post("/products", writeLimit, productHandler.Create)
	protected.Put("/products/:id", writeLimit, productHandler.Update)
	protected.Delete("/products/:id", writeLimit, productHandler.Delete)

	protected.Get("/stakeholders/search", stakeholderHandler.Search)
	protected.Get("/stakeholders", stakeholderHandler.List)
	protected.Get("/stakeholders/:id", stakeholderHandler.Get)
	protected.Post("/stakeholders", writeLimit, stakeholderHandler.Create)
	protected.Patch("/stakeholders/:id", writeLimit, stakeholderHandler.Update)
	protected.Delete("/stakeholders/:id", writeLimit, stakeholderHandler.Delete)

	protected.Get("/reports/inventory", reportHandler.Inventory)
	protected.Get("/reports/transactions", reportHandler.Transactions)
	protected.Get("/reports/stock-movement", reportHandler.StockMovement)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		hub.Register(c)
		defer hub.Unregister(c)

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	go func() {
		if err := app.Listen(":" + cfg.App.Port); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.App.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
