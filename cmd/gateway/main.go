package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"ctcsite/sitebuilder/config"
	"ctcsite/sitebuilder/handlers"
	"ctcsite/sitebuilder/internal/db"
	"ctcsite/sitebuilder/internal/sitegen"
	"ctcsite/sitebuilder/internal/storage"
	"ctcsite/sitebuilder/internal/worker"
	"ctcsite/sitebuilder/middleware"
)

func main() {
	cfg := config.Load()
	config.InitLogger()

	if err := config.InitSupabase(cfg); err != nil {
		log.Fatalf("Failed to initialize Supabase: %v", err)
	}

	siteRepo, err := db.NewSiteRepository(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		log.Fatalf("Failed to initialize site repository: %v", err)
	}

	generator := sitegen.NewGenerator(
		storage.NewTemplateBucket(cfg),
		storage.NewPublicBucket(cfg),
		siteRepo,
		config.Log,
	)

	dispatcher := worker.NewDispatcher(5, 100, config.Log)
	dispatcher.Run()

	h := handlers.NewApplicationHandler(config.Log, config.SupabaseClient, generator, dispatcher)

	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.RequestLogger())

	// Health check route
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "Site builder gateway is healthy",
		})
	})

	// API v1 routes
	apiV1 := app.Group("/api/v1")

	// Database-change notification from the sites table insert trigger.
	apiV1.Post("/hooks/site-created", h.OnSiteCreated)

	// Template catalog
	apiV1.Get("/templates", h.GetTemplates)

	// Authenticated routes
	authed := apiV1.Use(middleware.RequireAuth(cfg.JWTSecret))
	authed.Post("/generate", h.GenerateSite)
	authed.Post("/sites", h.CreateSite)
	authed.Get("/sites", h.GetSites)
	authed.Get("/sites/:subdomain", h.GetSite)
	authed.Patch("/sites/:id", h.UpdateSite)

	go func() {
		config.Log.Infof("Starting gateway on port %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Gateway stopped: %v", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	config.Log.Info("Shutting down gateway...")
	_ = app.Shutdown()
	dispatcher.Stop()
	config.Log.Info("Gateway shut down gracefully.")
}
