package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlog "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"github.com/loadrush/loadrush-backend/internal/core/auth"
	"github.com/loadrush/loadrush-backend/internal/core/llm"
	"github.com/loadrush/loadrush-backend/internal/handlers"
	"github.com/loadrush/loadrush-backend/internal/models"
	"github.com/loadrush/loadrush-backend/internal/repositories"
	"github.com/loadrush/loadrush-backend/internal/services"
	"github.com/loadrush/loadrush-backend/internal/shared/config"
	"github.com/loadrush/loadrush-backend/internal/shared/database"
	"github.com/loadrush/loadrush-backend/internal/shared/utils"
	"github.com/loadrush/loadrush-backend/internal/store"
)

func main() {
	// Load config
	cfg := config.LoadConfig()
	utils.InitLogger()
	log.Printf("🚀 Starting loadrush-api on port %s (env: %s)", cfg.Port, cfg.Env)

	// Init storage
	var db *gorm.DB
	var loadRepo repositories.LoadRepo
	var subRepo repositories.SubscriptionRepo
	var snapRepo repositories.SnapshotRepo
	var jobRepo repositories.UploadJobRepo

	if cfg.UseMemoryStore {
		log.Println("💾 Using in-memory store (USE_MEMORY_STORE=true)")
		mem := store.NewMemoryStore()
		loadRepo = mem.Loads()
		subRepo = mem.Subscriptions()
		snapRepo = mem.Snapshots()
		jobRepo = mem.UploadJobs()
	} else {
		db = database.NewDB(cfg.DatabaseURL)
		if err := db.AutoMigrate(
			&models.Load{},
			&models.Subscription{},
			&models.KPISnapshot{},
			&models.UploadJob{},
		); err != nil {
			log.Fatalf("❌ Auto-migration failed: %v", err)
		}
		loadRepo = repositories.NewLoadRepo(db)
		subRepo = repositories.NewSubscriptionRepo(db)
		snapRepo = repositories.NewSnapshotRepo(db)
		jobRepo = repositories.NewUploadJobRepo(db)
	}

	// Hour-of-day bucketing timezone
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("⚠️ Unknown timezone %q, falling back to UTC", cfg.Timezone)
		loc = time.UTC
	}

	// Init analytics pipeline
	hub := store.NewHub()
	dashboard := services.NewDashboardService(loadRepo, subRepo, snapRepo, hub, cfg.CommissionRate, cfg.RefreshInterval, loc)
	if err := dashboard.Start(); err != nil {
		log.Fatalf("❌ Failed to start dashboard service: %v", err)
	}

	// Init LLM provider (optional, AI endpoints return 503 without it)
	var provider llm.Provider
	if cfg.OpenAIKey != "" || cfg.GroqKey != "" {
		provider, err = llm.NewProvider(&llm.ProviderConfig{
			Type:      llm.ProviderType(cfg.LLMProvider),
			OpenAIKey: cfg.OpenAIKey,
			GroqKey:   cfg.GroqKey,
			Model:     cfg.LLMModel,
		})
		if err != nil {
			log.Printf("⚠️ LLM provider disabled: %v", err)
			provider = nil
		} else {
			log.Printf("🤖 LLM provider ready: %s", provider.GetProviderName())
		}
	} else {
		log.Println("⚠️ No LLM API key set, AI endpoints disabled")
	}

	var summarySvc *services.SummaryService
	var backhaulSvc *services.BackhaulService
	if provider != nil {
		summarySvc = services.NewSummaryService(dashboard, provider)
		backhaulSvc = services.NewBackhaulService(loadRepo, provider)
	}

	bulkSvc := services.NewBulkUploadService(loadRepo, jobRepo, hub)
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Init handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(jwtService, cfg.AdminEmail, cfg.AdminPassword)
	analyticsHandler := handlers.NewAnalyticsHandler(dashboard, summarySvc)
	loadHandler := handlers.NewLoadHandler(loadRepo, bulkSvc, backhaulSvc, hub)
	subHandler := handlers.NewSubscriptionHandler(subRepo, hub)

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName: "LoadRush API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(fiberlog.New())

	// Health check
	app.Get("/health", healthHandler.GetHealth)

	// Auth routes
	app.Post("/auth/login", authHandler.Login)

	// Load routes
	app.Post("/loads", loadHandler.CreateLoad)
	app.Get("/loads", loadHandler.ListLoads)
	app.Patch("/loads/:id/status", loadHandler.UpdateStatus)
	app.Post("/loads/bulk", loadHandler.BulkUpload)
	app.Get("/loads/:id/backhauls", loadHandler.GetBackhauls)

	// Upload job report
	app.Get("/uploads/:id", func(c *fiber.Ctx) error {
		job, err := jobRepo.GetByID(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "upload job not found"})
		}
		return c.JSON(job)
	})

	// Subscription routes
	app.Post("/subscriptions", subHandler.CreateSubscription)

	// Admin analytics routes
	analytics := app.Group("/analytics", auth.Middleware(jwtService))
	analytics.Get("/revenue", analyticsHandler.GetRevenue)
	analytics.Get("/trends", analyticsHandler.GetTrends)
	analytics.Get("/usage", analyticsHandler.GetUsage)
	analytics.Get("/insights", analyticsHandler.GetInsights)
	analytics.Get("/summary", analyticsHandler.GetSummary)

	// Start server
	go func() {
		log.Printf("✅ loadrush-api running at :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down...")
	dashboard.Stop()
	if err := app.Shutdown(); err != nil {
		log.Printf("⚠️ Server shutdown error: %v", err)
	}
	if db != nil {
		if err := database.Close(db); err != nil {
			log.Printf("⚠️ Database close error: %v", err)
		}
	}
	log.Println("👋 Bye!")
}
