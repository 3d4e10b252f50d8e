package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/resumate/internal/config"
	"alfredoptarigan/resumate/internal/handlers"
	"alfredoptarigan/resumate/internal/logger"
	"alfredoptarigan/resumate/internal/repositories"
	"alfredoptarigan/resumate/internal/services"
)

func main() {
	log := logger.Get()

	cfg := config.Load()
	log.Info("✅ Config loaded successfully")

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	sessionRepo := repositories.NewSessionRepository()
	logRepo := repositories.NewGenerationLogRepository(db)
	log.Info("✅ Repositories initialized successfully")

	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	orchestrator, err := services.NewOrchestratorFromConfig(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize model orchestrator: %v", err)
	}

	extractor := services.NewProfileExtractor(orchestrator)
	generator := services.NewGeneratorService(sessionRepo, logRepo, orchestrator)
	catalog := services.NewModelCatalog(cfg.OpenRouter.BaseURL, services.EnvCredential("OPENROUTER_API_KEY"), nil)
	renderer := services.NewChromedpRenderer(cfg.Render.ChromePath, cfg.Render.Timeout)
	log.Info("✅ Services initialized successfully")

	worker := services.NewWorker(sessionRepo, generator, cfg.Worker.Concurrency, cfg.Worker.QueueSize)
	worker.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      "ResuMate API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	handlers.Register(app, handlers.Handlers{
		Profile: handlers.NewProfileHandler(
			sessionRepo,
			extractor,
			services.NewTextExtractor(),
			storageService,
			cfg.Storage.MaxFileSize,
		),
		Generate: handlers.NewGenerateHandler(sessionRepo, worker),
		Session:  handlers.NewSessionHandler(sessionRepo, logRepo, renderer),
		Models:   handlers.NewModelsHandler(orchestrator, catalog),
	})
	log.Info("✅ Handlers initialized")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("🛑 Shutting down server...")
		// Stop waits for in-flight generations, so cancel them first.
		cancel()
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Errorf("❌ Server forced to shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Infof("🚀 Server starting on %s", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
