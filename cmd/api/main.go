package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/vela/internal/config"
	"alfredoptarigan/vela/internal/handlers"
	"alfredoptarigan/vela/internal/repositories"
	"alfredoptarigan/vela/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	if cfg.Gemini.APIKey == "" {
		log.Println("⚠️  GEMINI_API_KEY is not set; generation requests will fail")
	}

	// Initialize repositories
	workspaceRepo := repositories.NewWorkspaceRepository()
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	documentService := services.NewDocumentService()
	exportService := services.NewExportService()
	pdfPrinter := services.NewPDFPrinter(cfg.Export.ChromePath)
	geminiService := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout)
	log.Printf("✅ Gemini service configured with model %s", cfg.Gemini.Model)

	tailorService := services.NewTailorService(workspaceRepo, geminiService, services.Temperatures{
		Resume:      cfg.Gemini.ResumeTemperature,
		CoverLetter: cfg.Gemini.CoverLetterTemperature,
		Polish:      cfg.Gemini.PolishTemperature,
	})
	log.Println("✅ Services initialized successfully")

	// Initialize worker
	worker := services.NewWorker(tailorService, cfg.Worker.Concurrency, cfg.Worker.QueueSize)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)

	// Initialize handlers
	h := &handlers.Handlers{
		Workspace: handlers.NewWorkspaceHandler(workspaceRepo, worker),
		Upload:    handlers.NewUploadHandler(workspaceRepo, documentService, cfg.Upload.MaxFileSize),
		Generate:  handlers.NewGenerateHandler(workspaceRepo, tailorService, worker),
		Export:    handlers.NewExportHandler(workspaceRepo, exportService, pdfPrinter),
		Theme:     handlers.NewThemeHandler(cfg.Theme.Default),
	}
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Vela API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		BodyLimit:    int(cfg.Upload.MaxFileSize) + 1<<20,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Disposition",
		AllowCredentials: false,
	}))

	// Routes
	handlers.RegisterRoutes(app.Group("/api/v1"), h)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "Vela API",
			"version":   "1.0.0",
			"endpoints": handlers.Endpoints,
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s (%s)\n", addr, cfg.Server.Env)
	log.Printf("📖 API Documentation: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
