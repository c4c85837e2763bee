package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"memories-backend/internal/config"
	"memories-backend/internal/db"
	"memories-backend/internal/handlers"
	"memories-backend/internal/logging"
	"memories-backend/internal/services"
	"memories-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// how often expired session rows get swept
const sessionSweepInterval = time.Hour

func Run() {
	cfg := config.Load()
	log := logging.Init(cfg.Env)

	// Init DB
	pool, err := db.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().Msg("connected to PostgreSQL")

	if err := db.Migrate(context.Background(), pool); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Photo sidecar
	disk, err := storage.NewDisk(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("failed to prepare upload dir")
	}

	// Services
	userService := services.NewUserService(pool)
	sessionService := services.NewSessionService(pool, cfg.SessionTTL)
	memoryService := services.NewMemoryService(pool)

	// Fiber App
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// Serve uploaded photos and, when present, the static front end
	app.Static("/uploads", disk.Dir())
	if _, err := os.Stat(cfg.PublicDir); err == nil {
		app.Static("/", cfg.PublicDir)
	}

	// Routes
	api := app.Group("/api")

	// Public Routes
	api.Post("/register", handlers.RegisterHandler(userService, sessionService, log))
	api.Post("/login", handlers.LoginHandler(userService, sessionService, log))

	// Protected Routes
	protected := api.Group("/")
	protected.Use(handlers.SessionMiddleware(sessionService, log))

	protected.Post("/logout", handlers.LogoutHandler(sessionService, log))
	protected.Get("/me", handlers.MeHandler(userService, log))

	protected.Get("/memories", handlers.ListMemoriesHandler(memoryService, log))
	protected.Post("/memories", handlers.CreateMemoryHandler(memoryService, disk, log))
	protected.Put("/memories/:id", handlers.UpdateMemoryHandler(memoryService, log))
	protected.Delete("/memories/:id", handlers.DeleteMemoryHandler(memoryService, disk, log))

	// Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Sweep expired sessions in the background until shutdown
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(sessionSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				n, err := sessionService.DeleteExpired(sweepCtx)
				if err != nil {
					log.Warn().Err(err).Msg("session sweep failed")
				} else if n > 0 {
					log.Info().Int64("removed", n).Msg("swept expired sessions")
				}
			}
		}
	}()

	// Start Server
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	// Graceful Shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c // Block until signal
	log.Info().Msg("gracefully shutting down")
	stopSweep()
	_ = app.Shutdown()
	log.Info().Msg("server shutdown complete")
}
