package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"plataforma-formacao/internal/config"
	"plataforma-formacao/internal/database"
	"plataforma-formacao/internal/handler"
	"plataforma-formacao/internal/middleware"
	"plataforma-formacao/internal/observability"
	"plataforma-formacao/internal/repository"
	"plataforma-formacao/internal/service"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	log := observability.NewLogger(os.Stdout, cfg.LogLevel)
	slog.SetDefault(log)
	if envErr != nil {
		log.Info("no .env file found, using environment variables")
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			log.Error("JWT_SECRET must be set in production")
			os.Exit(1)
		}
		log.Warn("JWT_SECRET is empty, using an insecure development secret")
		cfg.JWTSecret = "dev-secret"
	}

	ctx := context.Background()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.MigrateOnStartup {
		if err := database.RunMigrations(ctx, db, log); err != nil {
			log.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	redis, err := config.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(ctx, cfg)
	if err != nil {
		log.Warn("failed to connect to minio, attachment upload disabled", "error", err)
		minioClient = nil
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg, log)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.NewErrorHandler(log),
		BodyLimit:    int(cfg.MaxAttachmentSize) + 1<<20,
	})

	prom := fiberprometheus.New("plataforma-formacao")
	prom.RegisterAt(app, "/metrics")

	app.Use(recover.New())
	app.Use(prom.Middleware)
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))
	app.Use(middleware.RequestInfo())

	handler.SetupRoutes(app, handlers, services.Auth)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	}()

	log.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}
