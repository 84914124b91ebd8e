package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "streamhub-backend/docs"
	"streamhub-backend/internal/config"
	"streamhub-backend/internal/database"
	"streamhub-backend/internal/handlers"
	"streamhub-backend/internal/models"
	"streamhub-backend/internal/profiles"
	"streamhub-backend/internal/repository"
	"streamhub-backend/internal/routes"
	"streamhub-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

// @title StreamHub API
// @version 1.0
// @description Movie and series catalog API with accounts, profiles, bookmarks and watch history

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8010
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	loadEnvFile()

	cfg := config.Load()

	log := setupLogger()

	if err := cfg.Validate(); err != nil {
		log.Warnf("Configuration validation warning: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Errorf("Error closing database connection: %v", err)
		}
	}()

	accountRepo := repository.NewAccountRepository(db, log)
	categoryRepo := repository.New[models.Category](db, "Category", log)
	movieRepo := repository.New[models.Movie](db, "Movie", log)
	seriesRepo := repository.New[models.Series](db, "Series", log)
	episodeRepo := repository.New[models.Episode](db, "Episode", log)
	profileRepo := repository.New[models.Profile](db, "Profile", log)
	bookmarkRepo := repository.New[models.BookmarkedMovie](db, "Bookmark", log)
	watchedRepo := repository.New[models.WatchedMovie](db, "WatchedMovie", log)

	tokenService := services.NewTokenService(cfg.JWT)
	accountService := services.NewAccountService(accountRepo, tokenService, log)

	storageService, err := services.NewStorageService(&cfg.MinIO, cfg.Uploads, log)
	if err != nil {
		log.Fatalf("Failed to initialize storage service: %v", err)
	}

	avatarProvider := profiles.NewDirAvatarProvider(cfg.Profiles.AvatarDir)
	creationPolicy := profiles.NewCreationPolicy(accountRepo)
	profileManager := profiles.NewManager(accountRepo, profileRepo, creationPolicy, avatarProvider, log)

	h := routes.Handlers{
		Accounts:   handlers.NewAccountHandler(accountService, log),
		Categories: handlers.NewCategoryHandler(categoryRepo, movieRepo, log),
		Movies:     handlers.NewMovieHandler(movieRepo, categoryRepo, storageService, log),
		Series:     handlers.NewSeriesHandler(seriesRepo, episodeRepo, categoryRepo, log),
		Profiles:   handlers.NewProfileHandler(profileManager, log),
		Activity:   handlers.NewActivityHandler(profileManager, bookmarkRepo, watchedRepo, movieRepo, log),
		Uploads:    handlers.NewUploadHandler(storageService, log),
	}

	app := fiber.New(fiber.Config{
		AppName:               "StreamHub API",
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           120 * time.Second,
		DisableStartupMessage: false,
		ErrorHandler:          customErrorHandler(log),
	})

	setupMiddleware(app)

	app.Get("/health", healthCheckHandler(db))

	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	routes.Setup(app, h, tokenService)

	go gracefulShutdown(app, log)

	log.Infof("StreamHub API starting on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start HTTP server: %v", err)
	}
}

func setupLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	if os.Getenv("GO_ENV") == "dev" || os.Getenv("GO_ENV") == "development" {
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}

func setupMiddleware(app *fiber.App) {
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS, PATCH",
		AllowCredentials: false,
		MaxAge:           86400,
	}))
}

func healthCheckHandler(db *database.Database) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbStatus := "healthy"
		if err := db.HealthCheck(); err != nil {
			dbStatus = "unhealthy"
		}

		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "streamhub-backend",
			"version":   "1.0.0",
			"database":  dbStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func customErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Something went wrong"

		// Client errors keep their message; only server errors get masked.
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			if code < fiber.StatusInternalServerError {
				message = e.Message
			}
		}

		entry := log.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
			"status": code,
		})
		if code >= fiber.StatusInternalServerError {
			entry.Error("Request error")
		} else {
			entry.Warn("Request rejected")
		}

		return c.Status(code).JSON(fiber.Map{
			"status":  "error",
			"code":    code,
			"message": message,
		})
	}
}

func gracefulShutdown(app *fiber.App, log *logrus.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		log.Errorf("Error during shutdown: %v", err)
	}

	log.Info("Server shutdown complete")
}

func loadEnvFile() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{})
	log.SetOutput(os.Stdout)

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "dev"
	}

	execDir, err := os.Getwd()
	if err != nil {
		log.Warnf("Could not get working directory: %v", err)
		return
	}

	envFile := filepath.Join(execDir, "envs", ".env."+env)
	if err := godotenv.Load(envFile); err != nil {
		log.Warnf("Could not load environment file %s: %v", envFile, err)

		defaultEnvFile := filepath.Join(execDir, "envs", ".env")
		if err := godotenv.Load(defaultEnvFile); err != nil {
			log.Warnf("Could not load default environment file: %v", err)
		} else {
			log.Infof("Environment loaded from default file %s", defaultEnvFile)
		}
	} else {
		log.Infof("Environment loaded from file %s", envFile)
	}
}
