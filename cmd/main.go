package main

import (
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "catalog-backend/docs"
	"catalog-backend/internal/config"
	"catalog-backend/internal/database"
	"catalog-backend/internal/handlers"
	"catalog-backend/internal/repository"
	"catalog-backend/internal/routes"
	"catalog-backend/internal/services"
	"catalog-backend/internal/utils"
	"catalog-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

// @title Catalog Backend API
// @version 1.0
// @description Video catalog administration API: categories, genres, cast members and videos with file uploads
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8010
// @BasePath /api/v1
// @schemes http https

func main() {
	// Load environment variables
	loadEnvFile()

	// Load configuration
	cfg := config.Load()

	// Setup logger
	log := setupLogger()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Warnf("Configuration validation warning: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Errorf("Error closing database connection: %v", err)
		}
	}()

	minioService, err := services.NewMinIOService(&cfg.MinIO, log)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}

	publisher := setupPublisher(cfg, log)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Errorf("Error closing message broker connection: %v", err)
		}
	}()

	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	castMemberRepo := repository.NewCastMemberRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	relationStore := repository.NewRelationStore(db)

	validator := validation.New()
	observer := services.NewModelObserver(publisher, log)
	files := services.NewFileLifecycleManager(minioService, log)
	writer := services.NewTransactionalWriter(db, relationStore, files, log, observer.Hook())

	categoryService := services.NewCategoryService(categoryRepo, validator, observer, log)
	genreService := services.NewGenreService(genreRepo, categoryRepo, writer, validator, observer, log)
	castMemberService := services.NewCastMemberService(castMemberRepo, validator, observer, log)
	videoService := services.NewVideoService(services.VideoDeps{
		Repo:           videoRepo,
		CategoryRepo:   categoryRepo,
		GenreRepo:      genreRepo,
		CastMemberRepo: castMemberRepo,
		Coverage:       services.NewCategoryCoverageValidator(relationStore),
		Writer:         writer,
		Files:          files,
		FileRules:      services.VideoFileRules(cfg.Upload),
		Validator:      validator,
		Observer:       observer,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:               "Catalog Backend API",
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           120 * time.Second,
		BodyLimit:             cfg.Server.BodyLimit,
		DisableStartupMessage: false,
		ErrorHandler:          customErrorHandler(log),
	})

	setupMiddleware(app)

	app.Get("/health", healthCheckHandler(db, publisher))

	// Swagger documentation
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Setup API routes
	routes.Setup(app, routes.Handlers{
		Category:   handlers.NewCategoryHandler(categoryService, log),
		Genre:      handlers.NewGenreHandler(genreService, log),
		CastMember: handlers.NewCastMemberHandler(castMemberService, log),
		Video:      handlers.NewVideoHandler(videoService, log),
		Upload:     handlers.NewUploadHandler(minioService, log),
	})

	// Graceful shutdown
	go gracefulShutdown(app, log)

	log.Infof("Catalog Backend API starting on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start HTTP server: %v", err)
	}
}

// setupPublisher connects to the message broker. Without a broker the API
// keeps serving and model events are only logged.
func setupPublisher(cfg *config.Config, log *logrus.Logger) services.Publisher {
	if !cfg.AMQP.Enabled {
		log.Info("Message broker disabled, model events will only be logged")
		return services.NewLogPublisher(log)
	}

	publisher, err := services.NewAMQPPublisher(&cfg.AMQP, log)
	if err != nil {
		log.WithError(err).Warn("Failed to connect to message broker, model events will only be logged")
		return services.NewLogPublisher(log)
	}
	return publisher
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

	// Logger middleware
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	// CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS, PATCH",
		AllowCredentials: false,
		MaxAge:           86400, // 24 hours
	}))
}

func healthCheckHandler(db *database.Database, publisher services.Publisher) fiber.Handler {
	broker := "connected"
	if _, ok := publisher.(*services.LogPublisher); ok {
		broker = "log-only"
	}

	return func(c *fiber.Ctx) error {
		status := "ok"
		dbStatus := "healthy"
		if err := db.HealthCheck(); err != nil {
			status = "degraded"
			dbStatus = "unhealthy"
		}

		return c.JSON(fiber.Map{
			"status":    status,
			"service":   "catalog-backend",
			"version":   "1.0.0",
			"database":  dbStatus,
			"broker":    broker,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// customErrorHandler renders errors that escaped the handlers, such as
// unknown routes or an oversized body, in the API envelope.
func customErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}

		entry := log.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
			"status": code,
		})
		if code >= fiber.StatusInternalServerError {
			entry.Error("Request error")
		} else {
			entry.Debug("Request rejected")
		}

		return utils.ErrorResponse(c, code, message)
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
