package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vhce/collegehub/internal/app/controllers"
	"github.com/vhce/collegehub/internal/app/migrations"
	"github.com/vhce/collegehub/internal/app/repositories"
	"github.com/vhce/collegehub/internal/app/routes"
	"github.com/vhce/collegehub/internal/app/services"
	"github.com/vhce/collegehub/internal/config"
	"github.com/vhce/collegehub/internal/db"
	"github.com/vhce/collegehub/internal/pkg/filestorage"
	"github.com/vhce/collegehub/internal/pkg/logger"
	"github.com/vhce/collegehub/internal/seed"
)

// Dependencies holds the wired application components.
type Dependencies struct {
	Repos       *repositories.Repositories
	Services    *services.Services
	Controllers *controllers.Controllers
	FileStorage *filestorage.LocalStorage
}

// LoadConfigAndSetupLogger loads configuration and configures the logger.
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})
	logger.Info().Str("level", cfg.Logging.Level).Str("format", cfg.Logging.Format).Msg("Logger configured")
	return cfg, nil
}

// SetupDatabase connects to Postgres, runs migrations and seeds defaults.
func SetupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	logger.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Msg("Running database migrations...")
	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	if err := migrations.NewMigrator(dbPool).MigrateFromDirectory(migrationsDir); err != nil {
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.CreateDefaultData(context.Background(), cfg, dbPool); err != nil {
		// Seeding is best-effort; a half-seeded database still serves.
		logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway")
	}

	return dbPool, nil
}

// BuildDependencies wires repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Repos = repositories.NewRepositories(dbPool)

	// The base URL must match the static file route in SetupRouter.
	uploadsURL := cfg.PublicBaseURL() + "/uploads"
	storage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, uploadsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.FileStorage = storage

	deps.Services = services.NewServices(services.NewStore(deps.Repos), storage)

	deps.Controllers = &controllers.Controllers{
		Auth:          controllers.NewAuthController(deps.Services.Auth),
		Users:         controllers.NewUserController(deps.Services.Users),
		Courses:       controllers.NewCourseController(deps.Services.Courses),
		Marks:         controllers.NewMarksController(deps.Services.Marks),
		Materials:     controllers.NewMaterialController(deps.Services.Materials),
		Announcements: controllers.NewAnnouncementController(deps.Services.Announcements),
		Advisors:      controllers.NewAdvisorController(deps.Services.Advisors),
		Placements:    controllers.NewPlacementController(deps.Services.Placements),
		Arrears:       controllers.NewArrearController(deps.Services.Arrears),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.Default()

	// The legacy frontends are served from arbitrary origins.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	routes.SetupRouter(router, deps.Controllers, deps.Services.Auth)

	// Serve uploaded files.
	if _, err := os.Stat(cfg.Server.StoragePath); os.IsNotExist(err) {
		if err := os.MkdirAll(cfg.Server.StoragePath, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", cfg.Server.StoragePath).Msg("Failed to create uploads directory")
		}
	}
	router.Static("/uploads", cfg.Server.StoragePath)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	return router
}
