// Package bootstrap wires configuration, database, services and routes into a
// runnable application.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/dcastillo/campusenroll/internal/app/controllers"
	appMigrations "github.com/dcastillo/campusenroll/internal/app/migrations"
	appRepos "github.com/dcastillo/campusenroll/internal/app/repositories"
	appRoutes "github.com/dcastillo/campusenroll/internal/app/routes"
	appServices "github.com/dcastillo/campusenroll/internal/app/services"
	"github.com/dcastillo/campusenroll/internal/config"
	"github.com/dcastillo/campusenroll/internal/db"
	appMiddleware "github.com/dcastillo/campusenroll/internal/middleware"
	pkgAuth "github.com/dcastillo/campusenroll/internal/pkg/auth"
	"github.com/dcastillo/campusenroll/internal/pkg/logger"
	"github.com/dcastillo/campusenroll/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          *appServices.AuthService
	CatalogService       *appServices.CatalogService
	EnrollmentService    *appServices.EnrollmentService
	LogService           *appServices.LogService
	AuthController       *appControllers.AuthController
	CatalogController    *appControllers.CatalogController
	EnrollmentController *appControllers.EnrollmentController
	AdminController      *appControllers.AdminController
	LogController        *appControllers.LogController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds
// default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Seed.Enabled {
		if err := seed.CreateDefaultData(ctx, dbPool, lgr); err != nil {
			// Seeding is best-effort; the schema is already in place
			lgr.Warn().Err(err).Msg("Default data seeding finished with errors")
		}
	}

	return dbPool, nil
}

// BuildDependencies constructs repositories, services, controllers and
// middleware.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	repos := appRepos.NewRepositories(dbPool)

	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:     cfg.JWT.Secret,
		TokenExpiry:   cfg.TokenExpiration(),
		TokenIssuer:   cfg.JWT.Issuer,
		TokenAudience: cfg.JWT.Audience,
	})

	logService := appServices.NewLogService(repos.LogRepository, lgr)
	authService := appServices.NewAuthService(
		repos.AccountRepository,
		repos.EnrollmentRepository,
		jwtService,
		cfg.Auth.AdminRegistrationCode,
		lgr,
	)
	enrollmentService := appServices.NewEnrollmentService(
		repos.AccountRepository,
		repos.CatalogRepository,
		repos.EnrollmentRepository,
		lgr,
	)
	catalogService := appServices.NewCatalogService(
		repos.AccountRepository,
		repos.CatalogRepository,
		repos.EnrollmentRepository,
		lgr,
	)

	deps := &Dependencies{
		AuthService:          authService,
		CatalogService:       catalogService,
		EnrollmentService:    enrollmentService,
		LogService:           logService,
		AuthController:       appControllers.NewAuthController(authService, logService, lgr),
		CatalogController:    appControllers.NewCatalogController(catalogService, lgr),
		EnrollmentController: appControllers.NewEnrollmentController(enrollmentService, logService, lgr),
		AdminController:      appControllers.NewAdminController(catalogService, enrollmentService, logService, lgr),
		LogController:        appControllers.NewLogController(logService, lgr),
		AuthMiddleware:       appMiddleware.NewAuthMiddleware(jwtService),
		Repos:                repos,
		JWTService:           jwtService,
		Logger:               lgr,
	}

	return deps, nil
}

// SetupRouter builds the gin engine with global middleware and all routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.CORS(cfg.CORS.AllowedOrigins))

	appRoutes.SetupRouter(
		router,
		deps.AuthController,
		deps.CatalogController,
		deps.EnrollmentController,
		deps.AdminController,
		deps.LogController,
		deps.AuthMiddleware,
	)
	appRoutes.SetupSwagger(router)

	lgr.Info().Msg("Router configured")
	return router
}
