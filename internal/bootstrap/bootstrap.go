package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/oyilmaz/deptportal/internal/app/auth"
	appControllers "github.com/oyilmaz/deptportal/internal/app/controllers"
	appMigrations "github.com/oyilmaz/deptportal/internal/app/migrations"
	appRepos "github.com/oyilmaz/deptportal/internal/app/repositories"
	appRoutes "github.com/oyilmaz/deptportal/internal/app/routes"
	appServices "github.com/oyilmaz/deptportal/internal/app/services"
	"github.com/oyilmaz/deptportal/internal/config"
	"github.com/oyilmaz/deptportal/internal/db"
	appMiddleware "github.com/oyilmaz/deptportal/internal/middleware"
	pkgAuth "github.com/oyilmaz/deptportal/internal/pkg/auth"
	"github.com/oyilmaz/deptportal/internal/pkg/email"
	"github.com/oyilmaz/deptportal/internal/pkg/helpers"
	"github.com/oyilmaz/deptportal/internal/pkg/logger"
	"github.com/oyilmaz/deptportal/internal/pkg/push"
	"github.com/oyilmaz/deptportal/internal/pkg/storage"
	"github.com/oyilmaz/deptportal/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService           appServices.AuthService
	NoticeService         appServices.NoticeService
	ApplicationService    appServices.ApplicationService
	UserService           appServices.UserService
	UploadService         appServices.UploadService
	AuthController        *appControllers.AuthController
	NoticeController      *appControllers.NoticeController
	ApplicationController *appControllers.ApplicationController
	UserController        *appControllers.UserController
	UploadController      *appControllers.UploadController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	RateLimiter           *appMiddleware.RateLimiter
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	AuthzService          *appAuth.AuthorizationService
	RedisClient           *redis.Client
	Logger                zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds the initial administrator account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, controllers and middleware.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)
	deps.AuthzService = appAuth.NewAuthorizationService()

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	emailService := email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		BaseURL:   cfg.SMTP.BaseURL,
	}, lgr)

	notifier := push.NewOneSignalNotifier(push.Config{
		AppID:   cfg.Push.AppID,
		APIKey:  cfg.Push.APIKey,
		SiteURL: cfg.Push.SiteURL,
	}, lgr)

	presigner := storage.NewS3Presigner(storage.S3Config{
		Region:          cfg.Storage.Region,
		Bucket:          cfg.Storage.Bucket,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		Endpoint:        cfg.Storage.Endpoint,
		PresignExpiry:   helpers.ParseDuration(cfg.Storage.PresignExpiry, 15*time.Minute),
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, emailService, lgr)
	deps.NoticeService = appServices.NewNoticeService(deps.Repos.NoticeRepository, deps.AuthzService, notifier, lgr)
	deps.ApplicationService = appServices.NewApplicationService(deps.Repos.ApplicationRepository, deps.Repos.RemarkRepository, deps.AuthzService, lgr)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, deps.AuthzService, emailService, lgr)
	deps.UploadService = appServices.NewUploadService(presigner, deps.AuthzService, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	if cfg.RateLimit.Enabled {
		deps.RedisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store := appMiddleware.NewRedisRateLimitStore(deps.RedisClient)
		deps.RateLimiter = appMiddleware.NewRateLimiter(store, cfg.RateLimit.Requests, helpers.ParseDuration(cfg.RateLimit.Window, time.Minute))
		lgr.Info().Str("addr", cfg.Redis.Addr).Int("requests", cfg.RateLimit.Requests).Str("window", cfg.RateLimit.Window).Msg("Rate limiting enabled")
	} else {
		lgr.Warn().Msg("Rate limiting disabled by configuration")
	}

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.NoticeController = appControllers.NewNoticeController(deps.NoticeService, lgr)
	deps.ApplicationController = appControllers.NewApplicationController(deps.ApplicationService, lgr)
	deps.UserController = appControllers.NewUserController(deps.UserService, lgr)
	deps.UploadController = appControllers.NewUploadController(deps.UploadService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.NoticeController,
		deps.ApplicationController,
		deps.UserController,
		deps.UploadController,
		deps.AuthMiddleware,
		deps.RateLimiter,
	)

	return router
}
