// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	aiapp "github.com/mealsmith/v1/internal/application/ai"
	planapp "github.com/mealsmith/v1/internal/application/plan"
	infraai "github.com/mealsmith/v1/internal/infrastructure/ai"
	"github.com/mealsmith/v1/internal/infrastructure/config"
	"github.com/mealsmith/v1/internal/infrastructure/http/server"
	gormRepo "github.com/mealsmith/v1/internal/infrastructure/persistence/gorm"
	"github.com/mealsmith/v1/internal/infrastructure/persistence/memory"
	"github.com/mealsmith/v1/internal/infrastructure/persistence/postgres"
	redisRepo "github.com/mealsmith/v1/internal/infrastructure/persistence/redis"
	"github.com/mealsmith/v1/internal/infrastructure/persistence/sqlite"
	"github.com/mealsmith/v1/internal/ports/inbound"
	"github.com/mealsmith/v1/internal/ports/outbound"
	"github.com/mealsmith/v1/pkg/healthcheck"
	"github.com/mealsmith/v1/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	// Infrastructure modules
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,

	// Repository modules
	RepositoryModule,

	// Service modules
	AIModule,
	ServiceModule,
	HealthModule,

	// HTTP modules
	HTTPModule,

	// Lifecycle hooks
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
	func(log *zap.Logger) *zap.SugaredLogger {
		return log.Sugar()
	},
)

// DatabaseModule provides the GORM connection for the configured driver
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		logLevel := gormLogger.Silent
		if cfg.App.Debug {
			logLevel = gormLogger.Info
		}

		var (
			db  *gorm.DB
			err error
		)
		switch cfg.Database.Driver {
		case "postgres":
			db, err = postgres.SetupDatabase(cfg.Database, logLevel)
		default:
			db, err = sqlite.SetupDatabase(cfg.Database.SQLitePath, logLevel)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to setup %s database: %w", cfg.Database.Driver, err)
		}

		if cfg.Database.SeedRecipes {
			if err := sqlite.SeedRecipes(db); err != nil {
				log.Warn("Failed to seed recipe corpus", zap.Error(err))
			}
		}

		log.Info("Connected to database",
			zap.String("driver", cfg.Database.Driver),
		)

		return db, nil
	},
)

// CacheModule provides caching, Redis when enabled and in-memory otherwise
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
		if cfg.Redis.Enabled {
			client, err := redisRepo.NewClient(cfg.Redis)
			if err != nil {
				return nil, fmt.Errorf("failed to connect to Redis: %w", err)
			}
			log.Info("Using Redis cache", zap.String("host", cfg.Redis.Host))
			return redisRepo.NewCacheRepository(client, log), nil
		}

		log.Info("Using in-memory cache")
		return memory.NewCacheRepository(), nil
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewRecipeRepository,
	gormRepo.NewPlanRepository,
)

// AIModule provides the text-completion client and the plan adapter
var AIModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.AIService {
		return infraai.NewTextService(cfg.AI, log)
	},
	func(
		cfg *config.Config,
		textService outbound.AIService,
		selector *planapp.Selector,
		cache outbound.CacheRepository,
		log *zap.Logger,
	) *aiapp.Adapter {
		opts := aiapp.Options{
			MaxTokens:   cfg.AI.MaxTokens,
			Temperature: cfg.AI.Temperature,
			CacheTTL:    cfg.AI.CacheTTL,
		}
		if !cfg.AI.EnableCache {
			cache = nil
		}
		return aiapp.NewAdapter(textService, selector, cache, opts, log)
	},
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	planapp.NewSelector,
	planapp.NewAssembler,

	fx.Annotate(
		func(
			cfg *config.Config,
			assembler *planapp.Assembler,
			generator *aiapp.Adapter,
			plans outbound.PlanRepository,
			cache outbound.CacheRepository,
			log *zap.Logger,
		) *planapp.Service {
			return planapp.NewService(assembler, generator, plans, cache, log, cfg.AI.Enabled)
		},
		fx.As(new(inbound.PlanService)),
	),
)

// HealthModule provides liveness and readiness checks over the service's
// dependencies
var HealthModule = fx.Provide(
	func(cfg *config.Config, db *gorm.DB, aiService outbound.AIService, log *zap.Logger) *healthcheck.HealthCheck {
		hc := healthcheck.New(cfg.App.Version, log.Named("health"))
		hc.Register("database", healthcheck.NewDatabaseChecker(db))

		if cfg.AI.Enabled {
			hc.Register("ai_provider", healthcheck.NewCustomChecker("ai_provider",
				func(ctx context.Context) (healthcheck.Status, string, interface{}) {
					if err := aiService.HealthCheck(ctx); err != nil {
						// AI outages degrade plan quality but the
						// deterministic assembler keeps serving.
						return healthcheck.StatusDegraded, err.Error(), nil
					}
					return healthcheck.StatusHealthy, "", nil
				}))
		}

		return hc
	},
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	server.NewServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	server *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Mealsmith application",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := server.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Mealsmith application")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()

			return nil
		},
	})
}
