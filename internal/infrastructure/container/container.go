// Package container provides dependency injection using Uber FX
package container

import (
	"context"

	apprecipe "github.com/alchemorsel/breadbook/internal/application/recipe"
	"github.com/alchemorsel/breadbook/internal/infrastructure/ai/openai"
	"github.com/alchemorsel/breadbook/internal/infrastructure/config"
	"github.com/alchemorsel/breadbook/internal/infrastructure/http/apiserver"
	"github.com/alchemorsel/breadbook/internal/infrastructure/monitoring"
	gormStore "github.com/alchemorsel/breadbook/internal/infrastructure/persistence/gorm"
	"github.com/alchemorsel/breadbook/internal/infrastructure/persistence/sqlite"
	"github.com/alchemorsel/breadbook/internal/infrastructure/security"
	"github.com/alchemorsel/breadbook/internal/ports/outbound"
	"github.com/alchemorsel/breadbook/pkg/healthcheck"
	"github.com/alchemorsel/breadbook/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	MonitoringModule,
	DatabaseModule,
	StoreModule,
	ServiceModule,
	HTTPModule,
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
)

// MonitoringModule provides the metrics registry and collectors
var MonitoringModule = fx.Provide(
	func() *prometheus.Registry {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		return registry
	},
	func(registry *prometheus.Registry) *monitoring.Metrics {
		return monitoring.NewMetrics(registry)
	},
)

// DatabaseModule provides the SQLite database
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		db, err := sqlite.SetupDatabase(cfg.Database)
		if err != nil {
			return nil, err
		}

		log.Info("Connected to SQLite database",
			zap.String("path", cfg.Database.Path),
			zap.Bool("in_memory", cfg.Database.Path == ":memory:"),
		)
		return db, nil
	},
)

// StoreModule provides the recipe store
var StoreModule = fx.Provide(
	gormStore.NewRecipeStore,
)

// ServiceModule provides application services and their adapters
var ServiceModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger, metrics *monitoring.Metrics) outbound.AIService {
		return openai.NewClient(cfg.AI, log, metrics)
	},
	apprecipe.NewRecipeService,
	func(cfg *config.Config, log *zap.Logger) *security.TokenReader {
		return security.NewTokenReader(cfg.Auth, log)
	},
)

// HTTPModule provides the HTTP server and health checks
var HTTPModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger, db *gorm.DB) *healthcheck.HealthCheck {
		hc := healthcheck.New(cfg.App.Version, log)
		hc.Register("database", healthcheck.NewDatabaseChecker(db))
		return hc
	},
	apiserver.NewServer,
)

// LifecycleModule registers lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	server *apiserver.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting application",
				zap.String("name", cfg.App.Name),
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := server.Start(); err != nil {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down application")

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
