package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/larder-io/larder/internal/api"
	"github.com/larder-io/larder/internal/app"
	"github.com/larder-io/larder/internal/app/maintenance"
	"github.com/larder-io/larder/internal/cache"
	"github.com/larder-io/larder/internal/database"
	"github.com/larder-io/larder/internal/observability"
	"github.com/larder-io/larder/pkg/logger"
)

// runtimeStack bundles long-lived components used by the HTTP server.
type runtimeStack struct {
	DB      *gorm.DB
	Store   cache.Store
	Cache   *cache.Client
	Tracing *observability.Provider
	Janitor *maintenance.Janitor
	Router  *gin.Engine
}

// bootstrapRuntime initialises tracing, the database, the cache layer, and
// the HTTP router.
func bootstrapRuntime(ctx context.Context, cfg *app.Config, log *zap.Logger) (*runtimeStack, error) {
	stack := &runtimeStack{}
	var err error
	success := false

	defer func() {
		if !success {
			_ = stack.Shutdown(context.Background(), log)
		}
	}()

	if debug, _ := os.LookupEnv("GIN_DEBUG"); debug != "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	stack.Tracing, err = observability.Init(ctx, observability.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: cfg.Tracing.ServiceName,
		Insecure:    cfg.Tracing.Insecure,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("initialise tracing: %w", err)
	}

	stack.DB, err = initialiseDatabase(cfg)
	if err != nil {
		return nil, err
	}

	var memStore *cache.MemoryStore
	switch {
	case cfg.Cache.Redis.Enabled:
		redisStore, redisErr := cache.NewRedisStore(cfg.Cache.RedisStoreConfig())
		if redisErr != nil {
			log.Warn("redis unavailable; falling back to in-memory cache", zap.Error(redisErr))
			memStore = cache.NewMemoryStore()
			stack.Store = memStore
		} else {
			log.Info("redis connected", zap.String("addr", cfg.Cache.Redis.Address))
			stack.Store = redisStore
		}
	default:
		memStore = cache.NewMemoryStore()
		stack.Store = memStore
	}

	tracedStore := observability.NewTracedStore(stack.Store)

	stack.Cache, err = cache.NewClient(tracedStore, cfg.Cache.TTL)
	if err != nil {
		return nil, fmt.Errorf("initialise cache client: %w", err)
	}

	// The janitor only runs against the in-memory store; Redis expires
	// entries on its own.
	stack.Janitor = maintenance.NewJanitor(memStore, maintenance.WithSchedule(cfg.Cache.Janitor.Schedule))
	if err := stack.Janitor.Start(); err != nil {
		return nil, fmt.Errorf("start cache janitor: %w", err)
	}

	stack.Router, err = api.NewRouter(stack.DB, tracedStore, stack.Cache)
	if err != nil {
		return nil, fmt.Errorf("build api router: %w", err)
	}

	success = true
	return stack, nil
}

// Shutdown stops background jobs and releases resources in reverse
// bootstrap order.
func (s *runtimeStack) Shutdown(ctx context.Context, log *zap.Logger) error {
	if s == nil {
		return nil
	}

	var errs error

	if s.Janitor != nil {
		stopCtx := s.Janitor.Stop()
		select {
		case <-stopCtx.Done():
		case <-ctx.Done():
			log.Warn("cache janitor did not stop in time")
		}
	}

	if s.Store != nil {
		if err := s.Store.Close(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("close cache store: %w", err))
		}
	}

	if s.DB != nil {
		if err := closeDatabase(s.DB); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("close database: %w", err))
		}
	}

	if s.Tracing != nil {
		if err := s.Tracing.Shutdown(ctx); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("shutdown tracing: %w", err))
		}
	}

	return errs
}

func initialiseDatabase(cfg *app.Config) (*gorm.DB, error) {
	dbCfg := convertDatabaseConfig(cfg)
	db, err := database.Open(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Use(observability.NewGormTracer()); err != nil {
		return nil, fmt.Errorf("register gorm tracer: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	log := logger.WithModule("database")
	log.Info("database connected", zap.String("driver", strings.ToLower(strings.TrimSpace(dbCfg.Driver))))

	return db, nil
}

func convertDatabaseConfig(cfg *app.Config) database.Config {
	dbCfg := database.Config{
		Driver:       strings.ToLower(strings.TrimSpace(cfg.Database.Driver)),
		Path:         strings.TrimSpace(cfg.Database.Path),
		DSN:          strings.TrimSpace(cfg.Database.DSN),
		MaxOpenConns: cfg.Database.MaxOpenConns,
	}

	switch dbCfg.Driver {
	case "", "sqlite":
		dbCfg.Driver = "sqlite"
	case "postgres", "postgresql":
		dbCfg.Driver = "postgres"
		dbCfg.Host = strings.TrimSpace(cfg.Database.Postgres.Host)
		dbCfg.Port = cfg.Database.Postgres.Port
		dbCfg.Name = strings.TrimSpace(cfg.Database.Postgres.Database)
		dbCfg.User = strings.TrimSpace(cfg.Database.Postgres.Username)
		dbCfg.Password = strings.TrimSpace(cfg.Database.Postgres.Password)
	case "mysql":
		dbCfg.Host = strings.TrimSpace(cfg.Database.MySQL.Host)
		dbCfg.Port = cfg.Database.MySQL.Port
		dbCfg.Name = strings.TrimSpace(cfg.Database.MySQL.Database)
		dbCfg.User = strings.TrimSpace(cfg.Database.MySQL.Username)
		dbCfg.Password = strings.TrimSpace(cfg.Database.MySQL.Password)
	default:
		// Leave driver as-is to surface unsupported driver error during open.
	}

	return dbCfg
}

func closeDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
