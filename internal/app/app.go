package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/membership-registry/internal/data/db"
	"github.com/yungbote/membership-registry/internal/data/repos"
	"github.com/yungbote/membership-registry/internal/http"
	"github.com/yungbote/membership-registry/internal/observability"
	"github.com/yungbote/membership-registry/internal/platform/envutil"
	"github.com/yungbote/membership-registry/internal/platform/logger"
)

type App struct {
	Log        *logger.Logger
	DB         *gorm.DB
	Router     *gin.Engine
	Cfg        Config
	Repos      repos.Set
	Aggregates Aggregates
	Metrics    *observability.Metrics

	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)
	metrics := observability.Init(log)

	pg, err := db.NewPostgresService(cfg.Postgres, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	theDB := pg.DB()
	if cfg.AutoMigrate {
		if err := pg.AutoMigrateAll(); err != nil {
			log.Sync()
			return nil, fmt.Errorf("postgres automigrate: %w", err)
		}
	}
	if cfg.Seed {
		if err := seedReferenceData(theDB, cfg); err != nil {
			log.Sync()
			return nil, err
		}
		log.Info("Reference data seeded")
	}
	metrics.RegisterDBStats(log, theDB)

	reposet := repos.NewSet(theDB, log)
	aggs := wireAggregates(theDB, log, cfg, reposet, metrics)
	handlerset := wireHandlers(log, theDB, aggs)
	router := wireRouter(log, cfg, metrics, handlerset)

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Repos:        reposet,
		Aggregates:   aggs,
		Metrics:      metrics,
		otelShutdown: otelShutdown,
	}, nil
}

func seedReferenceData(theDB *gorm.DB, cfg Config) error {
	var raw []byte
	if cfg.SeedFile != "" {
		b, err := os.ReadFile(cfg.SeedFile)
		if err != nil {
			return fmt.Errorf("read seed file: %w", err)
		}
		raw = b
	}
	data, err := db.LoadReferenceData(raw)
	if err != nil {
		return err
	}
	if err := db.SeedReferenceData(theDB, data, cfg.Clock()()); err != nil {
		return fmt.Errorf("seed reference data: %w", err)
	}
	return nil
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Metrics.StartServer(ctx, a.Log, a.Cfg.MetricsAddr)
	srv := &http.Server{Engine: a.Router}
	a.Log.Info("Server listening", "addr", a.Cfg.HTTPAddr)
	return srv.Run(ctx, a.Cfg.HTTPAddr, a.Cfg.ShutdownTimeout)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
		if err := a.otelShutdown(ctx); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
