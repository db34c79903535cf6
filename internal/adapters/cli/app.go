package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"gorm.io/gorm"

	"github.com/andrescamacho/craftreq/internal/adapters/catalogs"
	"github.com/andrescamacho/craftreq/internal/adapters/metrics"
	"github.com/andrescamacho/craftreq/internal/adapters/persistence"
	"github.com/andrescamacho/craftreq/internal/application/logging"
	"github.com/andrescamacho/craftreq/internal/application/mediator"
	"github.com/andrescamacho/craftreq/internal/application/setup"
	"github.com/andrescamacho/craftreq/internal/domain/crafting"
	"github.com/andrescamacho/craftreq/internal/infrastructure/config"
	"github.com/andrescamacho/craftreq/internal/infrastructure/database"
)

// application is the wired object graph shared by every command
type application struct {
	cfg      *config.Config
	db       *gorm.DB
	mediator mediator.Mediator
	logger   logging.Logger
	engine   *crafting.Engine
	closers  []func() error
}

// bootstrap loads configuration and wires repositories, engine and mediator
func bootstrap() (*application, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	app := &application{cfg: cfg}

	logger, closeLog, err := newLogger(&cfg.Logging)
	if err != nil {
		return nil, err
	}
	app.logger = logger
	app.closers = append(app.closers, closeLog)

	loaded, err := catalogs.Load(cfg.Data.CatalogPath)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	policy, err := crafting.ParseMatchPolicy(cfg.Crafting.MatchPolicy)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.engine = crafting.NewEngineWithPolicy(loaded.Catalog, policy)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.db = db
	app.closers = append(app.closers, func() error { return database.Close(db) })

	if err := database.AutoMigrate(db); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	var commandMetrics *metrics.CommandMetricsCollector
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		craftingMetrics := metrics.NewCraftingMetricsCollector()
		commandMetrics = metrics.NewCommandMetricsCollector()
		if err := craftingMetrics.Register(); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		if err := commandMetrics.Register(); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		metrics.SetGlobalCraftingCollector(craftingMetrics)
	}

	registry := setup.NewHandlerRegistry(
		persistence.NewGormDeclarationRepository(db, nil),
		persistence.NewGormInventoryRepository(db, nil),
		persistence.NewGormActorRepository(db, nil),
		persistence.NewGormEvaluationLogRepository(db, nil),
		app.engine,
	).WithDefaults(cfg.Crafting.DefaultBatch, cfg.Crafting.DifficultyModifier)

	m := mediator.NewMediator()
	m.RegisterMiddleware(logging.Middleware())
	if commandMetrics != nil {
		m.RegisterMiddleware(metrics.PrometheusMiddleware(commandMetrics))
	}
	if err := registry.RegisterCraftingHandlers(m); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}
	app.mediator = m

	logger.Log("DEBUG", "catalog loaded", map[string]interface{}{
		"path":   cfg.Data.CatalogPath,
		"digest": loaded.FileDigest,
		"policy": string(policy),
	})

	return app, nil
}

// Context carries the application logger
func (a *application) Context() context.Context {
	return logging.WithLogger(context.Background(), a.logger)
}

// Close releases the database and log file
func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
	a.closers = nil
}

func newLogger(cfg *config.LoggingConfig) (logging.Logger, func() error, error) {
	level := cfg.Level
	if verbose {
		level = "debug"
	}

	var w io.Writer
	closeFn := func() error { return nil }
	switch cfg.Output {
	case "stdout":
		w = os.Stdout
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeFn = f.Close
	default:
		w = os.Stderr
	}

	return logging.NewStdLogger(w, level, cfg.Format), closeFn, nil
}
