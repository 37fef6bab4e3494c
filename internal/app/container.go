// Package app wires configuration, storage, messaging and handlers together.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	plannerCommands "github.com/felixgeelhaar/cascal/internal/planner/application/commands"
	plannerQueries "github.com/felixgeelhaar/cascal/internal/planner/application/queries"
	plannerServices "github.com/felixgeelhaar/cascal/internal/planner/application/services"
	plannerDomain "github.com/felixgeelhaar/cascal/internal/planner/domain"
	plannerPersistence "github.com/felixgeelhaar/cascal/internal/planner/infrastructure/persistence"
	sharedApplication "github.com/felixgeelhaar/cascal/internal/shared/application"
	"github.com/felixgeelhaar/cascal/internal/shared/infrastructure/database/postgres"
	"github.com/felixgeelhaar/cascal/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/cascal/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/cascal/internal/shared/infrastructure/migrations"
	sharedPersistence "github.com/felixgeelhaar/cascal/internal/shared/infrastructure/persistence"
	"github.com/felixgeelhaar/cascal/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database (one of the two is set, per Config.DBDriver)
	SQLiteDB *sql.DB
	Pool     *pgxpool.Pool

	// Repositories
	EntryRepo  plannerDomain.EntryRepository
	RecordRepo plannerDomain.RescheduleRecordRepository

	// Messaging
	EventPublisher eventbus.Publisher

	// Unit of Work
	UnitOfWork sharedApplication.UnitOfWork

	// Planner service
	Planner *plannerServices.CascadePlanner

	// Command handlers
	InsertEntryHandler *plannerCommands.InsertEntryHandler
	UpdateEntryHandler *plannerCommands.UpdateEntryHandler
	BlockShiftHandler  *plannerCommands.BlockShiftHandler
	DeleteEntryHandler *plannerCommands.DeleteEntryHandler

	// Query handlers
	GetEntryHandler              *plannerQueries.GetEntryHandler
	ListEntriesHandler           *plannerQueries.ListEntriesHandler
	PreviewPlanHandler           *plannerQueries.PreviewPlanHandler
	PreviewBlockShiftHandler     *plannerQueries.PreviewBlockShiftHandler
	ListRescheduleRecordsHandler *plannerQueries.ListRescheduleRecordsHandler
	ListDueRemindersHandler      *plannerQueries.ListDueRemindersHandler
}

// NewContainer creates and wires all dependencies for the configured driver.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	switch cfg.DBDriver {
	case "postgres":
		if err := c.initPostgres(ctx); err != nil {
			return nil, err
		}
	case "sqlite", "":
		if err := c.initSQLite(ctx); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DBDriver)
	}

	if err := c.initEventPublisher(); err != nil {
		c.closeDatabases()
		return nil, err
	}

	c.Planner = plannerServices.NewCascadePlanner(logger)

	c.InsertEntryHandler = plannerCommands.NewInsertEntryHandler(c.EntryRepo, c.RecordRepo, c.Planner, c.EventPublisher, logger)
	c.UpdateEntryHandler = plannerCommands.NewUpdateEntryHandler(c.EntryRepo, c.RecordRepo, c.Planner, c.EventPublisher, logger)
	c.BlockShiftHandler = plannerCommands.NewBlockShiftHandler(c.EntryRepo, c.RecordRepo, c.UnitOfWork, c.EventPublisher, logger)
	c.DeleteEntryHandler = plannerCommands.NewDeleteEntryHandler(c.EntryRepo, c.EventPublisher, logger)

	c.GetEntryHandler = plannerQueries.NewGetEntryHandler(c.EntryRepo)
	c.ListEntriesHandler = plannerQueries.NewListEntriesHandler(c.EntryRepo)
	c.PreviewPlanHandler = plannerQueries.NewPreviewPlanHandler(c.EntryRepo, c.Planner)
	c.PreviewBlockShiftHandler = plannerQueries.NewPreviewBlockShiftHandler(c.EntryRepo)
	c.ListRescheduleRecordsHandler = plannerQueries.NewListRescheduleRecordsHandler(c.RecordRepo)
	c.ListDueRemindersHandler = plannerQueries.NewListDueRemindersHandler(c.EntryRepo)

	return c, nil
}

// PlanConfig builds the planner configuration from the loaded config.
func (c *Container) PlanConfig() plannerDomain.PlanConfig {
	plan := plannerDomain.DefaultPlanConfig()
	if c.Config == nil {
		return plan
	}
	if c.Config.Policy == string(plannerDomain.PolicyBalanced) {
		plan.Policy = plannerDomain.PolicyBalanced
	}
	plan.MaxCascade = c.Config.MaxCascade
	plan.StickyDirection = c.Config.StickyDirection
	return plan
}

func (c *Container) initSQLite(ctx context.Context) error {
	path := c.Config.SQLitePath
	if path == "" {
		path = sqlite.DefaultPath()
	}

	db, err := sqlite.Open(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := migrations.RunSQLiteMigrations(ctx, db); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	c.SQLiteDB = db
	c.EntryRepo = plannerPersistence.NewSQLiteEntryRepository(db)
	c.RecordRepo = plannerPersistence.NewSQLiteRescheduleRecordRepository(db)
	c.UnitOfWork = sharedPersistence.NewSQLiteUnitOfWork(db)
	c.Logger.Info("connected to database", "driver", "sqlite", "path", path)
	return nil
}

func (c *Container) initPostgres(ctx context.Context) error {
	if c.Config.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for the postgres driver")
	}

	pool, err := postgres.Open(ctx, c.Config.DatabaseURL, c.Config.MaxConns)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	c.Pool = pool
	c.EntryRepo = plannerPersistence.NewPostgresEntryRepository(pool)
	c.RecordRepo = plannerPersistence.NewPostgresRescheduleRecordRepository(pool)
	c.UnitOfWork = sharedPersistence.NewPgxUnitOfWork(pool)
	c.Logger.Info("connected to database", "driver", "postgres")
	return nil
}

// initEventPublisher connects to RabbitMQ when configured, otherwise uses the
// in-process bus. An unreachable broker is fatal only in production.
func (c *Container) initEventPublisher() error {
	if c.Config.AMQPURL == "" {
		c.EventPublisher = eventbus.NewInProcessEventBus(c.Logger)
		return nil
	}

	publisher, err := eventbus.NewRabbitMQPublisher(c.Config.AMQPURL, c.Logger)
	if err != nil {
		if c.Config.IsProduction() {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		c.Logger.Warn("RabbitMQ not available, using in-process event bus", "error", err)
		c.EventPublisher = eventbus.NewInProcessEventBus(c.Logger)
		return nil
	}
	c.EventPublisher = publisher
	return nil
}

func (c *Container) closeDatabases() {
	if c.Pool != nil {
		c.Pool.Close()
		c.Pool = nil
	}
	if c.SQLiteDB != nil {
		c.SQLiteDB.Close()
		c.SQLiteDB = nil
	}
}

// Close cleans up all resources.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.Pool != nil {
		c.Pool.Close()
		c.Logger.Info("PostgreSQL connection closed")
	}

	if c.SQLiteDB != nil {
		if err := c.SQLiteDB.Close(); err != nil {
			c.Logger.Warn("error closing SQLite connection", "error", err)
		} else {
			c.Logger.Info("SQLite connection closed")
		}
	}
}
