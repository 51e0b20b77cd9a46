// Package app wires DayQuest's repositories, services and handlers for the
// CLI, the worker and the MCP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	historyQueries "github.com/felixgeelhaar/dayquest/internal/history/application/queries"
	historyDomain "github.com/felixgeelhaar/dayquest/internal/history/domain"
	reminderServices "github.com/felixgeelhaar/dayquest/internal/reminders/application/services"
	"github.com/felixgeelhaar/dayquest/internal/reminders/application/subscribers"
	sharedApplication "github.com/felixgeelhaar/dayquest/internal/shared/application"
	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/database/postgres"
	_ "github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/lock"
	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/security"
	"github.com/felixgeelhaar/dayquest/internal/tasks/application/commands"
	"github.com/felixgeelhaar/dayquest/internal/tasks/application/queries"
	tasksDomain "github.com/felixgeelhaar/dayquest/internal/tasks/domain"
	todayQueries "github.com/felixgeelhaar/dayquest/internal/today/application/queries"
	todayServices "github.com/felixgeelhaar/dayquest/internal/today/application/services"
	todayDomain "github.com/felixgeelhaar/dayquest/internal/today/domain"
	"github.com/felixgeelhaar/dayquest/pkg/config"
	"github.com/felixgeelhaar/dayquest/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config   *config.Config
	Logger   *slog.Logger
	Location *time.Location

	// Infrastructure
	DB          database.Connection
	UnitOfWork  sharedApplication.UnitOfWork
	Locker      lock.Locker
	EventBus    *eventbus.InProcessEventBus
	Publisher   eventbus.Publisher
	Breaker     *eventbus.BreakerPublisher
	Metrics     *observability.InMemoryMetrics
	Health      *observability.HealthRegistry
	Preferences *config.PreferencesStore

	redisLocker *lock.RedisLocker

	// Repositories
	TaskRepo       tasksDomain.Repository
	ItemRepo       todayDomain.ItemRepository
	QuestRepo      todayDomain.QuestRepository
	StreakRepo     todayDomain.StreakRepository
	ProgressReader historyDomain.ProgressReader

	// Task handlers
	SaveTaskHandler   *commands.SaveTaskHandler
	DeleteTaskHandler *commands.DeleteTaskHandler
	ListTasksHandler  *queries.ListTasksHandler
	GetTaskHandler    *queries.GetTaskHandler

	// Daily pipeline
	Refresher         *todayServices.Refresher
	TodayTasksHandler *todayQueries.TodayTasksHandler
	GetStreakHandler  *todayQueries.GetStreakHandler

	// History
	HistorySummaryHandler *historyQueries.HistorySummaryHandler

	// Reminders
	ReminderPlanner    *reminderServices.Planner
	ReminderDispatcher *reminderServices.Dispatcher
}

// NewContainer creates and wires all dependencies. Redis and RabbitMQ are
// optional outside production; without them the refresh lock is process
// local and events stay in process.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	prefsPath, err := security.CleanDataPath(cfg.PreferencesPath)
	if err != nil {
		return nil, fmt.Errorf("invalid preferences path: %w", err)
	}
	c := &Container{
		Config:      cfg,
		Logger:      logger,
		Location:    cfg.Location(),
		Metrics:     observability.NewInMemoryMetrics(),
		Health:      observability.NewHealthRegistry(),
		Preferences: config.NewPreferencesStore(prefsPath),
	}

	dbConfig := database.Config{
		Driver: database.Driver(cfg.DatabaseDriver),
		URL:    cfg.DatabaseURL,
	}
	if cfg.SQLitePath != "" {
		if dbConfig.SQLitePath, err = security.CleanDataPath(cfg.SQLitePath); err != nil {
			return nil, fmt.Errorf("invalid SQLite path: %w", err)
		}
	}

	conn, err := database.NewConnection(ctx, dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = conn
	logger.Info("connected to database", "driver", conn.Driver())

	if err := migrations.Run(ctx, conn); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	c.Health.Register("database", observability.PingHealthChecker(conn.Ping))

	if err := c.initLocker(ctx); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.initPublisher(); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.initRepositories(); err != nil {
		c.Close()
		return nil, err
	}
	c.initHandlers()

	return c, nil
}

func (c *Container) initLocker(ctx context.Context) error {
	c.Locker = lock.NewLocalLocker()
	if c.Config.RedisURL == "" {
		return nil
	}

	locker, err := lock.NewRedisLocker(ctx, c.Config.RedisURL, c.Config.RefreshLockTTL)
	if err != nil {
		if c.Config.IsProduction() {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.Logger.Warn("Redis not available, refresh lock is process local", "error", err)
		return nil
	}

	c.redisLocker = locker
	c.Locker = locker
	c.Health.Register("redis", observability.OptionalPingHealthChecker(locker.Ping))
	c.Logger.Info("connected to Redis")
	return nil
}

func (c *Container) initPublisher() error {
	c.EventBus = eventbus.NewInProcessEventBus(c.Logger)
	c.Publisher = c.EventBus
	if c.Config.RabbitMQURL == "" {
		return nil
	}

	broker, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Logger)
	if err != nil {
		if c.Config.IsProduction() {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		c.Logger.Warn("RabbitMQ not available, events stay in process", "error", err)
		return nil
	}

	breakerCfg := eventbus.DefaultBreakerConfig()
	if c.Config.PublishBreakerTrips > 0 {
		breakerCfg.ConsecutiveFailures = c.Config.PublishBreakerTrips
	}
	c.Breaker = eventbus.NewBreakerPublisher(broker, breakerCfg, c.Logger)
	c.Publisher = eventbus.MultiPublisher{c.EventBus, c.Breaker}
	c.Health.Register("events", observability.OptionalPingHealthChecker(func(context.Context) error {
		if state := c.Breaker.State(); state == "open" {
			return errors.New("publisher circuit " + state)
		}
		return nil
	}))
	c.Logger.Info("connected to RabbitMQ")
	return nil
}

func (c *Container) initRepositories() error {
	factory := NewRepositoryFactory(c.DB)
	var err error

	if c.TaskRepo, err = factory.TaskRepository(); err != nil {
		return err
	}
	if c.ItemRepo, err = factory.ItemRepository(); err != nil {
		return err
	}
	if c.QuestRepo, err = factory.QuestRepository(); err != nil {
		return err
	}
	if c.StreakRepo, err = factory.StreakRepository(); err != nil {
		return err
	}
	if c.ProgressReader, err = factory.ProgressReader(); err != nil {
		return err
	}
	c.UnitOfWork = database.NewUnitOfWork(c.DB)
	return nil
}

func (c *Container) initHandlers() {
	c.SaveTaskHandler = commands.NewSaveTaskHandler(c.TaskRepo, c.UnitOfWork, c.Publisher)
	c.DeleteTaskHandler = commands.NewDeleteTaskHandler(c.TaskRepo, c.UnitOfWork, c.Publisher)
	c.ListTasksHandler = queries.NewListTasksHandler(c.TaskRepo)
	c.GetTaskHandler = queries.NewGetTaskHandler(c.TaskRepo)

	c.Refresher = todayServices.NewRefresher(todayServices.RefresherDeps{
		Generator: todayServices.NewGenerator(c.TaskRepo, c.ItemRepo, c.Location, c.Logger),
		Machine:   todayServices.NewStatusMachine(c.ItemRepo, c.UnitOfWork),
		Quests:    todayServices.NewQuestSynchronizer(c.ItemRepo, c.QuestRepo),
		Streaks:   todayServices.NewStreakCalculator(c.QuestRepo, c.StreakRepo),
		Locker:    c.Locker,
		Publisher: c.Publisher,
		Metrics:   c.Metrics,
		Logger:    c.Logger,
	})
	c.TodayTasksHandler = todayQueries.NewTodayTasksHandler(c.ItemRepo, c.QuestRepo, c.StreakRepo)
	c.GetStreakHandler = todayQueries.NewGetStreakHandler(c.StreakRepo)

	c.HistorySummaryHandler = historyQueries.NewHistorySummaryHandler(c.ProgressReader)

	c.ReminderPlanner = reminderServices.NewPlanner(c.TaskRepo, c.reminderSettings, c.Location)
	c.ReminderDispatcher = reminderServices.NewDispatcher(c.ReminderPlanner, c.Publisher, c.Logger)
}

func (c *Container) reminderSettings(context.Context) (reminderServices.Settings, error) {
	prefs, err := c.Preferences.Load()
	if err != nil {
		return reminderServices.Settings{}, err
	}
	return reminderServices.SettingsFromPreferences(prefs), nil
}

// RegisterNotifier prints reminders and achieved quests to out while
// notifications are enabled in the preferences.
func (c *Container) RegisterNotifier(out io.Writer) {
	enabled := func(ctx context.Context) bool {
		prefs, err := c.Preferences.Load()
		if err != nil {
			c.Logger.WarnContext(ctx, "failed to read preferences, notifying anyway", "error", err)
			return true
		}
		return prefs.NotificationsEnabled
	}
	c.EventBus.RegisterConsumer(subscribers.NewNotifier(out, enabled, c.Logger))
}

// resetTables lists every DayQuest table, children before parents.
var resetTables = []string{"quests", "daily_items", "streaks", "tasks"}

// ResetLocalData deletes every task, item, quest and the streak in one
// transaction and restores the default preferences.
func (c *Container) ResetLocalData(ctx context.Context) error {
	err := sharedApplication.WithUnitOfWork(ctx, c.UnitOfWork, func(txCtx context.Context) error {
		exec := database.ExecutorFromContext(txCtx, c.DB)
		for _, table := range resetTables {
			if _, err := exec.Exec(txCtx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if _, err := c.Preferences.Update(func(p *config.Preferences) { *p = config.DefaultPreferences() }); err != nil {
		return fmt.Errorf("reset preferences: %w", err)
	}
	c.Logger.InfoContext(ctx, "local data reset")
	return nil
}

// Now returns the current time in the configured zone.
func (c *Container) Now() time.Time {
	return time.Now().In(c.Location)
}

// Today returns the current calendar date in the configured zone.
func (c *Container) Today() todayDomain.DateKey {
	return todayDomain.DateKeyOf(c.Now())
}

// Close cleans up all resources.
func (c *Container) Close() {
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.redisLocker != nil {
		if err := c.redisLocker.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		} else {
			c.Logger.Info("Redis connection closed")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			c.Logger.Warn("error closing database connection", "error", err)
		} else {
			c.Logger.Info("database connection closed", "driver", c.DB.Driver())
		}
	}
}
