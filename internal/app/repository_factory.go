package app

import (
	"fmt"

	historyDomain "github.com/felixgeelhaar/dayquest/internal/history/domain"
	historyPersistence "github.com/felixgeelhaar/dayquest/internal/history/infrastructure/persistence"
	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/database"
	tasksDomain "github.com/felixgeelhaar/dayquest/internal/tasks/domain"
	tasksPersistence "github.com/felixgeelhaar/dayquest/internal/tasks/infrastructure/persistence"
	todayDomain "github.com/felixgeelhaar/dayquest/internal/today/domain"
	todayPersistence "github.com/felixgeelhaar/dayquest/internal/today/infrastructure/persistence"
)

// RepositoryFactory creates repositories based on the database driver.
type RepositoryFactory struct {
	conn   database.Connection
	driver database.Driver
}

// NewRepositoryFactory creates a new repository factory.
func NewRepositoryFactory(conn database.Connection) *RepositoryFactory {
	return &RepositoryFactory{
		conn:   conn,
		driver: conn.Driver(),
	}
}

// TaskRepository creates a task repository for the configured driver.
func (f *RepositoryFactory) TaskRepository() (tasksDomain.Repository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return tasksPersistence.NewPostgresTaskRepository(f.conn), nil
	case database.DriverSQLite:
		return tasksPersistence.NewSQLiteTaskRepository(f.conn), nil
	default:
		return nil, f.unsupported()
	}
}

// ItemRepository creates a daily item repository for the configured driver.
func (f *RepositoryFactory) ItemRepository() (todayDomain.ItemRepository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return todayPersistence.NewPostgresItemRepository(f.conn), nil
	case database.DriverSQLite:
		return todayPersistence.NewSQLiteItemRepository(f.conn), nil
	default:
		return nil, f.unsupported()
	}
}

// QuestRepository creates a quest repository for the configured driver.
func (f *RepositoryFactory) QuestRepository() (todayDomain.QuestRepository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return todayPersistence.NewPostgresQuestRepository(f.conn), nil
	case database.DriverSQLite:
		return todayPersistence.NewSQLiteQuestRepository(f.conn), nil
	default:
		return nil, f.unsupported()
	}
}

// StreakRepository creates a streak repository for the configured driver.
func (f *RepositoryFactory) StreakRepository() (todayDomain.StreakRepository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return todayPersistence.NewPostgresStreakRepository(f.conn), nil
	case database.DriverSQLite:
		return todayPersistence.NewSQLiteStreakRepository(f.conn), nil
	default:
		return nil, f.unsupported()
	}
}

// ProgressReader creates the history aggregate reader for the configured driver.
func (f *RepositoryFactory) ProgressReader() (historyDomain.ProgressReader, error) {
	switch f.driver {
	case database.DriverPostgres:
		return historyPersistence.NewPostgresProgressReader(f.conn), nil
	case database.DriverSQLite:
		return historyPersistence.NewSQLiteProgressReader(f.conn), nil
	default:
		return nil, f.unsupported()
	}
}

// Driver returns the database driver being used.
func (f *RepositoryFactory) Driver() database.Driver {
	return f.driver
}

// Connection returns the underlying database connection.
func (f *RepositoryFactory) Connection() database.Connection {
	return f.conn
}

func (f *RepositoryFactory) unsupported() error {
	return fmt.Errorf("unsupported driver: %s", f.driver)
}
