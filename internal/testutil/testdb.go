package testutil

import (
	"testing"

	"portfolio-api/internal/cache"
	"portfolio-api/internal/database"

	"github.com/benbjohnson/clock"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewInMemoryDB creates an in-memory SQLite DB and runs migrations.
// Each call gets its own database.
func NewInMemoryDB() (*gorm.DB, error) {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// NewRegistry returns cache instances on a mock clock, torn down with the test.
func NewRegistry(t *testing.T) (*cache.Registry, *clock.Mock) {
	t.Helper()
	mock := clock.NewMock()
	r := cache.NewRegistry(cache.RegistryOptions{Clock: mock}, cache.NewMonitor(nil), nil)
	t.Cleanup(r.Destroy)
	return r, mock
}
