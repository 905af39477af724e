// Package dbtest opens a migrated in-memory SQLite database for tests.
package dbtest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/homely-bites/internal/db"
)

func New(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := dbpkg.GormConfig()
	cfg.Logger = logger.Discard

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), cfg)
	require.NoError(t, err)

	// One connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
