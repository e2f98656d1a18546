// Package testutil holds helpers shared by package tests
package testutil

import (
	"testing"

	"github.com/macrotrack/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewSQLiteDB returns a migrated in-memory database closed at test cleanup.
// A single connection keeps every query on the same in-memory database
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := persistence.Open(persistence.Options{
		Driver:       persistence.DriverSQLite,
		DSN:          "file::memory:?_foreign_keys=on",
		MaxOpenConns: 1,
	}, nil)
	require.NoError(t, err)
	require.NoError(t, persistence.AutoMigrate(db))

	t.Cleanup(func() {
		_ = persistence.Close(db)
	})
	return db
}

// Float returns a pointer to v
func Float(v float64) *float64 {
	return &v
}
