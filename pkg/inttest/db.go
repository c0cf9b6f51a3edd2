// Package inttest provides test helpers shared by the package tests.
package inttest

import (
	"fmt"
	"testing"

	"github.com/confdeck/deck-manager/pkg/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDB returns an isolated in-memory database with the schema migrated.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// repositories rely on gorm.ErrDuplicatedKey for unique index violations
		TranslateError: true,
	})
	require.NoError(t, err)

	// sqlite allows a single writer, a one-connection pool makes concurrent
	// transactions queue instead of failing with a lock error
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	err = db.AutoMigrate(
		&model.User{},
		&model.Event{},
		&model.Proposal{},
		&model.Vote{},
	)
	require.NoError(t, err)

	return db
}
