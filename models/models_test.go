package models

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB returns an in-memory database with the full schema. The
// pool is pinned to one connection so every query sees the same
// in-memory file.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&User{},
		&UserCompany{},
		&Company{},
		&Financial{},
		&StockPrice{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username, email string) *User {
	t.Helper()
	hash := "$2a$10$fakehashfakehashfakehashfakehash"
	user, err := CreateUser(db, username, email, &hash, "")
	require.NoError(t, err)
	return user
}

func ptr(v float64) *float64 { return &v }
