package store

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nstepanov-hw/shop-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// one connection, otherwise every pooled connection sees its own
	// empty in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Item{}, &models.Cart{}, &models.CartLine{}, &models.User{}))
	return db
}

func floatPtr(v float64) *float64 { return &v }

func uintPtr(v uint) *uint { return &v }

func strPtr(v string) *string { return &v }
