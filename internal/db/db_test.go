package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/homely-bites/internal/config"
	dbpkg "github.com/BruksfildServices01/homely-bites/internal/db"
	"github.com/BruksfildServices01/homely-bites/internal/dbtest"
	"github.com/BruksfildServices01/homely-bites/internal/models"
)

func TestAdminLoginAvailable(t *testing.T) {
	ctx := context.Background()

	t.Run("no password and no rows", func(t *testing.T) {
		db := dbtest.New(t)
		ok, err := dbpkg.AdminLoginAvailable(ctx, db, &config.Config{})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("configured password", func(t *testing.T) {
		db := dbtest.New(t)
		ok, err := dbpkg.AdminLoginAvailable(ctx, db, &config.Config{AdminPassword: "s3cret"})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("admin row", func(t *testing.T) {
		db := dbtest.New(t)
		require.NoError(t, db.Create(&models.Admin{Name: "Ops", Email: "ops@homelybites.in", PasswordHash: "x"}).Error)
		ok, err := dbpkg.AdminLoginAvailable(ctx, db, &config.Config{})
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
