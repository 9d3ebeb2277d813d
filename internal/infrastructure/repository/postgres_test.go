package repository

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"plume/internal/config"
	"plume/internal/domain/entity"
	"plume/internal/infrastructure/database"
)

// openTestDatabase connects to the PostgreSQL named by PLUME_TEST_PG_HOST and
// friends; the tests are skipped when it is unset
func openTestDatabase(t *testing.T) *database.Database {
	t.Helper()

	host := os.Getenv("PLUME_TEST_PG_HOST")
	if host == "" {
		t.Skip("PLUME_TEST_PG_HOST not set, skipping PostgreSQL repository tests")
	}
	port, _ := strconv.Atoi(os.Getenv("PLUME_TEST_PG_PORT"))
	if port == 0 {
		port = 5432
	}

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Enabled:  true,
			Driver:   "postgres",
			Host:     host,
			Port:     port,
			User:     os.Getenv("PLUME_TEST_PG_USER"),
			Password: os.Getenv("PLUME_TEST_PG_PASSWORD"),
			DBName:   os.Getenv("PLUME_TEST_PG_DBNAME"),
			SSLMode:  "disable",
		},
	}

	lc := fxtest.NewLifecycle(t)
	db, err := database.NewDatabase(lc, cfg, zap.NewNop())
	require.NoError(t, err)
	lc.RequireStart()
	t.Cleanup(lc.RequireStop)

	return db
}

func TestPostgresPreferenceRepository(t *testing.T) {
	db := openTestDatabase(t)
	repo := NewPreferenceRepository(db, zap.NewNop())
	ctx := context.Background()

	key := "test-" + uuid.NewString()

	stored, err := repo.Find(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, stored)

	prefs := entity.DefaultPreferences()
	prefs.ReducedMotion = true
	require.NoError(t, repo.Save(ctx, &entity.StoredPreferences{ClientKey: key, Preferences: prefs, UpdatedAt: time.Now()}))

	prefs.ContractViewMode = entity.ViewModeList
	require.NoError(t, repo.Save(ctx, &entity.StoredPreferences{ClientKey: key, Preferences: prefs, UpdatedAt: time.Now()}))

	stored, err = repo.Find(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.Preferences.ReducedMotion)
	assert.Equal(t, entity.ViewModeList, stored.Preferences.ContractViewMode)
}

func TestPostgresActivityRepository(t *testing.T) {
	db := openTestDatabase(t)
	repo := NewActivityRepository(db, zap.NewNop())
	ctx := context.Background()

	contractID := "ctr-" + uuid.NewString()
	now := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, repo.Save(ctx, &entity.Activity{
		ID: uuid.NewString(), Action: entity.ActivitySend, ContractID: contractID, CreatedAt: now,
	}))
	require.NoError(t, repo.Save(ctx, &entity.Activity{
		ID: uuid.NewString(), Action: entity.ActivityVoid, ContractID: contractID, Reason: "duplicate", CreatedAt: now.Add(time.Second),
	}))

	activities, err := repo.ListByContract(ctx, contractID)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, entity.ActivityVoid, activities[0].Action)
	assert.Equal(t, "duplicate", activities[0].Reason)

	latest, err := repo.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, latest, 1)
}
