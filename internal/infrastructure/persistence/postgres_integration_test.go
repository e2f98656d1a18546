//go:build integration

package persistence_test

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/macrotrack/backend/internal/domain"
	"github.com/macrotrack/backend/internal/infrastructure/persistence"
	"github.com/macrotrack/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// setupPostgres starts a throwaway PostgreSQL container and returns a migrated connection
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "macrotrack",
				"POSTGRES_PASSWORD": "macrotrack",
				"POSTGRES_DB":       "macrotrack",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	db, err := persistence.Open(persistence.Options{
		Driver:       persistence.DriverPostgres,
		DSN:          fmt.Sprintf("host=%s port=%s user=macrotrack password=macrotrack dbname=macrotrack sslmode=disable", host, port.Port()),
		MaxOpenConns: 20,
	}, nil)
	require.NoError(t, err)
	require.NoError(t, persistence.AutoMigrate(db))
	t.Cleanup(func() {
		_ = persistence.Close(db)
	})
	return db
}

func TestPostgres_WaterUpsertIsAtomic(t *testing.T) {
	db := setupPostgres(t)
	repo := persistence.NewWaterIntakeRepository(db)
	ctx := context.Background()

	const writers = 50
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(amount float64) {
			defer wg.Done()
			_, err := repo.Upsert(ctx, 1, "2024-03-01", amount, nil)
			errs <- err
		}(float64(i * 10))
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&domain.WaterIntake{}).Where("user_id = ? AND date = ?", 1, "2024-03-01").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPostgres_GoalCreateIfAbsentRace(t *testing.T) {
	db := setupPostgres(t)
	repo := persistence.NewUserGoalRepository(db)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			goal := domain.DefaultUserGoal(9)
			assert.NoError(t, repo.CreateIfAbsent(ctx, &goal))
		}()
	}
	wg.Wait()

	var count int64
	require.NoError(t, db.Model(&domain.UserGoal{}).Where("user_id = ?", 9).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPostgres_CuratedSearchEscapesWildcards(t *testing.T) {
	db := setupPostgres(t)
	repo := persistence.NewCuratedFoodRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateBatch(ctx, []domain.CuratedFood{
		{Name: "Rice 100% whole grain", FoodNutrients: domain.FoodNutrients{Calories: testutil.Float(350)}},
		{Name: "Rice flakes"},
	}))

	foods, err := repo.Search(ctx, "100%", 20)
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "Rice 100% whole grain", foods[0].Name)
}
