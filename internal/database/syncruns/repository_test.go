package syncruns

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Aiko543/quotedeck/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_syncruns_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.SyncRun{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_StartAndComplete(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	run, err := repo.Start()
	require.NoError(t, err)
	assert.Equal(t, entities.SyncStatusRunning, run.Status)
	assert.Nil(t, run.CompletedAt)

	err = repo.Complete(run, 2, 3, 1, 1)
	require.NoError(t, err)

	latest, err := repo.GetLatest()
	require.NoError(t, err)
	assert.Equal(t, entities.SyncStatusCompleted, latest.Status)
	assert.Equal(t, 2, latest.Pushed)
	assert.Equal(t, 3, latest.Added)
	assert.Equal(t, 1, latest.Updated)
	assert.Equal(t, 1, latest.Conflicts)
	assert.NotNil(t, latest.CompletedAt)
}

func TestRepository_Fail(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	run, err := repo.Start()
	require.NoError(t, err)

	err = repo.Fail(run, "remote endpoint unavailable")
	require.NoError(t, err)

	latest, err := repo.GetLatest()
	require.NoError(t, err)
	assert.Equal(t, entities.SyncStatusFailed, latest.Status)
	assert.Equal(t, "remote endpoint unavailable", latest.Error)
}

func TestRepository_GetRecent_NewestFirst(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	for i := 0; i < 5; i++ {
		run, err := repo.Start()
		require.NoError(t, err)
		require.NoError(t, repo.Complete(run, 0, i, 0, 0))
	}

	runs, err := repo.GetRecent(3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, 4, runs[0].Added)
	assert.Equal(t, 3, runs[1].Added)
	assert.Equal(t, 2, runs[2].Added)
}

func TestRepository_PruneOlderThan(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	old, err := repo.Start()
	require.NoError(t, err)
	require.NoError(t, repo.Complete(old, 0, 0, 0, 0))
	// Backdate the completed run past the cutoff
	require.NoError(t, repo.db.Model(old).Update("started_at", time.Now().Add(-48*time.Hour)).Error)

	recent, err := repo.Start()
	require.NoError(t, err)
	require.NoError(t, repo.Complete(recent, 0, 0, 0, 0))

	deleted, err := repo.PruneOlderThan(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	runs, err := repo.GetRecent(10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
