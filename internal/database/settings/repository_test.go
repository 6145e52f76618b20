package settings

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Aiko543/quotedeck/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_settings_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Setting{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_SetAndGetSetting(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.SetSetting(entities.SettingKeySelectedCategory, "Motivation")
	require.NoError(t, err)

	setting, err := repo.GetSetting(entities.SettingKeySelectedCategory)
	require.NoError(t, err)
	assert.Equal(t, "Motivation", setting.Value)
}

func TestRepository_SetSetting_Overwrites(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.SetSetting(entities.SettingKeySelectedCategory, "Motivation"))
	require.NoError(t, repo.SetSetting(entities.SettingKeySelectedCategory, "Inspiration"))

	setting, err := repo.GetSetting(entities.SettingKeySelectedCategory)
	require.NoError(t, err)
	assert.Equal(t, "Inspiration", setting.Value)

	var count int64
	require.NoError(t, repo.db.Model(&entities.Setting{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRepository_GetSetting_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetSetting("missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_DeleteSetting(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.SetSetting("doomed", "value"))
	require.NoError(t, repo.DeleteSetting("doomed"))

	_, err := repo.GetSetting("doomed")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
