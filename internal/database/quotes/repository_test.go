package quotes

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
	dbPath := "./test_quotes_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Quote{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_Add(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	quote, err := repo.Add("Stay hungry, stay foolish.", "Motivation")

	require.NoError(t, err)
	assert.NotZero(t, quote.ID)
	assert.NotEmpty(t, quote.Key)
	assert.Equal(t, "Stay hungry, stay foolish.", quote.Text)
	assert.Equal(t, "Motivation", quote.Category)
	assert.True(t, quote.Pending)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRepository_Add_TrimsFields(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	quote, err := repo.Add("  spaced out  ", "  Calm  ")

	require.NoError(t, err)
	assert.Equal(t, "spaced out", quote.Text)
	assert.Equal(t, "Calm", quote.Category)
}

func TestRepository_Add_RejectsEmptyFields(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	cases := []struct {
		name     string
		text     string
		category string
	}{
		{"empty text", "", "Motivation"},
		{"empty category", "Some quote", ""},
		{"whitespace text", "   ", "Motivation"},
		{"whitespace category", "Some quote", "\t "},
		{"both empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := repo.Add(tc.text, tc.category)
			assert.ErrorIs(t, err, ErrEmptyField)
		})
	}

	// Nothing was persisted by any of the rejected adds
	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestRepository_ImportAll_AppendsVerbatim(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Add("Original", "Motivation")
	require.NoError(t, err)

	imported, err := repo.ImportAll([]entities.Quote{
		{Text: "Imported one", Category: "Motivation"},
		{Text: "Imported two", Category: "Focus"},
		// Duplicate of an existing quote; append semantics keep it
		{Text: "Original", Category: "Motivation"},
	})

	require.NoError(t, err)
	assert.Equal(t, 3, imported)

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 4)

	for _, quote := range all {
		assert.NotEmpty(t, quote.Key)
	}
}

func TestRepository_ImportAll_MarksLocalRecordsPending(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.ImportAll([]entities.Quote{
		{Text: "local", Category: "A"},
		{Text: "from server", Category: "B", ExternalID: "42"},
	})
	require.NoError(t, err)

	pending, err := repo.GetPending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "local", pending[0].Text)
}

func TestRepository_ReplaceAll(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Add("will be gone", "Old")
	require.NoError(t, err)

	err = repo.ReplaceAll([]entities.Quote{
		{Text: "server one", Category: "Server 1", ExternalID: "1"},
		{Text: "server two", Category: "Server 2", ExternalID: "2"},
	})
	require.NoError(t, err)

	all, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "server one", all[0].Text)
	assert.Equal(t, "server two", all[1].Text)
}

func TestRepository_GetByCategory(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Add("one", "Motivation")
	require.NoError(t, err)
	_, err = repo.Add("two", "Inspiration")
	require.NoError(t, err)
	_, err = repo.Add("three", "Motivation")
	require.NoError(t, err)

	quotes, err := repo.GetByCategory("Motivation")
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	for _, quote := range quotes {
		assert.Equal(t, "Motivation", quote.Category)
	}
}

func TestRepository_GetCategories_FirstSeenOrder(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	for _, pair := range [][2]string{
		{"a", "Motivation"},
		{"b", "Inspiration"},
		{"c", "Motivation"},
		{"d", "Resilience"},
		{"e", "Inspiration"},
	} {
		_, err := repo.Add(pair[0], pair[1])
		require.NoError(t, err)
	}

	categories, err := repo.GetCategories()
	require.NoError(t, err)
	assert.Equal(t, []string{"Motivation", "Inspiration", "Resilience"}, categories)
}

func TestRepository_GetByExternalID(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.ImportAll([]entities.Quote{
		{Text: "remote", Category: "Server 1", ExternalID: "7"},
	})
	require.NoError(t, err)

	quote, err := repo.GetByExternalID("7")
	require.NoError(t, err)
	assert.Equal(t, "remote", quote.Text)

	_, err = repo.GetByExternalID("missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_MarkSynced(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	quote, err := repo.Add("pending quote", "Motivation")
	require.NoError(t, err)
	require.True(t, quote.Pending)

	syncedAt := time.Now()
	err = repo.MarkSynced(quote.ID, "101", syncedAt)
	require.NoError(t, err)

	updated, err := repo.GetByID(quote.ID)
	require.NoError(t, err)
	assert.False(t, updated.Pending)
	assert.Equal(t, "101", updated.ExternalID)
	require.NotNil(t, updated.SyncedAt)
	assert.WithinDuration(t, syncedAt, *updated.SyncedAt, time.Second)
}
