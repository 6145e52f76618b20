package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aiko543/quotedeck/internal/config"
	"github.com/Aiko543/quotedeck/internal/database"
	"github.com/Aiko543/quotedeck/internal/database/quotes"
	"github.com/Aiko543/quotedeck/internal/database/settings"
	"github.com/Aiko543/quotedeck/internal/entities"
	"github.com/Aiko543/quotedeck/internal/picker"
	"github.com/Aiko543/quotedeck/internal/settingsstore"
)

// A fresh database always contains the three seeded starter quotes.
const seededQuoteCount = 3

type controllerFixture struct {
	db       *database.Database
	quotes   *quotes.Repository
	settings *settingsstore.SettingsStore
	picker   *picker.Picker
}

func setupControllerTest(t *testing.T) (*controllerFixture, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	quotesRepo := quotes.NewRepository(db.DB)
	settingsRepo := settings.NewRepository(db.DB)
	store := settingsstore.New(settingsRepo)

	fixture := &controllerFixture{
		db:       db,
		quotes:   quotesRepo,
		settings: store,
		picker:   picker.New(quotesRepo),
	}
	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return fixture, cleanup
}

func testSessionConfig() config.Session {
	return config.Session{Lifetime: time.Hour, SecureCookies: false}
}

func (f *controllerFixture) quotesController() *QuotesController {
	return NewQuotesController(f.quotes, f.picker, f.settings, nil, nil)
}

func TestQuotesController_GetAllQuotes(t *testing.T) {
	t.Run("returns seeded quotes on fresh database", func(t *testing.T) {
		fixture, cleanup := setupControllerTest(t)
		defer cleanup()

		router := gin.New()
		router.GET("/api/quotes", fixture.quotesController().GetAllQuotes)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/quotes", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, float64(seededQuoteCount), response["count"])
	})

	t.Run("filters by category", func(t *testing.T) {
		fixture, cleanup := setupControllerTest(t)
		defer cleanup()

		_, err := fixture.quotes.Add("Stay hungry.", "Motivation")
		require.NoError(t, err)

		router := gin.New()
		router.GET("/api/quotes", fixture.quotesController().GetAllQuotes)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/quotes?category=Motivation", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, float64(2), response["count"])
	})

	t.Run("category all matches everything", func(t *testing.T) {
		fixture, cleanup := setupControllerTest(t)
		defer cleanup()

		router := gin.New()
		router.GET("/api/quotes", fixture.quotesController().GetAllQuotes)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/quotes?category=all", nil)
		router.ServeHTTP(w, req)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, float64(seededQuoteCount), response["count"])
	})
}

func TestQuotesController_AddQuote(t *testing.T) {
	t.Run("creates quote with generated key", func(t *testing.T) {
		fixture, cleanup := setupControllerTest(t)
		defer cleanup()

		router := gin.New()
		router.POST("/api/quotes", fixture.quotesController().AddQuote)

		body := `{"text": "Ship it.", "category": "Engineering"}`
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/quotes", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response struct {
			Quote entities.Quote `json:"quote"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Ship it.", response.Quote.Text)
		assert.Equal(t, "Engineering", response.Quote.Category)
		assert.NotEmpty(t, response.Quote.Key)
		assert.True(t, response.Quote.Pending)
	})

	t.Run("rejects blank text", func(t *testing.T) {
		fixture, cleanup := setupControllerTest(t)
		defer cleanup()

		router := gin.New()
		router.POST("/api/quotes", fixture.quotesController().AddQuote)

		body := `{"text": "   ", "category": "Engineering"}`
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/quotes", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		fixture, cleanup := setupControllerTest(t)
		defer cleanup()

		router := gin.New()
		router.POST("/api/quotes", fixture.quotesController().AddQuote)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/quotes", bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestQuotesController_GetRandomQuote(t *testing.T) {
	t.Run("query category overrides stored filter", func(t *testing.T) {
		fixture, cleanup := setupControllerTest(t)
		defer cleanup()

		require.NoError(t, fixture.settings.SetSelectedCategory("Motivation"))

		router := gin.New()
		router.GET("/api/quotes/random", fixture.quotesController().GetRandomQuote)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/quotes/random?category=Resilience", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var quote entities.Quote
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
		assert.Equal(t, "Resilience", quote.Category)
	})

	t.Run("uses stored filter when no query category", func(t *testing.T) {
		fixture, cleanup := setupControllerTest(t)
		defer cleanup()

		require.NoError(t, fixture.settings.SetSelectedCategory("Inspiration"))

		router := gin.New()
		router.GET("/api/quotes/random", fixture.quotesController().GetRandomQuote)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/quotes/random", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var quote entities.Quote
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
		assert.Equal(t, "Inspiration", quote.Category)
	})

	t.Run("returns 404 for category with no quotes", func(t *testing.T) {
		fixture, cleanup := setupControllerTest(t)
		defer cleanup()

		router := gin.New()
		router.GET("/api/quotes/random", fixture.quotesController().GetRandomQuote)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/quotes/random?category=Nonexistent", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "no quotes available")
	})

	t.Run("returns 404 on empty store", func(t *testing.T) {
		fixture, cleanup := setupControllerTest(t)
		defer cleanup()

		require.NoError(t, fixture.quotes.ReplaceAll(nil))

		router := gin.New()
		router.GET("/api/quotes/random", fixture.quotesController().GetRandomQuote)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/quotes/random", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestQuotesController_LastViewedSession(t *testing.T) {
	t.Run("session remembers last random quote", func(t *testing.T) {
		fixture, cleanup := setupControllerTest(t)
		defer cleanup()

		sqlDB, err := fixture.db.DB.DB()
		require.NoError(t, err)

		sessions, err := NewSessionManager(sqlDB, testSessionConfig())
		require.NoError(t, err)

		router := NewRouter(RouterConfig{
			Database:       fixture.db,
			QuoteStore:     fixture.quotes,
			Picker:         fixture.picker,
			SettingsStore:  fixture.settings,
			SessionManager: sessions,
		})

		// First request: roll a random quote, capture the session cookie
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/quotes/random", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var picked entities.Quote
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &picked))

		cookies := w.Result().Cookies()
		require.NotEmpty(t, cookies)

		// Second request: last viewed should match with the same cookie
		w2 := httptest.NewRecorder()
		req2, _ := http.NewRequest("GET", "/api/quotes/last", nil)
		for _, cookie := range cookies {
			req2.AddCookie(cookie)
		}
		router.ServeHTTP(w2, req2)
		require.Equal(t, http.StatusOK, w2.Code)

		var response struct {
			Quote entities.Quote `json:"quote"`
		}
		require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &response))
		assert.Equal(t, picked.Key, response.Quote.Key)
	})

	t.Run("fresh session has no last viewed quote", func(t *testing.T) {
		fixture, cleanup := setupControllerTest(t)
		defer cleanup()

		sqlDB, err := fixture.db.DB.DB()
		require.NoError(t, err)

		sessions, err := NewSessionManager(sqlDB, testSessionConfig())
		require.NoError(t, err)

		router := NewRouter(RouterConfig{
			Database:       fixture.db,
			QuoteStore:     fixture.quotes,
			Picker:         fixture.picker,
			SettingsStore:  fixture.settings,
			SessionManager: sessions,
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/quotes/last", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestQuotesController_GetQuoteStats(t *testing.T) {
	t.Run("reports totals", func(t *testing.T) {
		fixture, cleanup := setupControllerTest(t)
		defer cleanup()

		_, err := fixture.quotes.Add("Measure twice.", "Engineering")
		require.NoError(t, err)

		router := gin.New()
		router.GET("/api/quotes/stats", fixture.quotesController().GetQuoteStats)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/quotes/stats", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, float64(seededQuoteCount+1), response["total_quotes"])
		assert.Equal(t, float64(4), response["total_categories"])
	})
}
