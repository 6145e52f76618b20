package http

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/Aiko543/quotedeck/internal/config"
)

// Session data keys
const (
	SessionKeyLastQuote    = "last_quote_key"
	SessionKeyLastViewedAt = "last_viewed_at"
)

// SessionManager wraps scs.SessionManager with application-specific methods.
// Each browser session remembers the last quote it was shown, so reloading
// the page brings the same quote back instead of rolling a new one.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a configured session manager.
// The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewSessionManager(sqlDB *sql.DB, cfg config.Session) (*SessionManager, error) {
	// Create sessions table if it doesn't exist
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)

	sm.Lifetime = cfg.Lifetime
	sm.IdleTimeout = cfg.Lifetime / 2

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// RememberQuote stores the key of the quote shown to this session.
func (sm *SessionManager) RememberQuote(r *http.Request, key string) {
	sm.Put(r.Context(), SessionKeyLastQuote, key)
	sm.Put(r.Context(), SessionKeyLastViewedAt, time.Now().Format(time.RFC3339))
}

// LastQuoteKey retrieves the key of the last quote shown to this session.
// Returns "" if the session has not viewed a quote yet.
func (sm *SessionManager) LastQuoteKey(r *http.Request) string {
	return sm.GetString(r.Context(), SessionKeyLastQuote)
}

// LastViewedAt retrieves when this session last viewed a quote.
func (sm *SessionManager) LastViewedAt(r *http.Request) *time.Time {
	raw := sm.GetString(r.Context(), SessionKeyLastViewedAt)
	if raw == "" {
		return nil
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &at
}
