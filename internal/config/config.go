package config

import (
	"time"

	"github.com/spf13/viper"
)

type ConflictPolicy string

const (
	PolicyServerWins ConflictPolicy = "server-wins" // Remote data overwrites local on mismatch (default)
	PolicyLocalWins  ConflictPolicy = "local-wins"  // Local data is kept on mismatch
	PolicyManual     ConflictPolicy = "manual"      // Conflicts are held for interactive resolution
	PolicyReplace    ConflictPolicy = "replace"     // Local store is replaced wholesale, no push, no merge
)

// ValidConflictPolicy reports whether the given value names a known policy.
func ValidConflictPolicy(p ConflictPolicy) bool {
	switch p {
	case PolicyServerWins, PolicyLocalWins, PolicyManual, PolicyReplace:
		return true
	}
	return false
}

type (
	Config struct {
		HTTP
		Global
		Database
		Session
		Sync
		Remote
		Tasks
		Audit
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Session struct {
		Lifetime      time.Duration
		SecureCookies bool // Set to false for local dev without HTTPS
	}
	Sync struct {
		Enabled        bool
		Schedule       string // Cron format with seconds: "*/30 * * * * *" = every 30 seconds
		ConflictPolicy ConflictPolicy
	}
	Remote struct {
		Endpoint   string
		FetchLimit int
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	Audit struct {
		// Dir is where raw import payloads are archived. Empty disables auditing.
		Dir string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Session defaults
	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("secure_cookies", false)

	// Sync defaults
	v.SetDefault("sync_enabled", false)
	v.SetDefault("sync_schedule", DefaultSyncSchedule)
	v.SetDefault("sync_conflict_policy", string(PolicyServerWins))
	v.SetDefault("sync_endpoint", DefaultSyncEndpoint)
	v.SetDefault("sync_fetch_limit", DefaultFetchLimit)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "5m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	// Audit default: disabled
	v.SetDefault("audit_dir", "")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Session: Session{
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			SecureCookies: v.GetBool("SECURE_COOKIES"),
		},
		Sync: Sync{
			Enabled:        v.GetBool("SYNC_ENABLED"),
			Schedule:       v.GetString("SYNC_SCHEDULE"),
			ConflictPolicy: ConflictPolicy(v.GetString("SYNC_CONFLICT_POLICY")),
		},
		Remote: Remote{
			Endpoint:   v.GetString("SYNC_ENDPOINT"),
			FetchLimit: v.GetInt("SYNC_FETCH_LIMIT"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		Audit: Audit{
			Dir: v.GetString("AUDIT_DIR"),
		},
	}
}
