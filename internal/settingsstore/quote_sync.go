package settingsstore

import (
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Aiko543/quotedeck/internal/config"
	"github.com/Aiko543/quotedeck/internal/entities"
)

// QuoteSyncConfig represents the effective configuration for quote sync
type QuoteSyncConfig struct {
	Enabled        bool                  `json:"enabled"`
	Schedule       string                `json:"schedule"`
	ConflictPolicy config.ConflictPolicy `json:"conflict_policy"`
}

// QuoteSyncConfigInfo includes source information for each field
type QuoteSyncConfigInfo struct {
	Enabled       bool   `json:"enabled"`
	EnabledSource string `json:"enabled_source"` // "database", "environment", "default"

	Schedule       string `json:"schedule"`
	ScheduleSource string `json:"schedule_source"`

	ConflictPolicy       config.ConflictPolicy `json:"conflict_policy"`
	ConflictPolicySource string                `json:"conflict_policy_source"`
}

// QuoteSyncStatus represents the last sync status
type QuoteSyncStatus struct {
	LastSyncAt   *time.Time `json:"last_sync_at,omitempty"`
	Status       string     `json:"status,omitempty"`  // "success", "failed", ""
	Message      string     `json:"message,omitempty"` // Error message or stats summary
	QuotesSynced int        `json:"quotes_synced"`
}

// GetSyncEnabled returns whether sync is enabled (database > env > default)
func (s *SettingsStore) GetSyncEnabled() bool {
	setting, err := s.settings.GetSetting(entities.SettingKeySyncEnabled)
	if err == nil && setting.Value != "" {
		return setting.Value == "true" || setting.Value == "1"
	}

	if envVal := os.Getenv("SYNC_ENABLED"); envVal != "" {
		return envVal == "true" || envVal == "1"
	}

	// Default: disabled
	return false
}

// GetSyncEnabledSource returns the source of the enabled setting
func (s *SettingsStore) GetSyncEnabledSource() string {
	setting, err := s.settings.GetSetting(entities.SettingKeySyncEnabled)
	if err == nil && setting.Value != "" {
		return "database"
	}
	if envVal := os.Getenv("SYNC_ENABLED"); envVal != "" {
		return "environment"
	}
	return "default"
}

// SetSyncEnabled saves the enabled setting to database
func (s *SettingsStore) SetSyncEnabled(enabled bool) error {
	return s.settings.SetSetting(entities.SettingKeySyncEnabled, strconv.FormatBool(enabled))
}

// GetSyncSchedule returns the cron schedule (database > env > default)
func (s *SettingsStore) GetSyncSchedule() string {
	setting, err := s.settings.GetSetting(entities.SettingKeySyncSchedule)
	if err == nil && setting.Value != "" {
		return setting.Value
	}

	if envVal := os.Getenv("SYNC_SCHEDULE"); envVal != "" {
		return envVal
	}

	return config.DefaultSyncSchedule
}

// GetSyncScheduleSource returns the source of the schedule setting
func (s *SettingsStore) GetSyncScheduleSource() string {
	setting, err := s.settings.GetSetting(entities.SettingKeySyncSchedule)
	if err == nil && setting.Value != "" {
		return "database"
	}
	if envVal := os.Getenv("SYNC_SCHEDULE"); envVal != "" {
		return "environment"
	}
	return "default"
}

// SetSyncSchedule saves the schedule to database
func (s *SettingsStore) SetSyncSchedule(schedule string) error {
	return s.settings.SetSetting(entities.SettingKeySyncSchedule, schedule)
}

// GetConflictPolicy returns the conflict policy (database > env > default)
func (s *SettingsStore) GetConflictPolicy() config.ConflictPolicy {
	setting, err := s.settings.GetSetting(entities.SettingKeySyncConflictPolicy)
	if err == nil && config.ValidConflictPolicy(config.ConflictPolicy(setting.Value)) {
		return config.ConflictPolicy(setting.Value)
	}

	if envVal := os.Getenv("SYNC_CONFLICT_POLICY"); config.ValidConflictPolicy(config.ConflictPolicy(envVal)) {
		return config.ConflictPolicy(envVal)
	}

	return config.PolicyServerWins
}

// GetConflictPolicySource returns the source of the conflict policy setting
func (s *SettingsStore) GetConflictPolicySource() string {
	setting, err := s.settings.GetSetting(entities.SettingKeySyncConflictPolicy)
	if err == nil && config.ValidConflictPolicy(config.ConflictPolicy(setting.Value)) {
		return "database"
	}
	if envVal := os.Getenv("SYNC_CONFLICT_POLICY"); config.ValidConflictPolicy(config.ConflictPolicy(envVal)) {
		return "environment"
	}
	return "default"
}

// SetConflictPolicy saves the conflict policy to database
func (s *SettingsStore) SetConflictPolicy(policy config.ConflictPolicy) error {
	return s.settings.SetSetting(entities.SettingKeySyncConflictPolicy, string(policy))
}

// GetSyncConfig returns the effective configuration
func (s *SettingsStore) GetSyncConfig() QuoteSyncConfig {
	return QuoteSyncConfig{
		Enabled:        s.GetSyncEnabled(),
		Schedule:       s.GetSyncSchedule(),
		ConflictPolicy: s.GetConflictPolicy(),
	}
}

// GetSyncConfigInfo returns the configuration with source information
func (s *SettingsStore) GetSyncConfigInfo() QuoteSyncConfigInfo {
	return QuoteSyncConfigInfo{
		Enabled:              s.GetSyncEnabled(),
		EnabledSource:        s.GetSyncEnabledSource(),
		Schedule:             s.GetSyncSchedule(),
		ScheduleSource:       s.GetSyncScheduleSource(),
		ConflictPolicy:       s.GetConflictPolicy(),
		ConflictPolicySource: s.GetConflictPolicySource(),
	}
}

// GetSyncStatus returns the last sync status
func (s *SettingsStore) GetSyncStatus() QuoteSyncStatus {
	status := QuoteSyncStatus{}

	if setting, err := s.settings.GetSetting(entities.SettingKeySyncLastAt); err == nil && setting.Value != "" {
		if ts, err := time.Parse(time.RFC3339, setting.Value); err == nil {
			status.LastSyncAt = &ts
		}
	}

	if setting, err := s.settings.GetSetting(entities.SettingKeySyncLastStatus); err == nil {
		status.Status = setting.Value
	}

	if setting, err := s.settings.GetSetting(entities.SettingKeySyncLastMessage); err == nil {
		status.Message = setting.Value
	}

	if setting, err := s.settings.GetSetting(entities.SettingKeySyncQuotesSynced); err == nil {
		if n, err := strconv.Atoi(setting.Value); err == nil {
			status.QuotesSynced = n
		}
	}

	return status
}

// SetSyncStatus updates the sync status
func (s *SettingsStore) SetSyncStatus(status, message string, quotesSynced int) error {
	now := time.Now().UTC().Format(time.RFC3339)

	if err := s.settings.SetSetting(entities.SettingKeySyncLastAt, now); err != nil {
		return err
	}
	if err := s.settings.SetSetting(entities.SettingKeySyncLastStatus, status); err != nil {
		return err
	}
	if err := s.settings.SetSetting(entities.SettingKeySyncLastMessage, message); err != nil {
		return err
	}
	return s.settings.SetSetting(entities.SettingKeySyncQuotesSynced, strconv.Itoa(quotesSynced))
}

// ClearSyncSettings clears all database overrides, reverting to env/default
func (s *SettingsStore) ClearSyncSettings() error {
	keys := []string{
		entities.SettingKeySyncEnabled,
		entities.SettingKeySyncSchedule,
		entities.SettingKeySyncConflictPolicy,
	}
	for _, key := range keys {
		if err := s.settings.DeleteSetting(key); err != nil {
			// Ignore not found errors
			continue
		}
	}
	return nil
}

// cronParser accepts schedules with an optional leading seconds field, so
// both "*/30 * * * * *" and "0 * * * *" are valid.
func cronParser() cron.Parser {
	return cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
}

// ValidateCronSchedule validates a cron schedule string
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser().Parse(schedule)
	return err
}

// GetCronDescription returns a human-readable description of a cron schedule
func GetCronDescription(schedule string) string {
	switch schedule {
	case "*/30 * * * * *":
		return "Every 30 seconds"
	case "* * * * *":
		return "Every minute"
	case "*/5 * * * *":
		return "Every 5 minutes"
	case "*/15 * * * *":
		return "Every 15 minutes"
	case "0 * * * *":
		return "Every hour at :00"
	default:
		return "Custom schedule: " + schedule
	}
}

// GetNextRunTime calculates when the next sync will run based on the schedule
func GetNextRunTime(schedule string) (*time.Time, error) {
	sched, err := cronParser().Parse(schedule)
	if err != nil {
		return nil, err
	}
	next := sched.Next(time.Now())
	return &next, nil
}
