package settingsstore

import (
	"gorm.io/gorm"

	"github.com/Aiko543/quotedeck/internal/database/settings"
	"github.com/Aiko543/quotedeck/internal/entities"
)

// CategoryAll is the synthetic filter value matching every category.
const CategoryAll = "all"

// Priority: database > environment > default
type SettingsStore struct {
	settings *settings.Repository
}

func New(settingsRepo *settings.Repository) *SettingsStore {
	return &SettingsStore{settings: settingsRepo}
}

// GetSelectedCategory returns the persisted category filter, or CategoryAll
// when no filter has been chosen. The filter is user state, so there is no
// environment fallback.
func (s *SettingsStore) GetSelectedCategory() string {
	setting, err := s.settings.GetSetting(entities.SettingKeySelectedCategory)
	if err == nil && setting.Value != "" {
		return setting.Value
	}
	return CategoryAll
}

// SetSelectedCategory persists the category filter. Setting it to
// CategoryAll clears the stored filter.
func (s *SettingsStore) SetSelectedCategory(category string) error {
	if category == CategoryAll || category == "" {
		return s.ClearSelectedCategory()
	}
	return s.settings.SetSetting(entities.SettingKeySelectedCategory, category)
}

// ClearSelectedCategory removes the stored filter, reverting to CategoryAll.
func (s *SettingsStore) ClearSelectedCategory() error {
	err := s.settings.DeleteSetting(entities.SettingKeySelectedCategory)
	if err == gorm.ErrRecordNotFound {
		return nil
	}
	return err
}
