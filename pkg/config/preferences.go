package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultHistoryPeriodDays is the history window used when none is configured.
const DefaultHistoryPeriodDays = 7

// FixedReminder is a daily reminder at a fixed local time.
type FixedReminder struct {
	ID     string `toml:"id" json:"id" yaml:"id"`
	Hour   int    `toml:"hour" json:"hour" yaml:"hour"`
	Minute int    `toml:"minute" json:"minute" yaml:"minute"`
}

// Preferences holds user-editable settings persisted as TOML.
type Preferences struct {
	NotificationsEnabled bool            `toml:"notifications_enabled" json:"notifications_enabled" yaml:"notifications_enabled"`
	GoalRemindersEnabled bool            `toml:"goal_reminders_enabled" json:"goal_reminders_enabled" yaml:"goal_reminders_enabled"`
	HistoryPeriodDays    int             `toml:"history_period_days" json:"history_period_days" yaml:"history_period_days"`
	FixedReminders       []FixedReminder `toml:"fixed_reminders" json:"fixed_reminders" yaml:"fixed_reminders"`
}

// DefaultPreferences returns the preferences written on first run.
func DefaultPreferences() Preferences {
	return Preferences{
		NotificationsEnabled: true,
		GoalRemindersEnabled: true,
		HistoryPeriodDays:    DefaultHistoryPeriodDays,
		FixedReminders: []FixedReminder{
			{ID: "fixed_morning_0700", Hour: 7, Minute: 0},
			{ID: "fixed_evening_2100", Hour: 21, Minute: 0},
		},
	}
}

// LoadOrCreatePreferences reads the preferences file, writing defaults when it
// does not exist yet.
func LoadOrCreatePreferences(path string) (Preferences, error) {
	prefs := DefaultPreferences()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := SavePreferences(path, prefs); err != nil {
			return prefs, err
		}
		return prefs, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return prefs, err
	}
	if err := toml.Unmarshal(data, &prefs); err != nil {
		return prefs, fmt.Errorf("parse preferences %s: %w", path, err)
	}
	if prefs.HistoryPeriodDays <= 0 {
		prefs.HistoryPeriodDays = DefaultHistoryPeriodDays
	}
	return prefs, nil
}

// SavePreferences writes preferences to path, creating the parent directory.
func SavePreferences(path string, prefs Preferences) error {
	data, err := toml.Marshal(prefs)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// PreferencesStore serializes reads and updates of one preferences file.
type PreferencesStore struct {
	mu   sync.Mutex
	path string
}

// NewPreferencesStore creates a store backed by path.
func NewPreferencesStore(path string) *PreferencesStore {
	return &PreferencesStore{path: path}
}

// Path returns the backing file.
func (s *PreferencesStore) Path() string {
	return s.path
}

// Load returns the current preferences, creating the file on first use.
func (s *PreferencesStore) Load() (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return LoadOrCreatePreferences(s.path)
}

// Update applies fn to the stored preferences and persists the result.
func (s *PreferencesStore) Update(fn func(*Preferences)) (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := LoadOrCreatePreferences(s.path)
	if err != nil {
		return prefs, err
	}
	fn(&prefs)
	if prefs.HistoryPeriodDays <= 0 {
		prefs.HistoryPeriodDays = DefaultHistoryPeriodDays
	}
	if err := SavePreferences(s.path, prefs); err != nil {
		return prefs, fmt.Errorf("save preferences: %w", err)
	}
	return prefs, nil
}
