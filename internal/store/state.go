package store

import (
	"encoding/json"
	"fmt"

	"github.com/echosense-labs/echosense/internal/podcast"
)

// LoadProfile hydrates the user profile, falling back to the default
// profile on a fresh installation.
func (db *DB) LoadProfile() (podcast.UserProfile, error) {
	var p podcast.UserProfile
	ok, err := db.loadJSON(BucketProfile, &p)
	if err != nil {
		return podcast.UserProfile{}, fmt.Errorf("loading profile: %w", err)
	}
	if !ok {
		return podcast.DefaultUserProfile(), nil
	}
	return p, nil
}

// SaveProfile persists the user profile.
func (db *DB) SaveProfile(p podcast.UserProfile) error {
	return db.saveJSON(BucketProfile, p)
}

// ClearProfile resets the profile to the installation default.
func (db *DB) ClearProfile() error {
	return db.Remove(BucketProfile)
}

// LoadSettings hydrates user settings, falling back to defaults.
func (db *DB) LoadSettings() (podcast.UserSettings, error) {
	var s podcast.UserSettings
	ok, err := db.loadJSON(BucketSettings, &s)
	if err != nil {
		return podcast.UserSettings{}, fmt.Errorf("loading settings: %w", err)
	}
	if !ok {
		return podcast.DefaultSettings(), nil
	}
	return s, nil
}

// SaveSettings persists user settings.
func (db *DB) SaveSettings(s podcast.UserSettings) error {
	return db.saveJSON(BucketSettings, s)
}

// LoadThresholds hydrates the legacy absolute-mode thresholds.
func (db *DB) LoadThresholds() (podcast.ThresholdSettings, error) {
	var t podcast.ThresholdSettings
	ok, err := db.loadJSON(BucketThresholds, &t)
	if err != nil {
		return podcast.ThresholdSettings{}, fmt.Errorf("loading thresholds: %w", err)
	}
	if !ok {
		return podcast.DefaultThresholds(), nil
	}
	return t, nil
}

// SaveThresholds persists the legacy absolute-mode thresholds.
func (db *DB) SaveThresholds(t podcast.ThresholdSettings) error {
	return db.saveJSON(BucketThresholds, t)
}

// LoadHistory returns the append-only run history, oldest first.
func (db *DB) LoadHistory() ([]podcast.AnalysisHistory, error) {
	var h []podcast.AnalysisHistory
	ok, err := db.loadJSON(BucketHistory, &h)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return h, nil
}

// AppendHistory appends one completed-run record to the history bucket.
// Writes are serialized by the orchestrator, so load-modify-save is safe.
func (db *DB) AppendHistory(entry podcast.AnalysisHistory) error {
	history, err := db.LoadHistory()
	if err != nil {
		return err
	}
	history = append(history, entry)
	return db.saveJSON(BucketHistory, history)
}

// ClearHistory deletes all run records.
func (db *DB) ClearHistory() error {
	return db.Remove(BucketHistory)
}

// LoadCaseOverrides returns user-supplied case corpora keyed by domain,
// or an empty map when none are configured.
func (db *DB) LoadCaseOverrides() (map[podcast.Domain][]podcast.ReferenceCase, error) {
	overrides := make(map[podcast.Domain][]podcast.ReferenceCase)
	if _, err := db.loadJSON(BucketCaseOverrides, &overrides); err != nil {
		return nil, fmt.Errorf("loading case overrides: %w", err)
	}
	return overrides, nil
}

func (db *DB) loadJSON(key string, out any) (bool, error) {
	raw, ok, err := db.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decoding bucket %s: %w", key, err)
	}
	return true, nil
}

func (db *DB) saveJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding bucket %s: %w", key, err)
	}
	return db.Set(key, raw)
}
