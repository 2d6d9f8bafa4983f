package store

import (
	"database/sql"
	"time"
)

// Bucket keys, one logical key per persisted data set.
const (
	BucketProfile       = "user_profile"
	BucketSettings      = "user_settings"
	BucketHistory       = "analysis_history"
	BucketCaseOverrides = "case_overrides"
	BucketThresholds    = "threshold_settings"
)

// Get returns the value stored under key. The second return reports
// whether the key was present.
func (db *DB) Get(key string) ([]byte, bool, error) {
	var value []byte
	row := db.conn.QueryRow("SELECT value FROM buckets WHERE name = ?", key)
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (db *DB) Set(key string, value []byte) error {
	_, err := db.conn.Exec(
		`INSERT INTO buckets (name, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// Remove deletes key. Removing an absent key is not an error.
func (db *DB) Remove(key string) error {
	_, err := db.conn.Exec("DELETE FROM buckets WHERE name = ?", key)
	return err
}
