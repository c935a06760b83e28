package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fantrack/fantrack/internal/config"
	"github.com/fantrack/fantrack/internal/tracker"
	_ "modernc.org/sqlite"
)

// CurrentSchemaVersion is the latest schema version.
// Bump this when adding migrations.
const CurrentSchemaVersion = 1

// Persisted state keys. Each key maps to one JSON document.
const (
	keyTrackers = "trackers"
	keySettings = "settings"
)

// Store persists application state as JSON documents in SQLite.
// All read and write failures are soft: loads fall back to defaults and
// saves log the error and continue, so a broken or missing store never
// takes down a session. A nil *Store behaves like an empty store.
type Store struct {
	db *sql.DB
}

// Init opens the SQLite database at baseDir/fantrack.db, creating the
// directory and running migrations as needed. The baseDir parameter
// allows tests to use t.TempDir() instead of ~/.fantrack.
func Init(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	_ = os.Chmod(baseDir, 0700)

	// Create exports subdirectory for backup files
	exportsDir := filepath.Join(baseDir, "exports")
	if err := os.MkdirAll(exportsDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create exports directory: %w", err)
	}
	_ = os.Chmod(exportsDir, 0700)

	// Pragmas in the connection string apply to all pooled connections
	dbPath := filepath.Join(baseDir, "fantrack.db")
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := verifyWALMode(db); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	_ = os.Chmod(dbPath, 0600)

	return &Store{db: db}, nil
}

// ConfigurePool applies connection pool settings from config.
// Only sets limits if explicitly configured (non-zero values).
func (s *Store) ConfigurePool(cfg *config.Config) {
	if s == nil || cfg == nil {
		return
	}
	if cfg.DBMaxOpenConns > 0 {
		s.db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns > 0 {
		s.db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// LoadTrackers returns the persisted tracker collection, or an empty
// collection when nothing is stored or the stored document is unreadable.
// Duplicate habit dates from imported payloads are dropped on load.
func (s *Store) LoadTrackers() []tracker.Tracker {
	var list []tracker.Tracker
	if !s.load(keyTrackers, &list) {
		return nil
	}
	for i := range list {
		for j := range list[i].Tasks {
			list[i].Tasks[j].CompletedDates = tracker.DedupeDates(list[i].Tasks[j].CompletedDates)
		}
	}
	return list
}

// SaveTrackers persists the full tracker collection. Errors are logged
// and swallowed; the in-memory state remains authoritative.
func (s *Store) SaveTrackers(list []tracker.Tracker) {
	if list == nil {
		list = []tracker.Tracker{}
	}
	s.save(keyTrackers, list)
}

// LoadSettings returns the persisted settings, or the defaults when
// nothing is stored or the stored document is unreadable.
func (s *Store) LoadSettings() tracker.AppSettings {
	settings := tracker.DefaultSettings()
	if !s.load(keySettings, &settings) {
		return tracker.DefaultSettings()
	}
	if !tracker.ValidLanguage(settings.Language) {
		settings.Language = tracker.DefaultSettings().Language
	}
	return settings
}

// SaveSettings persists the settings document. Errors are logged and
// swallowed.
func (s *Store) SaveSettings(settings tracker.AppSettings) {
	s.save(keySettings, settings)
}

// load reads and decodes the JSON document under key into into.
// Returns false when the key is absent or on any read/decode error.
func (s *Store) load(key string, into any) bool {
	if s == nil || s.db == nil {
		return false
	}
	var value string
	err := s.db.QueryRow("SELECT value FROM state WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		log.Printf("store: load %q failed: %v", key, err)
		return false
	}
	if err := json.Unmarshal([]byte(value), into); err != nil {
		log.Printf("store: decode %q failed: %v", key, err)
		return false
	}
	return true
}

// save encodes v as JSON and upserts it under key.
func (s *Store) save(key string, v any) {
	if s == nil || s.db == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("store: encode %q failed: %v", key, err)
		return
	}
	_, err = s.db.Exec(`
		INSERT INTO state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, string(data))
	if err != nil {
		log.Printf("store: save %q failed: %v", key, err)
	}
}

// migrate applies schema migrations based on user_version.
func migrate(db *sql.DB) error {
	version, err := GetUserVersion(db)
	if err != nil {
		return err
	}

	// Migration 0 -> 1: Initial schema (v1)
	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS state (
		  key   TEXT PRIMARY KEY,
		  value TEXT NOT NULL
		);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if err := SetUserVersion(db, 1); err != nil {
			return err
		}
	}

	// Future migrations go here:
	// if version < 2 { ... }

	return nil
}

// verifyWALMode checks that WAL mode is active (set via connection string).
func verifyWALMode(db *sql.DB) error {
	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode); err != nil {
		return fmt.Errorf("failed to verify journal mode: %w", err)
	}
	if journalMode != "wal" {
		return fmt.Errorf("expected WAL mode, got %s", journalMode)
	}
	return nil
}

// GetUserVersion returns the current schema version (user_version pragma).
func GetUserVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

// SetUserVersion sets the schema version (user_version pragma).
func SetUserVersion(db *sql.DB, version int) error {
	_, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", version))
	if err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}
