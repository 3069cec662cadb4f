// Package sqlite provides a SQLite implementation of profile persistence.
//
// SQLite is a lightweight, file-based database suitable for local
// development and single-user deployments. Profiles are stored as JSON
// payloads in a TEXT column.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/companion-labs/companion-go/pkg/memory"
)

// Store implements storage.ProfileStore using SQLite as the backend.
type Store struct {
	db *sql.DB
}

// Config contains configuration for creating a SQLite profile store.
type Config struct {
	// DBPath is the path to the SQLite database file.
	DBPath string
}

// NewStore creates a new SQLite profile store, creating the database file
// and schema as needed.
func NewStore(cfg *Config) (*Store, error) {
	if cfg.DBPath == "" {
		return nil, errors.New("sqlite: db path is required")
	}

	dbDir := filepath.Dir(cfg.DBPath)
	if dbDir != "" && dbDir != "." {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("sqlite: failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.createTable(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) createTable() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS profiles (
			user_id    TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return fmt.Errorf("sqlite: failed to create table: %w", err)
	}
	return nil
}

// Save writes the profile snapshot for userID, replacing any previous one.
func (s *Store) Save(ctx context.Context, userID string, profile memory.Profile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("sqlite: failed to marshal profile: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		userID, string(payload))
	if err != nil {
		return fmt.Errorf("sqlite: failed to save profile: %w", err)
	}
	return nil
}

// Load reads the profile snapshot for userID.
func (s *Store) Load(ctx context.Context, userID string) (memory.Profile, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM profiles WHERE user_id = ?`, userID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return memory.Profile{}, false, nil
	}
	if err != nil {
		return memory.Profile{}, false, fmt.Errorf("sqlite: failed to load profile: %w", err)
	}

	var profile memory.Profile
	if err := json.Unmarshal([]byte(payload), &profile); err != nil {
		return memory.Profile{}, false, fmt.Errorf("sqlite: failed to unmarshal profile: %w", err)
	}
	return profile, true, nil
}

// Delete removes the snapshot for userID.
func (s *Store) Delete(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("sqlite: failed to delete profile: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
