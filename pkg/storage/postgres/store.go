// Package postgres provides a PostgreSQL implementation of profile
// persistence. Profiles are stored as JSONB payloads.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/companion-labs/companion-go/pkg/memory"
)

// Store implements storage.ProfileStore using PostgreSQL as the backend.
type Store struct {
	db *sql.DB
}

// Config contains configuration for creating a PostgreSQL profile store.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string

	// SSLMode is the libpq sslmode, defaults to "disable".
	SSLMode string
}

// NewStore creates a new PostgreSQL profile store, creating the schema as
// needed.
func NewStore(cfg *Config) (*Store, error) {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, sslMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: failed to connect: %w", err)
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
			payload    JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("postgres: failed to create table: %w", err)
	}
	return nil
}

// Save writes the profile snapshot for userID, replacing any previous one.
func (s *Store) Save(ctx context.Context, userID string, profile memory.Profile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("postgres: failed to marshal profile: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at`,
		userID, string(payload))
	if err != nil {
		return fmt.Errorf("postgres: failed to save profile: %w", err)
	}
	return nil
}

// Load reads the profile snapshot for userID.
func (s *Store) Load(ctx context.Context, userID string) (memory.Profile, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM profiles WHERE user_id = $1`, userID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return memory.Profile{}, false, nil
	}
	if err != nil {
		return memory.Profile{}, false, fmt.Errorf("postgres: failed to load profile: %w", err)
	}

	var profile memory.Profile
	if err := json.Unmarshal([]byte(payload), &profile); err != nil {
		return memory.Profile{}, false, fmt.Errorf("postgres: failed to unmarshal profile: %w", err)
	}
	return profile, true, nil
}

// Delete removes the snapshot for userID.
func (s *Store) Delete(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete profile: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
