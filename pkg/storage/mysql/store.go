// Package mysql provides a MySQL implementation of profile persistence.
// Profiles are stored as JSON payloads.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"github.com/companion-labs/companion-go/pkg/memory"
)

// Store implements storage.ProfileStore using MySQL as the backend.
type Store struct {
	db *sql.DB
}

// Config contains configuration for creating a MySQL profile store.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// NewStore creates a new MySQL profile store, creating the schema as needed.
func NewStore(cfg *Config) (*Store, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql: failed to connect: %w", err)
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
			user_id    VARCHAR(255) PRIMARY KEY,
			payload    JSON NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return fmt.Errorf("mysql: failed to create table: %w", err)
	}
	return nil
}

// Save writes the profile snapshot for userID, replacing any previous one.
func (s *Store) Save(ctx context.Context, userID string, profile memory.Profile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("mysql: failed to marshal profile: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, payload)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE payload = VALUES(payload)`,
		userID, string(payload))
	if err != nil {
		return fmt.Errorf("mysql: failed to save profile: %w", err)
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
		return memory.Profile{}, false, fmt.Errorf("mysql: failed to load profile: %w", err)
	}

	var profile memory.Profile
	if err := json.Unmarshal([]byte(payload), &profile); err != nil {
		return memory.Profile{}, false, fmt.Errorf("mysql: failed to unmarshal profile: %w", err)
	}
	return profile, true, nil
}

// Delete removes the snapshot for userID.
func (s *Store) Delete(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("mysql: failed to delete profile: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
