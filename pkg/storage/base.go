// Package storage defines the profile persistence interface and is
// implemented by the sqlite, postgres, and mysql backends.
package storage

import (
	"context"

	"github.com/companion-labs/companion-go/pkg/memory"
)

// ProfileStore persists memory profile snapshots keyed by user ID.
//
// Implementations store the profile as a JSON payload and replace it
// wholesale on save; reconciliation stays in memory.Store, persistence is
// durability only.
type ProfileStore interface {
	// Save writes the profile snapshot for userID, replacing any previous one.
	Save(ctx context.Context, userID string, profile memory.Profile) error

	// Load reads the profile snapshot for userID.
	// The second return value is false when no snapshot exists.
	Load(ctx context.Context, userID string) (memory.Profile, bool, error)

	// Delete removes the snapshot for userID. Deleting a missing snapshot
	// is not an error.
	Delete(ctx context.Context, userID string) error

	// Close closes the store and releases resources.
	Close() error
}
