package store

import (
	"context"
	"time"

	"github.com/boletapp/gastify-sync/models"
)

// LocalSyncRepository is the device-local projection of group state: one
// cached transaction set and one checkpoint per group.
//
// The sync engine mutates a group's projection in memory and persists it with
// a single WriteCache call, so a crash mid-sync leaves the previous cache
// intact. The checkpoint is written separately, and only after the cache
// write succeeded.
type LocalSyncRepository interface {
	// ReadCache returns the cached transactions of the group. An unknown
	// group yields an empty slice, not an error.
	ReadCache(ctx context.Context, groupID string) ([]models.Transaction, error)

	// WriteCache atomically replaces the group's cached transaction set.
	WriteCache(ctx context.Context, groupID string, transactions []models.Transaction) error

	// ReadCheckpoint returns the group's checkpoint. A group that never
	// completed a sync yields the zero time.
	ReadCheckpoint(ctx context.Context, groupID string) (time.Time, error)

	// WriteCheckpoint records the instant up to which the cache is known to
	// reflect the server's changelog.
	WriteCheckpoint(ctx context.Context, groupID string, checkpoint time.Time) error

	// DropGroup removes the group's cache and checkpoint, e.g. after the
	// user leaves the group.
	DropGroup(ctx context.Context, groupID string) error
}
