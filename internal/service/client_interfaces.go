package service

import (
	"context"
	"time"

	"github.com/boletapp/gastify-sync/models"
)

// ClientSyncService drives a device's view of its groups: incremental
// changelog replay, the cheap pending poll, and full reconciliation.
//
// All three sync paths are all-or-nothing with respect to the checkpoint: it
// only ever advances after the corresponding cache write succeeded, so a
// failed or interrupted run is indistinguishable from one that never started.
type ClientSyncService interface {
	// SyncIncremental fetches the changelog after the group's checkpoint and
	// replays it onto the local cache. The returned outcome distinguishes
	// full success, a truncated page (applied, checkpoint held back), and
	// failure by reason. err is non-nil exactly when the outcome reports
	// failure, carrying the underlying cause.
	SyncIncremental(ctx context.Context, groupID string) (models.SyncOutcome, error)

	// SyncFull replaces the group's cache with the server's reconciliation
	// feed and adopts the feed instant as the new checkpoint. It is the
	// recovery path for expired checkpoints and truncated syncs.
	SyncFull(ctx context.Context, groupID string) (models.SyncOutcome, error)

	// PollPending reports whether the group's changelog holds entries after
	// the local checkpoint. Cheap enough to call on a timer.
	PollPending(ctx context.Context, groupID string) (bool, error)

	// State classifies the group's sync lifecycle position from local
	// knowledge plus one pending probe.
	State(ctx context.Context, groupID string) (models.SyncState, error)
}

// SyncGate rations user-triggered syncs of a group. Repeated rapid attempts
// climb an escalating wait ladder; a quiet period resets it.
type SyncGate interface {
	// Acquire reports whether a sync may start now. When refused, the first
	// return value is how long the caller must still wait.
	Acquire(groupID string, now time.Time) (time.Duration, bool)
}

// ClientPollJob periodically polls every tracked group and reports which ones
// have pending entries. It is idle until Start is called.
type ClientPollJob interface {
	Start(ctx context.Context, groupIDs []string, interval time.Duration)
	Stop()
}
