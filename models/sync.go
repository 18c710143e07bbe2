package models

import "time"

// SyncStatus is the coarse result of a sync run.
type SyncStatus string

const (
	// SyncSuccess means every pending entry was fetched and applied and the
	// checkpoint advanced.
	SyncSuccess SyncStatus = "success"

	// SyncPartialTruncated means more entries existed than the page cap.
	// Applied entries are kept (replay is idempotent) but the checkpoint did
	// not advance; the caller should offer a full reconciliation.
	SyncPartialTruncated SyncStatus = "partial_truncated"

	// SyncFailed means the run aborted with no checkpoint advance. Reason
	// says why.
	SyncFailed SyncStatus = "failure"
)

// FailureReason refines SyncFailed outcomes.
type FailureReason string

const (
	ReasonNone              FailureReason = ""
	ReasonTransient         FailureReason = "transient"
	ReasonCorruptEntry      FailureReason = "corrupt_entry"
	ReasonCheckpointExpired FailureReason = "checkpoint_expired"
)

// SyncOutcome is returned by every incremental or full sync run.
type SyncOutcome struct {
	Status  SyncStatus    `json:"status"`
	Reason  FailureReason `json:"reason,omitempty"`
	Applied int           `json:"applied"`

	// Checkpoint is the checkpoint value after the run. Unchanged unless
	// Status is SyncSuccess.
	Checkpoint time.Time `json:"checkpoint"`
}

// SyncState tracks where a (user, group) pair sits in the sync lifecycle.
type SyncState string

const (
	StateNeverSynced SyncState = "NEVER_SYNCED"
	StateSynced      SyncState = "SYNCED"
	StateStale       SyncState = "STALE"
	StateReconciling SyncState = "RECONCILING"
)

// ChangelogResponse is the wire shape of a changelog page.
//
// ServerTime is the server-clock instant captured before the page query; a
// client that applies the page adopts it as the new checkpoint. Client clocks
// can be arbitrarily skewed, so a checkpoint must come from the same clock
// that stamps the entries it is compared against.
//
// Truncated reports that entries beyond the page cap were left unserved. The
// server decides this; clients cannot infer it from the page length alone.
type ChangelogResponse struct {
	Entries    []ChangelogEntry `json:"entries"`
	Length     int              `json:"length"`
	Truncated  bool             `json:"truncated"`
	ServerTime time.Time        `json:"server_time"`
}

// PendingResponse is the wire shape of the poll/badge existence check.
type PendingResponse struct {
	Pending bool `json:"pending"`
}

// ReconcileResponse is the wire shape of the reconciliation feed.
// ServerTime is the instant the feed was taken at; a client that applies the
// feed adopts it as the new checkpoint.
type ReconcileResponse struct {
	Snapshots  []Snapshot `json:"snapshots"`
	Length     int        `json:"length"`
	ServerTime time.Time  `json:"server_time"`
}
