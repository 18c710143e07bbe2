package models

import "time"

// EntryKind classifies a changelog entry.
type EntryKind string

const (
	EntryAdded    EntryKind = "ADDED"
	EntryModified EntryKind = "MODIFIED"
	EntryRemoved  EntryKind = "REMOVED"
)

// Valid reports whether the kind is one of the three known values.
func (k EntryKind) Valid() bool {
	switch k {
	case EntryAdded, EntryModified, EntryRemoved:
		return true
	}
	return false
}

// ChangelogEntry is one immutable record in a group's append-only changelog.
// Entries are totally ordered per group by (TS, Seq): TS is the wall-clock
// ordering key, Seq is a per-group monotonic sequence assigned by the storage
// layer that breaks same-instant ties deterministically.
//
// EventID is a deterministic identifier derived from the logical mutation
// (transaction id, post-mutation version, kind, group). Retried writes of the
// same mutation produce the same EventID and are deduplicated on append.
type ChangelogEntry struct {
	EventID       string    `json:"event_id"`
	GroupID       string    `json:"group_id"`
	Kind          EntryKind `json:"kind"`
	TransactionID string    `json:"transaction_id"`
	Snapshot      Snapshot  `json:"snapshot"`
	ActorID       int64     `json:"actor_id"`
	TS            time.Time `json:"ts"`
	Seq           int64     `json:"seq"`
}
