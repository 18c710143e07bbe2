package validators

import (
	"context"

	"github.com/boletapp/gastify-sync/models"
)

// EntryValidator checks changelog entries and snapshots at the changelog
// store boundary. Entries come off the wire as JSON; a replayer must reject
// malformed ones before they reach the cache, because a half-applied replay
// is worse than a failed one.
type EntryValidator struct {
}

func NewEntryValidator() Validator {
	return &EntryValidator{}
}

func (v *EntryValidator) Validate(ctx context.Context, obj any) error {
	switch value := obj.(type) {
	case models.ChangelogEntry:
		return v.validateEntry(ctx, value)
	case *models.ChangelogEntry:
		return v.validateEntry(ctx, *value)

	case models.Snapshot:
		return v.validateSnapshot(ctx, value)
	case *models.Snapshot:
		return v.validateSnapshot(ctx, *value)

	default:
		return ErrUnsupportedType
	}
}

func (v *EntryValidator) validateEntry(ctx context.Context, entry models.ChangelogEntry) error {
	if entry.EventID == "" {
		return ErrMissingEventID
	}
	if entry.GroupID == "" {
		return ErrMissingGroupID
	}
	if !entry.Kind.Valid() {
		return ErrInvalidEntryKind
	}
	if entry.TransactionID == "" {
		return ErrMissingTransactionID
	}
	if entry.TS.IsZero() {
		return ErrMissingTimestamp
	}
	if entry.ActorID <= 0 {
		return ErrInvalidActorID
	}

	// REMOVED entries still carry the last known snapshot, so every kind
	// gets the same snapshot check.
	if entry.Snapshot.TransactionID != entry.TransactionID {
		return ErrSnapshotMismatch
	}

	return v.validateSnapshot(ctx, entry.Snapshot)
}

func (v *EntryValidator) validateSnapshot(_ context.Context, snap models.Snapshot) error {
	if snap.TransactionID == "" {
		return ErrMissingTransactionID
	}
	if snap.OwnerID <= 0 {
		return ErrInvalidOwnerID
	}
	if snap.Currency == "" {
		return ErrMissingCurrency
	}
	if snap.Version < 1 {
		return ErrInvalidVersion
	}

	return nil
}
