package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")

	ErrMissingEventID       = errors.New("changelog entry has no event id")
	ErrMissingGroupID       = errors.New("changelog entry has no group id")
	ErrInvalidEntryKind     = errors.New("changelog entry kind is invalid")
	ErrMissingTransactionID = errors.New("transaction id is missing")
	ErrMissingTimestamp     = errors.New("changelog entry has no timestamp")
	ErrInvalidActorID       = errors.New("changelog entry actor id is invalid")
	ErrSnapshotMismatch     = errors.New("snapshot transaction id does not match entry")

	ErrInvalidOwnerID  = errors.New("snapshot owner id is invalid")
	ErrMissingCurrency = errors.New("snapshot currency is missing")
	ErrInvalidVersion  = errors.New("snapshot version is invalid")
)
