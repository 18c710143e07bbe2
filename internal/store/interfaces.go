package store

import (
	"context"
	"time"

	"github.com/boletapp/gastify-sync/models"
)

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// GroupRepository persists shared-expense groups and their member sets.
// Every mutating method bumps the group's membership version inside the same
// database transaction.
type GroupRepository interface {
	CreateGroup(ctx context.Context, group models.Group) (models.Group, error)
	GetGroup(ctx context.Context, groupID string) (models.Group, error)
	AddMember(ctx context.Context, groupID string, userID int64) error
	// RemoveMember removes the member and deletes the group when the member
	// set becomes empty. It reports whether the group was deleted.
	RemoveMember(ctx context.Context, groupID string, userID int64) (deleted bool, err error)
	TransferOwnership(ctx context.Context, groupID string, newOwnerID int64) error
}

// TransactionRepository persists transactions and their changelog entries.
type TransactionRepository interface {
	GetTransaction(ctx context.Context, transactionID string) (models.Transaction, error)

	// SaveWithEntries commits a transaction mutation and its changelog
	// entries as a single atomic unit. A transaction with Version == 1 is
	// inserted; any other version is an optimistic-locked update expecting
	// the stored row to be at Version-1. Entries whose event id already
	// exists are skipped (at-least-once delivery), not duplicated.
	SaveWithEntries(ctx context.Context, transaction models.Transaction, entries []models.ChangelogEntry) error

	// ListGroupTransactions returns all non-deleted transactions currently
	// affiliated with the group whose date is on or after since. This is the
	// authoritative feed used by reconciliation sync.
	ListGroupTransactions(ctx context.Context, groupID string, since time.Time) ([]models.Transaction, error)

	// ListOwnerGroupTransactions returns the owner's non-deleted transactions
	// affiliated with the group. Used to unaffiliate a departing member's
	// transactions.
	ListOwnerGroupTransactions(ctx context.Context, groupID string, ownerID int64) ([]models.Transaction, error)
}

// ChangelogRepository reads and prunes the per-group append-only changelog.
// Appends happen only through [TransactionRepository.SaveWithEntries] so that
// they share the mutation's database transaction.
type ChangelogRepository interface {
	// QueryEntries returns entries with ts strictly greater than since,
	// ordered ascending by (ts, seq), capped at limit.
	QueryEntries(ctx context.Context, groupID string, since time.Time, limit int) ([]models.ChangelogEntry, error)

	// HasEntriesAfter is the poll/badge existence check: a limit-1 probe on
	// the same ordering key QueryEntries uses.
	HasEntriesAfter(ctx context.Context, groupID string, since time.Time) (bool, error)

	// PruneExpired deletes entries older than before and returns how many
	// were removed.
	PruneExpired(ctx context.Context, before time.Time) (int64, error)
}
