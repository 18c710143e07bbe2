package service

import (
	"context"
	"time"

	"github.com/boletapp/gastify-sync/models"
)

// AuthService handles account registration, credential checks, and JWT
// lifecycle.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// GroupService manages shared-expense groups and their membership. Leaving a
// group unaffiliates the departing member's transactions, emitting REMOVED
// entries so the remaining members' caches converge.
type GroupService interface {
	CreateGroup(ctx context.Context, actorID int64, name string) (models.Group, error)
	GetGroup(ctx context.Context, actorID int64, groupID string) (models.Group, error)
	JoinGroup(ctx context.Context, actorID int64, groupID string) error
	LeaveGroup(ctx context.Context, actorID int64, groupID string) error
}

// TransactionService owns the mutation path. Every mutating call persists the
// transaction and its changelog entries in one atomic unit.
type TransactionService interface {
	CreateTransaction(ctx context.Context, actorID int64, draft models.TransactionDraft) (models.Transaction, error)
	UpdateTransaction(ctx context.Context, actorID int64, transactionID string, update models.TransactionUpdate) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, actorID int64, transactionID string) error
	GetTransaction(ctx context.Context, actorID int64, transactionID string) (models.Transaction, error)
}

// ChangelogService serves the read side of the protocol: incremental pages,
// the poll existence probe, and the reconciliation feed.
type ChangelogService interface {
	// QueryEntries returns one page of the group's changelog after since,
	// capped at the configured page limit. A checkpoint older than the
	// retention window yields ErrCheckpointTooOld; the zero time (never
	// synced) is exempt.
	QueryEntries(ctx context.Context, actorID int64, groupID string, since time.Time) (models.ChangelogResponse, error)

	// HasPending is the cheap poll/badge check.
	HasPending(ctx context.Context, actorID int64, groupID string, since time.Time) (bool, error)

	// ReconcileFeed returns the authoritative snapshots of every live group
	// transaction within the lookback window. The response carries the server
	// instant the feed was taken at.
	ReconcileFeed(ctx context.Context, actorID int64, groupID string) (models.ReconcileResponse, error)
}
