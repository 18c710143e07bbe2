// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boletapp Labs

// Package adapter provides transport-layer abstractions for communicating
// with the gastify sync server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// service layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrCheckpointExpired] for 410, [ErrUnauthorized] for
// 401).
package adapter

import (
	"context"
	"time"

	"github.com/boletapp/gastify-sync/models"
)

// ServerAdapter defines transport-agnostic communication with the sync
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It should be called immediately
	// after a successful Register or Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates an account and stores the returned bearer token.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates and stores the returned bearer token.
	Login(ctx context.Context, user models.User) (models.User, error)

	CreateGroup(ctx context.Context, name string) (models.Group, error)
	GetGroup(ctx context.Context, groupID string) (models.Group, error)
	JoinGroup(ctx context.Context, groupID string) error
	LeaveGroup(ctx context.Context, groupID string) error

	CreateTransaction(ctx context.Context, draft models.TransactionDraft) (models.Transaction, error)
	UpdateTransaction(ctx context.Context, transactionID string, update models.TransactionUpdate) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID string) error

	// FetchChangelog retrieves one page of a group's changelog strictly
	// after since. Returns a wrapped [ErrCheckpointExpired] when the server
	// refuses the checkpoint as older than its retention window.
	FetchChangelog(ctx context.Context, groupID string, since time.Time) (models.ChangelogResponse, error)

	// CheckPending is the cheap poll: does the group's changelog hold
	// anything after since?
	CheckPending(ctx context.Context, groupID string, since time.Time) (bool, error)

	// FetchReconcileFeed retrieves the authoritative snapshot feed used by
	// full reconciliation.
	FetchReconcileFeed(ctx context.Context, groupID string) (models.ReconcileResponse, error)
}
