package store

import (
	"github.com/boletapp/gastify-sync/internal/logger"
)

// Storages aggregates every server-side repository over one shared database
// connection.
type Storages struct {
	UserRepository
	GroupRepository
	TransactionRepository
	ChangelogRepository
}

// NewStorages wires the repositories to the given database connection.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:        NewUserRepository(db, log),
		GroupRepository:       NewGroupRepository(db, log),
		TransactionRepository: NewTransactionRepository(db, log),
		ChangelogRepository:   NewChangelogRepository(db, log),
	}
}
