package store

import (
	"context"
	"fmt"

	"github.com/boletapp/gastify-sync/internal/config"
	"github.com/boletapp/gastify-sync/internal/logger"
)

// ClientStorages groups the client-side storage repositories into a single
// value that can be passed around the client service layer.
type ClientStorages struct {
	// SyncRepository is the SQLite-backed per-group projection of synced
	// transactions and checkpoints.
	SyncRepository LocalSyncRepository
}

// NewClientStorages initialises the client storage layer: opens (creating if
// necessary) the SQLite cache file named by cfg.CacheDBPath, ensures the
// schema, and wires a fresh [LocalSyncRepository].
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating client storages...")

	db, err := NewConnectSQLite(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	return &ClientStorages{
		SyncRepository: NewLocalSyncRepository(db, logger),
	}, nil
}
