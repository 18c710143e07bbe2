package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/boletapp/gastify-sync/internal/config"
	"github.com/boletapp/gastify-sync/internal/logger"
)

// NewConnectSQLite opens (creating if needed) the client's local cache
// database and ensures its schema exists.
func NewConnectSQLite(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*DB, error) {
	if err := createLocalDBFileIfNotExists(cfg.CacheDBPath); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating cache database file")
		return nil, fmt.Errorf("error creating cache database file: %w", err)
	}

	conn, err := sql.Open("sqlite3", cfg.CacheDBPath)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to cache DB: %w", err)
	}

	err = conn.PingContext(ctx)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}

	if _, err = conn.ExecContext(ctx, createCacheSchema); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating cache schema")
		return nil, fmt.Errorf("error creating cache schema: %w", err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to cache database successfully")

	db := &DB{
		DB:     conn,
		logger: log,
	}

	return db, nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if dbFile == ":memory:" {
		return nil
	}

	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating cache DB file: %w", err)
		}
		f.Close()
	}

	return nil
}
