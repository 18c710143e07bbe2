// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boletapp Labs

package store

const (
	createCacheSchema = `
		CREATE TABLE IF NOT EXISTS cached_transactions (
			group_id   TEXT    NOT NULL,
			id         TEXT    NOT NULL,
			owner_id   INTEGER NOT NULL,
			amount     INTEGER NOT NULL,
			currency   TEXT    NOT NULL,
			date       TIMESTAMP NOT NULL,
			category   TEXT    NOT NULL DEFAULT '',
			note       TEXT    NOT NULL DEFAULT '',
			deleted    BOOLEAN NOT NULL DEFAULT false,
			version    INTEGER NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			PRIMARY KEY (group_id, id)
		);

		CREATE TABLE IF NOT EXISTS sync_checkpoints (
			group_id   TEXT PRIMARY KEY,
			checkpoint TIMESTAMP NOT NULL
		);`

	readCachedTransactions = `
		SELECT
			id,
			owner_id,
			amount,
			currency,
			date,
			category,
			note,
			deleted,
			version,
			updated_at
		FROM cached_transactions
		WHERE group_id = $1
		ORDER BY date, id;`

	clearCachedTransactions = `
		DELETE FROM cached_transactions
		WHERE group_id = $1;`

	insertCachedTransaction = `
		INSERT INTO cached_transactions (
			group_id,
			id,
			owner_id,
			amount,
			currency,
			date,
			category,
			note,
			deleted,
			version,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`

	readSyncCheckpoint = `
		SELECT checkpoint
		FROM sync_checkpoints
		WHERE group_id = $1;`

	upsertSyncCheckpoint = `
		INSERT INTO sync_checkpoints (group_id, checkpoint)
		VALUES ($1, $2)
		ON CONFLICT (group_id) DO UPDATE SET checkpoint = excluded.checkpoint;`

	deleteSyncCheckpoint = `
		DELETE FROM sync_checkpoints
		WHERE group_id = $1;`
)
