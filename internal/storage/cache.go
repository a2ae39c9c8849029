// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/deerbank-tui/internal/model"
)

// =============================================================================
// TRANSACTION CACHE
// =============================================================================

// TxCache is a local SQLite cache of transaction history. The dashboard
// paints the cached rows immediately on open while the network fetch is in
// flight; a completed fetch replaces the account's rows wholesale. The
// cache is advisory only and is dropped entirely on logout.
type TxCache struct {
	db      *sql.DB
	maxRows int
}

const txCacheSchema = `
CREATE TABLE IF NOT EXISTS transactions (
	account_no      TEXT NOT NULL,
	tran_id         INTEGER NOT NULL,
	tran_no         TEXT NOT NULL,
	tran_datetime   TEXT NOT NULL,
	transfer_type   TEXT NOT NULL,
	amount          REAL NOT NULL,
	debit           TEXT,
	credit          TEXT,
	description     TEXT NOT NULL DEFAULT '',
	transfer_acc_id INTEGER,
	received_acc_id INTEGER,
	cached_at       INTEGER NOT NULL,
	PRIMARY KEY (account_no, tran_id)
);

CREATE INDEX IF NOT EXISTS idx_transactions_account
	ON transactions(account_no, tran_datetime DESC);
`

// OpenTxCache opens (creating if needed) the transaction cache in baseDir.
// maxRows caps the rows kept per account; 0 means unlimited.
func OpenTxCache(baseDir string, maxRows int) (*TxCache, error) {
	db, err := sql.Open("sqlite", filepath.Join(baseDir, "cache.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open transaction cache: %w", err)
	}

	if _, err := db.Exec(txCacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	return &TxCache{db: db, maxRows: maxRows}, nil
}

// Put replaces the cached history for an account.
func (c *TxCache) Put(accountNo string, txs []model.TransactionHistory) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM transactions WHERE account_no = ?", accountNo); err != nil {
		return err
	}

	now := time.Now().Unix()
	stmt, err := tx.Prepare(`
		INSERT INTO transactions
			(account_no, tran_id, tran_no, tran_datetime, transfer_type,
			 amount, debit, credit, description, transfer_acc_id,
			 received_acc_id, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range txs {
		_, err := stmt.Exec(accountNo, t.TranID, t.TranNo, t.TranDatetime,
			string(t.TransferType), t.Amount, t.Debit, t.Credit,
			t.Description, t.TransferAccID, t.ReceivedAccID, now)
		if err != nil {
			return err
		}
	}

	if c.maxRows > 0 {
		_, err := tx.Exec(`
			DELETE FROM transactions
			WHERE account_no = ? AND tran_id NOT IN (
				SELECT tran_id FROM transactions
				WHERE account_no = ?
				ORDER BY tran_datetime DESC
				LIMIT ?
			)
		`, accountNo, accountNo, c.maxRows)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Get returns the cached history for an account, newest first.
// limit of 0 returns everything cached.
func (c *TxCache) Get(accountNo string, limit int) ([]model.TransactionHistory, error) {
	query := `
		SELECT tran_id, tran_no, tran_datetime, transfer_type, amount,
		       debit, credit, description, transfer_acc_id, received_acc_id
		FROM transactions
		WHERE account_no = ?
		ORDER BY tran_datetime DESC
	`
	args := []interface{}{accountNo}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []model.TransactionHistory
	for rows.Next() {
		var t model.TransactionHistory
		var transferType string
		if err := rows.Scan(&t.TranID, &t.TranNo, &t.TranDatetime,
			&transferType, &t.Amount, &t.Debit, &t.Credit,
			&t.Description, &t.TransferAccID, &t.ReceivedAccID); err != nil {
			return nil, err
		}
		t.TransferType = model.TransferType(transferType)
		txs = append(txs, t)
	}

	return txs, rows.Err()
}

// CacheStats summarizes cache contents for the CLI.
type CacheStats struct {
	Accounts int
	Rows     int
	// OldestAt is the unix time of the oldest cached row, 0 when empty.
	OldestAt int64
}

// Stats reports how much the cache currently holds.
func (c *TxCache) Stats() (CacheStats, error) {
	var stats CacheStats
	row := c.db.QueryRow(`
		SELECT COUNT(DISTINCT account_no), COUNT(*), COALESCE(MIN(cached_at), 0)
		FROM transactions
	`)
	if err := row.Scan(&stats.Accounts, &stats.Rows, &stats.OldestAt); err != nil {
		return CacheStats{}, err
	}
	return stats, nil
}

// Clear drops every cached row. Called on logout and forced expiry so no
// account data outlives the session.
func (c *TxCache) Clear() error {
	_, err := c.db.Exec("DELETE FROM transactions")
	return err
}

// Close releases the underlying database handle.
func (c *TxCache) Close() error {
	return c.db.Close()
}
