// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fingerprintcache

import (
	"fmt"
	"runtime"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const schema = `
CREATE TABLE IF NOT EXISTS fingerprints (
	entity      TEXT PRIMARY KEY,
	hash        BLOB NOT NULL,
	tree        BLOB NOT NULL,
	updated_at  INTEGER NOT NULL
) WITHOUT ROWID;
`

// openPool opens the connection pool. Every connection gets the same
// pragmas and the schema on first use.
func openPool(path string, size int) (*sqlitex.Pool, error) {
	if size <= 0 {
		size = max(runtime.NumCPU(), 4)
	}
	pool, err := sqlitex.NewPool(path, sqlitex.PoolOptions{
		PoolSize:    size,
		PrepareConn: prepareConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return pool, nil
}

func prepareConnection(conn *sqlite.Conn) error {
	// WAL lets the CLI read while a concurrent generate writes.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
