/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqldb

import (
	"context"

	_ "modernc.org/sqlite"
)

// SQLiteDriverName is the database/sql name registered by modernc.org/sqlite.
const SQLiteDriverName = "sqlite"

// OpenSQLite opens the SQLite database file at path. ":memory:" opens a
// private in-memory database.
func OpenSQLite(ctx context.Context, path string, opts ...Option) (*DB, error) {
	return Open(ctx, SQLiteDriverName, path, opts...)
}
