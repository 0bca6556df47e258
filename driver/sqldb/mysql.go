/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// MySQLDriverName is the database/sql name registered by go-sql-driver/mysql.
const MySQLDriverName = "mysql"

// OpenMySQL opens a MySQL database from a DSN such as
// "user:pass@tcp(localhost:3306)/app". Time columns are left as text so
// rows read the same as from SQLite.
func OpenMySQL(ctx context.Context, dsn string, opts ...Option) (*DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid mysql dsn: %w", err)
	}
	cfg.ParseTime = false

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create mysql connector: %w", err)
	}

	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to mysql database %s: %w", cfg.DBName, err)
	}

	d := New(db, MySQLDriverName, opts...)
	d.logger.Infow("database opened", "driver", MySQLDriverName, "addr", cfg.Addr, "db", cfg.DBName)
	return d, nil
}
