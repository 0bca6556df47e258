/*
Package driver defines the storage capability the entitydb core runs on.

The Driver interface covers raw statements and row-level CRUD:

	type Driver interface {
	    Select(ctx context.Context, query string, args ...any) ([]*record.Record, error)
	    Query(ctx context.Context, query string, args ...any) error
	    GetRow(ctx context.Context, query string, args ...any) (*record.Record, error)
	    GetColumn(ctx context.Context, query string, args ...any) ([]any, error)
	    GetCell(ctx context.Context, query string, args ...any) (any, error)
	    Load(ctx context.Context, table string, id int64) (*record.Record, error)
	    Insert(ctx context.Context, table string, data *record.Record) (int64, error)
	    Update(ctx context.Context, table string, id int64, data *record.Record) error
	    Delete(ctx context.Context, table string, id int64) error
	}

Implementations:
  - sqldb: database/sql backed driver for SQLite and MySQL
  - ddb: DynamoDB driver speaking PartiQL plus the item API
  - mock: In-memory driver for testing

Keyed result sets are requested with the ARRAY_KEY column alias and built
with KeyRows:

	rows, _ := d.Select(ctx, "SELECT email AS ARRAY_KEY, name FROM users")
	byEmail := driver.KeyRows(rows)
*/
package driver
