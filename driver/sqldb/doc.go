/*
Package sqldb provides a database/sql implementation of the driver.Driver
interface.

SQLite (modernc.org/sqlite, pure Go) and MySQL (github.com/go-sql-driver/mysql)
are registered by this package:

	db, err := sqldb.OpenSQLite(ctx, "./app.sqlite3", sqldb.WithLogger(logger))
	db, err := sqldb.OpenMySQL(ctx, "user:pass@tcp(localhost:3306)/app")

Any other registered database/sql driver can be used through Open or New;
the placeholder style is derived from the driver name.

Insert, Update, Load and Delete always bind values as parameters. Select,
Query and the Get* helpers run the statement they are given with the
arguments they are given.
*/
package sqldb
