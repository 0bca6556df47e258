/*
Package entitydb is a small table-oriented object mapper over a pluggable
driver.

Rows are loaded into entities, entities are gathered in collections, and
repositories turn condition trees into SQL:

  - Entity: one row bound to a table and a driver, with dynamic field access
  - Collection: ordered, key-preserving container of Collectible elements
  - Repository: find, create and delete entities of one entity name
  - EntityManager: one memoized repository per entity name over a shared driver
  - Registry: explicit factories for custom entity and repository types

Drivers live under driver/: sqldb (SQLite and MySQL through database/sql),
ddb (DynamoDB PartiQL) and mock (in-memory, for tests).

Basic Usage:

	db, _ := sqldb.OpenSQLite(ctx, "app.sqlite3")
	em := entitydb.NewEntityManager(db)

	users := em.GetRepository("users")
	user, _ := users.FindOneByID(ctx, 7)
	user.Base().Set("name", "alice")
	_ = user.Base().Save(ctx)

	active, _ := users.FindBy(ctx, condition.Eq("status", "active"))
	fmt.Print(active.ToTable(nil))

Custom types are registered under qualified names:

	entitydb.RegisterEntity(entitydb.EntityTypeName("app.", "users"), NewUserEntity)
	entitydb.RegisterRepository(entitydb.RepositoryTypeName("app.", "users"), NewUserRepository)

	em := entitydb.NewEntityManager(db, entitydb.WithNamespace("app."))
	em.SetEntitiesNamespace("app.")
*/
package entitydb
