/*
Package ddb implements driver.Driver on Amazon DynamoDB.

Select and Query run PartiQL through ExecuteStatement, following NextToken
until the result is exhausted. Row-level operations use the item API on a
numeric "id" partition key:

	Load    GetItem with a consistent read
	Insert  next id from the sequence table, then PutItem guarded by attribute_not_exists(id)
	Update  UpdateItem guarded by attribute_exists(id); a missing row is left alone
	Delete  DeleteItem

Throttling and transient service errors are retried with a linear backoff
(see WithMaxRetries and WithRetryBackoff).

PartiQL reads double-quoted text as an attribute name, so condition values
cannot be inlined. The driver implements driver.PlaceholderRequirer and
repositories over it always bind values as "?" parameters.

Example:

	d, err := ddb.Open(ctx, ddb.ClientConfig{Region: "us-east-1"},
		ddb.WithSequenceTable("app_sequences"))
	if err != nil {
		return err
	}
	users := entitydb.NewEntityManager(d).GetRepository("users")
*/
package ddb
