/*
Package errors provides semantic error types for the entitydb library.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound                 = errors.New("entity not found")
	    ErrAlreadyExists            = errors.New("entity already exists")
	    ErrInvalidInput             = errors.New("invalid input")
	    ErrConditionFailed          = errors.New("condition check failed")
	    ErrInvalidConditionInput    = errors.New("invalid condition input")
	    ErrInvalidConditionOperator = errors.New("invalid condition operator")
	    ErrDriverFailure            = errors.New("driver failure")
	    ErrEmptyCollection          = errors.New("collection is empty")
	)

Driver failures carry the operation, the statement and the original cause:

	users, err := repo.FindBy(ctx, condition.Eq("status", "active"))
	if err != nil {
	    if errors.IsDriverFailure(err) {
	        // the database rejected the statement; err unwraps to the cause
	    }
	    return nil, err
	}

Condition compiler failures:

	_, err := condition.BuildTree("sql")
	errors.IsInvalidConditionInput(err) // true

	_, err = condition.BuildTree(map[string]any{"xor": []any{}})
	errors.IsInvalidConditionOperator(err) // true

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
