// Package testmodels holds example custom entity and repository types. They
// are registered in entitydb's default registry under the "testmodels."
// namespace and serve the package tests and the documentation.
package testmodels
