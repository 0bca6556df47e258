/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrAlreadyExists is returned when attempting to create an entity that already exists
	ErrAlreadyExists = errors.New("entity already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConditionFailed is returned when a conditional write fails
	ErrConditionFailed = errors.New("condition check failed")

	// ErrInvalidConditionInput is returned when the condition builder receives something that is not a condition tree
	ErrInvalidConditionInput = errors.New("invalid condition input")

	// ErrInvalidConditionOperator is returned when a condition tree nests under a key that is not "and" or "or"
	ErrInvalidConditionOperator = errors.New("invalid condition operator")

	// ErrDriverFailure is returned when the underlying database driver fails
	ErrDriverFailure = errors.New("driver failure")

	// ErrEmptyCollection is returned when reading the first element of an empty collection
	ErrEmptyCollection = errors.New("collection is empty")
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Type string
	Key  string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with key %q already exists", e.Type, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConditionFailedError represents a failed conditional operation
type ConditionFailedError struct {
	Operation string
	Condition string
}

func (e *ConditionFailedError) Error() string {
	return fmt.Sprintf("condition check failed for %s operation: %s", e.Operation, e.Condition)
}

func (e *ConditionFailedError) Is(target error) bool {
	return target == ErrConditionFailed
}

// InvalidConditionInputError is returned by the condition builder when its
// argument is not a mapping.
type InvalidConditionInputError struct {
	Got string
}

func (e *InvalidConditionInputError) Error() string {
	return fmt.Sprintf("condition builder expects a mapping as input, got %s", e.Got)
}

func (e *InvalidConditionInputError) Is(target error) bool {
	return target == ErrInvalidConditionInput
}

// InvalidConditionOperatorError names the unexpected logic delimiter.
type InvalidConditionOperatorError struct {
	Operator string
}

func (e *InvalidConditionOperatorError) Error() string {
	return fmt.Sprintf(`condition logic delimiter expected to be "or" or "and", got %s`, e.Operator)
}

func (e *InvalidConditionOperatorError) Is(target error) bool {
	return target == ErrInvalidConditionOperator
}

// DriverFailureError wraps a low-level database error together with the
// operation and statement that caused it.
type DriverFailureError struct {
	Op    string
	Query string
	Err   error
}

func (e *DriverFailureError) Error() string {
	if e.Query != "" {
		return fmt.Sprintf("driver %s failed for %q: %v", e.Op, e.Query, e.Err)
	}
	return fmt.Sprintf("driver %s failed: %v", e.Op, e.Err)
}

func (e *DriverFailureError) Unwrap() error {
	return e.Err
}

func (e *DriverFailureError) Is(target error) bool {
	return target == ErrDriverFailure
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(entityType, key string) error {
	return &AlreadyExistsError{Type: entityType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewConditionFailedError creates a new ConditionFailedError
func NewConditionFailedError(operation, condition string) error {
	return &ConditionFailedError{Operation: operation, Condition: condition}
}

// NewInvalidConditionInputError creates a new InvalidConditionInputError for the received value
func NewInvalidConditionInputError(got any) error {
	return &InvalidConditionInputError{Got: typeName(got)}
}

// NewInvalidConditionOperatorError creates a new InvalidConditionOperatorError
func NewInvalidConditionOperatorError(operator string) error {
	return &InvalidConditionOperatorError{Operator: operator}
}

// NewDriverFailureError wraps err as a DriverFailureError. A nil err yields nil.
func NewDriverFailureError(op, query string, err error) error {
	if err == nil {
		return nil
	}
	return &DriverFailureError{Op: op, Query: query, Err: err}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConditionFailed checks if an error is a condition failed error
func IsConditionFailed(err error) bool {
	return errors.Is(err, ErrConditionFailed)
}

// IsInvalidConditionInput checks if an error is an invalid condition input error
func IsInvalidConditionInput(err error) bool {
	return errors.Is(err, ErrInvalidConditionInput)
}

// IsInvalidConditionOperator checks if an error is an invalid condition operator error
func IsInvalidConditionOperator(err error) bool {
	return errors.Is(err, ErrInvalidConditionOperator)
}

// IsDriverFailure checks if an error was raised by the database driver
func IsDriverFailure(err error) bool {
	return errors.Is(err, ErrDriverFailure)
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case float32, float64:
		return "float"
	}
	return fmt.Sprintf("%T", v)
}
