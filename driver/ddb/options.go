/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"time"

	"go.uber.org/zap"
)

// DefaultSequenceTable holds one atomic counter item per entity table.
const DefaultSequenceTable = "entitydb_sequences"

// Options configures the DynamoDB driver
type Options struct {
	SequenceTable string             // Counter table used to allocate ids (default: entitydb_sequences)
	MaxRetries    int                // Retry attempts for throttling errors (default: 3)
	RetryBackoff  time.Duration      // Backoff between retries, multiplied by attempt (default: 1s)
	PageSize      int32              // Items per ExecuteStatement page, 0 for the service default
	Logger        *zap.SugaredLogger // Statement logging at debug level
}

// Option is a functional option for configuring the driver
type Option func(*Options)

// DefaultOptions returns default driver options
func DefaultOptions() Options {
	return Options{
		SequenceTable: DefaultSequenceTable,
		MaxRetries:    3,
		RetryBackoff:  time.Second,
		Logger:        zap.NewNop().Sugar(),
	}
}

// WithSequenceTable sets the counter table name
func WithSequenceTable(name string) Option {
	return func(opts *Options) {
		if name != "" {
			opts.SequenceTable = name
		}
	}
}

// WithMaxRetries sets the maximum retry attempts
func WithMaxRetries(retries int) Option {
	return func(opts *Options) {
		opts.MaxRetries = retries
	}
}

// WithRetryBackoff sets the retry backoff duration
func WithRetryBackoff(backoff time.Duration) Option {
	return func(opts *Options) {
		opts.RetryBackoff = backoff
	}
}

// WithPageSize sets the ExecuteStatement page size
func WithPageSize(size int32) Option {
	return func(opts *Options) {
		opts.PageSize = size
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(opts *Options) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}
