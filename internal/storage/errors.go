// ABOUTME: Sentinel errors shared by the storage layer.
// ABOUTME: Callers match with errors.Is; messages carry operation context.
package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks caller input the repositories refuse to store.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound marks lookups for rows that do not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoActiveSession is returned by the commit pipeline when the
	// draft was never started. It matches ErrValidation.
	ErrNoActiveSession = fmt.Errorf("%w: no active session", ErrValidation)
)
