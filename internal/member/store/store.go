// Package store provides member lookup backends. The claims core only ever
// reads: a member row and its social links are loaded per request, never
// written. Snapshot consistency within one load is the database's job.
package store

import "errors"

// Error Contract:
// All store methods follow this error pattern:
// - Return ErrNotFound when the requested member does not exist
// - Return nil for successful operations
// - Return wrapped errors with context for infrastructure failures
var ErrNotFound = errors.New("member not found")
