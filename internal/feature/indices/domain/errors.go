// Package domain defines index-specific domain errors.
package domain

import "errors"

// ErrIndexNotFound means the index symbol is not in the database. Indices
// are seeded and synced, never lazily discovered.
var ErrIndexNotFound = errors.New("index not found")
