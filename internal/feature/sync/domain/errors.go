// Package domain defines sync-specific domain errors.
package domain

import "errors"

// ErrSyncAlreadyRunning means another run holds the job lease.
var ErrSyncAlreadyRunning = errors.New("sync already running")
