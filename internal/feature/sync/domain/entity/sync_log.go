// Package entity defines the bookkeeping records for background sync jobs.
package entity

import "time"

// Sync job names. Also used as lease keys.
const (
	SyncTypeQuotes   = "quotes"
	SyncTypeProfiles = "profiles"
)

// Sync run statuses.
const (
	StatusStarted   = "started"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// SyncLog is the append-only record of one sync run. A row is inserted when
// the run starts and finalized exactly once with counts when it ends.
type SyncLog struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	RunID            string  `gorm:"column:run_id;size:36;not null;uniqueIndex" json:"run_id"`
	SyncType         string  `gorm:"size:50;not null" json:"sync_type"`
	Status           string  `gorm:"size:20;not null" json:"status"`
	RecordsProcessed int     `gorm:"not null;default:0" json:"records_processed"`
	RecordsUpdated   int     `gorm:"not null;default:0" json:"records_updated"`
	ErrorMessage     *string `gorm:"type:text" json:"error_message"`

	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

func (SyncLog) TableName() string {
	return "sync_log"
}

// SyncLease is the single-row mutual-exclusion record per job. A run holds
// the lease until it releases it or the expiry passes, so overlapping
// triggers do not double-fetch the same symbols.
type SyncLease struct {
	JobName   string    `gorm:"primaryKey;size:50"`
	ExpiresAt time.Time `gorm:"not null"`
}

func (SyncLease) TableName() string {
	return "sync_leases"
}
