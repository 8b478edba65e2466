// Package adapters implements sync bookkeeping on GORM.
package adapters

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"thaivest_backend/internal/feature/sync/domain/entity"
	"thaivest_backend/internal/feature/sync/usecase"
)

type syncGormRepository struct {
	db  *gorm.DB
	now func() time.Time
}

var _ usecase.SyncRepository = (*syncGormRepository)(nil)

// NewSyncGormRepository creates a GORM-backed sync repository.
func NewSyncGormRepository(db *gorm.DB) usecase.SyncRepository {
	return &syncGormRepository{db: db, now: time.Now}
}

func (r *syncGormRepository) CreateLog(ctx context.Context, log *entity.SyncLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("create sync log: %w", err)
	}
	return nil
}

func (r *syncGormRepository) UpdateLog(ctx context.Context, log *entity.SyncLog) error {
	if err := r.db.WithContext(ctx).Save(log).Error; err != nil {
		return fmt.Errorf("update sync log %s: %w", log.RunID, err)
	}
	return nil
}

func (r *syncGormRepository) RecentLogs(ctx context.Context, limit int) ([]entity.SyncLog, error) {
	var logs []entity.SyncLog
	err := r.db.WithContext(ctx).Order("started_at DESC").Limit(limit).Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("list sync logs: %w", err)
	}
	return logs, nil
}

// AcquireLease takes the per-job lease in one atomic statement. The insert
// succeeds on a free job name; on conflict the update fires only when the
// existing lease has expired. Zero rows affected means another run holds it.
func (r *syncGormRepository) AcquireLease(ctx context.Context, jobName string, ttl time.Duration) (bool, error) {
	now := r.now()
	lease := entity.SyncLease{JobName: jobName, ExpiresAt: now.Add(ttl)}

	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "job_name"}},
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Lt{Column: clause.Column{Table: "sync_leases", Name: "expires_at"}, Value: now},
		}},
		DoUpdates: clause.Assignments(map[string]any{"expires_at": now.Add(ttl)}),
	}).Create(&lease)
	if res.Error != nil {
		return false, fmt.Errorf("acquire lease %s: %w", jobName, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ReleaseLease frees the lease by expiring it immediately.
func (r *syncGormRepository) ReleaseLease(ctx context.Context, jobName string) error {
	err := r.db.WithContext(ctx).Model(&entity.SyncLease{}).
		Where("job_name = ?", jobName).
		Update("expires_at", r.now()).Error
	if err != nil {
		return fmt.Errorf("release lease %s: %w", jobName, err)
	}
	return nil
}
