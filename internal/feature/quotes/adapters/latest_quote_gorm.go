// Package adapters provides the gorm repositories for the quotes feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"thaivest_backend/internal/feature/quotes/domain"
	"thaivest_backend/internal/feature/quotes/domain/entity"
	"thaivest_backend/internal/feature/quotes/usecase"
)

// quoteColumns are the fields overwritten in place on every upsert. The
// symbol and its type survive from the first insert.
var quoteColumns = []string{
	"price", "change_amount", "change_percent",
	"open_price", "high_price", "low_price", "volume",
	"market_cap", "pe_ratio", "eps",
	"week_52_high", "week_52_low", "avg_volume_10d", "dividend_yield",
	"sma_50", "sma_200", "trend", "updated_at",
}

type latestQuoteGorm struct {
	db *gorm.DB
}

var _ usecase.LatestQuoteRepository = (*latestQuoteGorm)(nil)

// NewLatestQuoteRepository creates the latest_quotes repository.
func NewLatestQuoteRepository(db *gorm.DB) *latestQuoteGorm {
	return &latestQuoteGorm{db: db}
}

// FindBySymbol loads the stored quote row for a symbol.
func (r *latestQuoteGorm) FindBySymbol(ctx context.Context, symbol string) (*entity.LatestQuote, error) {
	var row entity.LatestQuote
	err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSymbolNotFound
		}
		return nil, err
	}
	return &row, nil
}

// Upsert inserts the row or overwrites the quote fields of the existing one.
// Insert-on-conflict-update keeps the lazy read path and concurrent sync runs
// from racing a check-then-insert into duplicate rows.
func (r *latestQuoteGorm) Upsert(ctx context.Context, row *entity.LatestQuote) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns(quoteColumns),
	}).Create(row).Error
}

// UpsertBatch applies Upsert semantics to a whole batch in one statement,
// bounding the sync job to one transaction per batch.
func (r *latestQuoteGorm) UpsertBatch(ctx context.Context, rows []entity.LatestQuote) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns(quoteColumns),
	}).Create(&rows).Error
}
