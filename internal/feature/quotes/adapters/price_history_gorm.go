package adapters

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"thaivest_backend/internal/feature/quotes/domain/entity"
	"thaivest_backend/internal/feature/quotes/usecase"
)

// StockPrice is one historical daily bar for a stock.
type StockPrice struct {
	ID     uint      `gorm:"primaryKey"`
	Symbol string    `gorm:"size:10;not null;uniqueIndex:uq_stock_price_date,priority:1"`
	Date   time.Time `gorm:"type:date;not null;uniqueIndex:uq_stock_price_date,priority:2"`

	Open   *float64
	High   *float64
	Low    *float64
	Close  *float64
	Volume *int64

	CreatedAt time.Time
}

func (StockPrice) TableName() string {
	return "stock_prices"
}

// ETFPrice is one historical daily bar for an ETF.
type ETFPrice struct {
	ID     uint      `gorm:"primaryKey"`
	Symbol string    `gorm:"size:10;not null;uniqueIndex:uq_etf_price_date,priority:1"`
	Date   time.Time `gorm:"type:date;not null;uniqueIndex:uq_etf_price_date,priority:2"`

	Open   *float64
	High   *float64
	Low    *float64
	Close  *float64
	Volume *int64

	CreatedAt time.Time
}

func (ETFPrice) TableName() string {
	return "etf_prices"
}

type priceHistoryGorm struct {
	db *gorm.DB
}

var _ usecase.PriceHistoryRepository = (*priceHistoryGorm)(nil)

// NewPriceHistoryRepository creates the historical price repository covering
// both the stock and ETF price tables.
func NewPriceHistoryRepository(db *gorm.DB) *priceHistoryGorm {
	return &priceHistoryGorm{db: db}
}

// UpsertBatch writes daily bars into the table for symbolType, keyed by
// (symbol, date) so re-ingestion overwrites instead of duplicating.
func (r *priceHistoryGorm) UpsertBatch(ctx context.Context, symbolType string, bars []entity.PriceBar) error {
	if len(bars) == 0 {
		return nil
	}

	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume"}),
	}

	switch symbolType {
	case "etf":
		rows := make([]ETFPrice, 0, len(bars))
		for _, b := range bars {
			rows = append(rows, ETFPrice{
				Symbol: b.Symbol, Date: b.Date,
				Open: b.Open, High: b.High, Low: b.Low, Close: b.Close, Volume: b.Volume,
			})
		}
		return r.db.WithContext(ctx).Clauses(onConflict).Create(&rows).Error
	case "stock":
		rows := make([]StockPrice, 0, len(bars))
		for _, b := range bars {
			rows = append(rows, StockPrice{
				Symbol: b.Symbol, Date: b.Date,
				Open: b.Open, High: b.High, Low: b.Low, Close: b.Close, Volume: b.Volume,
			})
		}
		return r.db.WithContext(ctx).Clauses(onConflict).Create(&rows).Error
	default:
		return fmt.Errorf("unknown symbol type %q", symbolType)
	}
}
