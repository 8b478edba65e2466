// Package adapters implements the stocks repository on GORM.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"thaivest_backend/internal/feature/stocks/domain"
	"thaivest_backend/internal/feature/stocks/domain/entity"
	"thaivest_backend/internal/feature/stocks/usecase"
)

type stockGormRepository struct {
	db *gorm.DB
}

var _ usecase.StockRepository = (*stockGormRepository)(nil)

// NewStockGormRepository creates a GORM-backed stocks repository.
func NewStockGormRepository(db *gorm.DB) usecase.StockRepository {
	return &stockGormRepository{db: db}
}

// List returns one page of active stocks ordered by symbol, with the total
// count before pagination. The search term matches symbol or name,
// case-insensitive.
func (r *stockGormRepository) List(ctx context.Context, offset, limit int, sector, search string) ([]entity.Stock, int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.Stock{}).Where("is_active = ?", true)
	if sector != "" {
		q = q.Where("sector = ?", sector)
	}
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(symbol) LIKE ? OR LOWER(name) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count stocks: %w", err)
	}

	var stocks []entity.Stock
	if err := q.Order("symbol ASC").Offset(offset).Limit(limit).Find(&stocks).Error; err != nil {
		return nil, 0, fmt.Errorf("list stocks: %w", err)
	}
	return stocks, total, nil
}

func (r *stockGormRepository) FindBySymbol(ctx context.Context, symbol string) (*entity.Stock, error) {
	var stock entity.Stock
	err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&stock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStockNotFound
		}
		return nil, fmt.Errorf("find stock %s: %w", symbol, err)
	}
	return &stock, nil
}

func (r *stockGormRepository) Create(ctx context.Context, stock *entity.Stock) error {
	if err := r.db.WithContext(ctx).Create(stock).Error; err != nil {
		return fmt.Errorf("create stock %s: %w", stock.Symbol, err)
	}
	return nil
}

func (r *stockGormRepository) Update(ctx context.Context, stock *entity.Stock) error {
	if err := r.db.WithContext(ctx).Save(stock).Error; err != nil {
		return fmt.Errorf("update stock %s: %w", stock.Symbol, err)
	}
	return nil
}

// ListSymbols returns every active symbol, ordered for deterministic sync
// batches.
func (r *stockGormRepository) ListSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	err := r.db.WithContext(ctx).Model(&entity.Stock{}).
		Where("is_active = ?", true).
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error
	if err != nil {
		return nil, fmt.Errorf("list stock symbols: %w", err)
	}
	return symbols, nil
}

// ListMissingProfile returns active stocks whose profile fields were never
// fetched.
func (r *stockGormRepository) ListMissingProfile(ctx context.Context) ([]entity.Stock, error) {
	var stocks []entity.Stock
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("ceo IS NULL OR employees IS NULL").
		Order("symbol ASC").
		Find(&stocks).Error
	if err != nil {
		return nil, fmt.Errorf("list stocks missing profile: %w", err)
	}
	return stocks, nil
}
