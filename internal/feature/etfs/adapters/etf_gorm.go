// Package adapters implements the ETFs repository on GORM.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"thaivest_backend/internal/feature/etfs/domain"
	"thaivest_backend/internal/feature/etfs/domain/entity"
	"thaivest_backend/internal/feature/etfs/usecase"
)

type etfGormRepository struct {
	db *gorm.DB
}

var _ usecase.ETFRepository = (*etfGormRepository)(nil)

// NewETFGormRepository creates a GORM-backed ETFs repository.
func NewETFGormRepository(db *gorm.DB) usecase.ETFRepository {
	return &etfGormRepository{db: db}
}

func (r *etfGormRepository) List(ctx context.Context, offset, limit int, category string) ([]entity.ETF, int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.ETF{}).Where("is_active = ?", true)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count etfs: %w", err)
	}

	var etfs []entity.ETF
	if err := q.Order("symbol ASC").Offset(offset).Limit(limit).Find(&etfs).Error; err != nil {
		return nil, 0, fmt.Errorf("list etfs: %w", err)
	}
	return etfs, total, nil
}

// TopByAUM returns the largest funds first. Rows without a reported AUM sort
// last.
func (r *etfGormRepository) TopByAUM(ctx context.Context, limit int) ([]entity.ETF, error) {
	var etfs []entity.ETF
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("aum DESC NULLS LAST").
		Limit(limit).
		Find(&etfs).Error
	if err != nil {
		return nil, fmt.Errorf("top etfs by aum: %w", err)
	}
	return etfs, nil
}

func (r *etfGormRepository) FindBySymbol(ctx context.Context, symbol string) (*entity.ETF, error) {
	var etf entity.ETF
	err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&etf).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrETFNotFound
		}
		return nil, fmt.Errorf("find etf %s: %w", symbol, err)
	}
	return &etf, nil
}

func (r *etfGormRepository) Create(ctx context.Context, etf *entity.ETF) error {
	if err := r.db.WithContext(ctx).Create(etf).Error; err != nil {
		return fmt.Errorf("create etf %s: %w", etf.Symbol, err)
	}
	return nil
}

func (r *etfGormRepository) Update(ctx context.Context, etf *entity.ETF) error {
	if err := r.db.WithContext(ctx).Save(etf).Error; err != nil {
		return fmt.Errorf("update etf %s: %w", etf.Symbol, err)
	}
	return nil
}

func (r *etfGormRepository) ListSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	err := r.db.WithContext(ctx).Model(&entity.ETF{}).
		Where("is_active = ?", true).
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error
	if err != nil {
		return nil, fmt.Errorf("list etf symbols: %w", err)
	}
	return symbols, nil
}

func (r *etfGormRepository) ListHoldings(ctx context.Context, etfSymbol string) ([]entity.ETFHolding, error) {
	var holdings []entity.ETFHolding
	err := r.db.WithContext(ctx).
		Where("etf_symbol = ?", etfSymbol).
		Order("weight DESC").
		Find(&holdings).Error
	if err != nil {
		return nil, fmt.Errorf("list holdings of %s: %w", etfSymbol, err)
	}
	return holdings, nil
}

// ReplaceHoldings swaps the stored positions of a fund in one transaction so
// readers never observe a partially replaced set.
func (r *etfGormRepository) ReplaceHoldings(ctx context.Context, etfSymbol string, holdings []entity.ETFHolding) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("etf_symbol = ?", etfSymbol).Delete(&entity.ETFHolding{}).Error; err != nil {
			return err
		}
		if len(holdings) == 0 {
			return nil
		}
		return tx.Create(&holdings).Error
	})
	if err != nil {
		return fmt.Errorf("replace holdings of %s: %w", etfSymbol, err)
	}
	return nil
}
