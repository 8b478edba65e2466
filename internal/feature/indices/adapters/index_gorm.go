// Package adapters implements the indices repository on GORM.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"thaivest_backend/internal/feature/indices/domain"
	"thaivest_backend/internal/feature/indices/domain/entity"
	"thaivest_backend/internal/feature/indices/usecase"
)

type indexGormRepository struct {
	db *gorm.DB
}

var _ usecase.IndexRepository = (*indexGormRepository)(nil)

// NewIndexGormRepository creates a GORM-backed indices repository.
func NewIndexGormRepository(db *gorm.DB) usecase.IndexRepository {
	return &indexGormRepository{db: db}
}

func (r *indexGormRepository) List(ctx context.Context) ([]entity.Index, error) {
	var indices []entity.Index
	if err := r.db.WithContext(ctx).Order("symbol ASC").Find(&indices).Error; err != nil {
		return nil, fmt.Errorf("list indices: %w", err)
	}
	return indices, nil
}

func (r *indexGormRepository) FindBySymbol(ctx context.Context, symbol string) (*entity.Index, error) {
	var index entity.Index
	err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&index).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrIndexNotFound
		}
		return nil, fmt.Errorf("find index %s: %w", symbol, err)
	}
	return &index, nil
}

// ListComponents joins the membership rows with the stocks table so each
// component carries its display name and sector. The sort column and
// direction arrive pre-whitelisted from the usecase.
func (r *indexGormRepository) ListComponents(ctx context.Context, indexSymbol string, offset, limit int, q usecase.ComponentQuery) ([]usecase.Component, int64, error) {
	base := r.db.WithContext(ctx).
		Table("index_components AS ic").
		Joins("JOIN stocks s ON s.symbol = ic.stock_symbol").
		Where("ic.index_symbol = ?", indexSymbol)
	if q.Sector != "" {
		base = base.Where("s.sector = ?", q.Sector)
	}
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		base = base.Where("LOWER(s.symbol) LIKE ? OR LOWER(s.name) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count components of %s: %w", indexSymbol, err)
	}

	orderExpr := map[string]string{
		"symbol": "s.symbol",
		"name":   "s.name",
		"weight": "ic.weight",
	}[q.SortBy] + " " + strings.ToUpper(q.Order)

	var components []usecase.Component
	err := base.
		Select("s.symbol AS symbol, s.name AS name, s.sector AS sector, ic.weight AS weight").
		Order(orderExpr).
		Offset(offset).Limit(limit).
		Scan(&components).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list components of %s: %w", indexSymbol, err)
	}
	return components, total, nil
}
