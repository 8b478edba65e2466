// Package adapters implements the analysis repository on GORM.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"thaivest_backend/internal/feature/analysis/domain"
	"thaivest_backend/internal/feature/analysis/domain/entity"
	"thaivest_backend/internal/feature/analysis/usecase"
)

type analysisGormRepository struct {
	db *gorm.DB
}

var _ usecase.AnalysisRepository = (*analysisGormRepository)(nil)

// NewAnalysisGormRepository creates a GORM-backed analysis repository.
func NewAnalysisGormRepository(db *gorm.DB) usecase.AnalysisRepository {
	return &analysisGormRepository{db: db}
}

func (r *analysisGormRepository) LatestPublished(ctx context.Context, symbol, symbolType string) (*entity.Analysis, error) {
	var article entity.Analysis
	err := r.db.WithContext(ctx).
		Where("symbol = ? AND symbol_type = ? AND status = ?", symbol, symbolType, entity.StatusPublished).
		Order("published_at DESC").
		First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("latest analysis for %s: %w", symbol, err)
	}
	return &article, nil
}

func (r *analysisGormRepository) ListBySymbol(ctx context.Context, symbol, symbolType string, limit int) ([]entity.Analysis, error) {
	var articles []entity.Analysis
	err := r.db.WithContext(ctx).
		Where("symbol = ? AND symbol_type = ? AND status = ?", symbol, symbolType, entity.StatusPublished).
		Order("published_at DESC").
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, fmt.Errorf("list analysis for %s: %w", symbol, err)
	}
	return articles, nil
}

func (r *analysisGormRepository) Create(ctx context.Context, article *entity.Analysis) error {
	if err := r.db.WithContext(ctx).Create(article).Error; err != nil {
		return fmt.Errorf("create analysis for %s: %w", article.Symbol, err)
	}
	return nil
}
