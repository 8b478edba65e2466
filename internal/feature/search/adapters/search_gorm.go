// Package adapters implements the combined search repository on GORM.
package adapters

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"thaivest_backend/internal/feature/search/usecase"
)

type searchGormRepository struct {
	db *gorm.DB
}

var _ usecase.SearchRepository = (*searchGormRepository)(nil)

// NewSearchGormRepository creates a GORM-backed search repository.
func NewSearchGormRepository(db *gorm.DB) usecase.SearchRepository {
	return &searchGormRepository{db: db}
}

// Search matches active stocks and ETFs on symbol, name or Thai name. Exact
// symbol matches rank first, then symbol prefixes, then everything else
// alphabetically.
func (r *searchGormRepository) Search(ctx context.Context, query string, limit int) ([]usecase.Result, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var results []usecase.Result
	for table, typ := range map[string]string{"stocks": "stock", "etfs": "etf"} {
		var rows []usecase.Result
		err := r.db.WithContext(ctx).
			Table(table).
			Select(fmt.Sprintf("symbol, name, name_th, '%s' AS type", typ)).
			Where("is_active = ?", true).
			Where("LOWER(symbol) LIKE ? OR LOWER(name) LIKE ? OR LOWER(name_th) LIKE ?", pattern, pattern, pattern).
			Limit(limit).
			Scan(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", table, err)
		}
		results = append(results, rows...)
	}

	upper := strings.ToUpper(query)
	sort.SliceStable(results, func(i, j int) bool {
		return searchRank(results[i].Symbol, upper) < searchRank(results[j].Symbol, upper) ||
			(searchRank(results[i].Symbol, upper) == searchRank(results[j].Symbol, upper) &&
				results[i].Symbol < results[j].Symbol)
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func searchRank(symbol, query string) int {
	switch {
	case symbol == query:
		return 0
	case strings.HasPrefix(symbol, query):
		return 1
	default:
		return 2
	}
}
