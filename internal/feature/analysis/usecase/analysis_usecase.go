// Package usecase implements Thai analysis articles: serving published ones
// and generating drafts from live market data.
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"thaivest_backend/internal/feature/analysis/domain/entity"
	quotesusecase "thaivest_backend/internal/feature/quotes/usecase"
	"thaivest_backend/internal/shared/trend"
)

// AnalysisRepository abstracts the analysis table.
// Interfaces are defined by the consumer (usecase), not the provider.
type AnalysisRepository interface {
	LatestPublished(ctx context.Context, symbol, symbolType string) (*entity.Analysis, error)
	ListBySymbol(ctx context.Context, symbol, symbolType string, limit int) ([]entity.Analysis, error)
	Create(ctx context.Context, article *entity.Analysis) error
}

// Analyzer generates Thai prose from a prompt.
type Analyzer interface {
	Analyze(ctx context.Context, prompt string) (string, error)
}

// QuoteSource provides the market snapshot a generated article is based on.
type QuoteSource interface {
	GetQuote(ctx context.Context, symbol, symbolType string) (*quotesusecase.QuoteResult, error)
}

// AnalysisUsecase serves and generates analysis articles.
type AnalysisUsecase struct {
	repo     AnalysisRepository
	analyzer Analyzer
	quotes   QuoteSource
	now      func() time.Time
}

// NewAnalysisUsecase wires the feature with its collaborators. analyzer may
// be nil when no generation backend is configured; Generate then fails fast.
func NewAnalysisUsecase(repo AnalysisRepository, analyzer Analyzer, quotes QuoteSource) *AnalysisUsecase {
	return &AnalysisUsecase{repo: repo, analyzer: analyzer, quotes: quotes, now: time.Now}
}

// LatestPublished returns the newest published article for a symbol.
func (u *AnalysisUsecase) LatestPublished(ctx context.Context, symbol, symbolType string) (*entity.Analysis, error) {
	return u.repo.LatestPublished(ctx, strings.ToUpper(symbol), symbolType)
}

// ListBySymbol returns the most recent published articles for a symbol.
func (u *AnalysisUsecase) ListBySymbol(ctx context.Context, symbol, symbolType string, limit int) ([]entity.Analysis, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return u.repo.ListBySymbol(ctx, strings.ToUpper(symbol), symbolType, limit)
}

// Generate fetches the current quote, asks the analyzer for a Thai write-up
// and stores it as a draft for editorial review. Drafts never surface on the
// public read path until published.
func (u *AnalysisUsecase) Generate(ctx context.Context, symbol, symbolType string) (*entity.Analysis, error) {
	if u.analyzer == nil {
		return nil, fmt.Errorf("no analysis backend configured")
	}
	symbol = strings.ToUpper(symbol)

	quote, err := u.quotes.GetQuote(ctx, symbol, symbolType)
	if err != nil {
		return nil, err
	}

	content, err := u.analyzer.Analyze(ctx, buildPrompt(symbol, quote))
	if err != nil {
		return nil, fmt.Errorf("generate analysis for %s: %w", symbol, err)
	}

	opinion := string(quote.Trend)
	article := &entity.Analysis{
		Symbol:       symbol,
		SymbolType:   symbolType,
		Title:        fmt.Sprintf("%s Market Analysis", symbol),
		ContentTH:    content,
		TrendOpinion: &opinion,
		Status:       entity.StatusDraft,
	}
	if err := u.repo.Create(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// buildPrompt renders the quote snapshot into the Thai analyst prompt.
func buildPrompt(symbol string, q *quotesusecase.QuoteResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "คุณเป็นนักวิเคราะห์หุ้นสหรัฐ เขียนบทวิเคราะห์ภาษาไทยสำหรับ %s จากข้อมูลต่อไปนี้\n", symbol)
	if q.Price != nil {
		fmt.Fprintf(&b, "ราคาล่าสุด: %.2f USD\n", *q.Price)
	}
	if q.ChangePercent != nil {
		fmt.Fprintf(&b, "เปลี่ยนแปลง: %.2f%%\n", *q.ChangePercent)
	}
	if q.SMA50 != nil && q.SMA200 != nil {
		fmt.Fprintf(&b, "SMA50: %.2f, SMA200: %.2f\n", *q.SMA50, *q.SMA200)
	}
	fmt.Fprintf(&b, "แนวโน้ม: %s\n", trend.ThaiLabel(q.Trend))
	b.WriteString("เขียนสรุปสั้น 3-4 ย่อหน้า เน้นข้อเท็จจริง ไม่ใช่คำแนะนำการลงทุน")
	return b.String()
}
