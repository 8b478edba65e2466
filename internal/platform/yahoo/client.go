package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	etfentity "thaivest_backend/internal/feature/etfs/domain/entity"
	etfusecase "thaivest_backend/internal/feature/etfs/usecase"
	"thaivest_backend/internal/feature/quotes/domain"
	"thaivest_backend/internal/feature/quotes/domain/entity"
	"thaivest_backend/internal/feature/quotes/usecase"
	stockentity "thaivest_backend/internal/feature/stocks/domain/entity"
	stockusecase "thaivest_backend/internal/feature/stocks/usecase"
	"thaivest_backend/internal/platform/yahoo/dto"
	"thaivest_backend/internal/shared/ratelimiter"
	"thaivest_backend/internal/shared/trend"
)

// validPeriods are the ranges accepted by GetHistory.
var validPeriods = map[string]struct{}{
	"1d": {}, "5d": {}, "1mo": {}, "3mo": {}, "6mo": {},
	"1y": {}, "2y": {}, "5y": {}, "max": {},
}

// Client fetches quotes, profiles and history from the Yahoo Finance API.
// Every outbound call goes through the shared rate limiter, and every
// transport or parsing failure is converted to a tagged domain error at this
// boundary, so callers never see a raw HTTP error.
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

var (
	_ usecase.QuoteProvider        = (*Client)(nil)
	_ stockusecase.ProfileProvider = (*Client)(nil)
	_ etfusecase.FundProvider      = (*Client)(nil)
)

// NewClient creates a Client with the given configuration. A nil httpClient
// gets a default one with the configured timeout.
func NewClient(cfg Config, httpClient *http.Client, limiter ratelimiter.RateLimiterInterface) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if limiter == nil {
		limiter = ratelimiter.NewRateLimiter(cfg.RateLimit)
	}
	return &Client{cfg: cfg, client: httpClient, limiter: limiter}
}

// GetQuote returns a full quote snapshot for a symbol, including 50/200-day
// simple moving averages computed from trailing daily closes and the derived
// trend label.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	symbol = strings.ToUpper(symbol)

	res, err := c.fetchQuoteSummary(ctx, symbol, "price,summaryDetail,defaultKeyStatistics")
	if err != nil {
		return nil, err
	}

	price := res.Price
	if price == nil || price.RegularMarketPrice.Value() == nil {
		// The provider has no usable price for this symbol.
		return nil, domain.ErrSymbolNotFound
	}

	q := &entity.Quote{
		Symbol:    symbol,
		Price:     price.RegularMarketPrice.Value(),
		OpenPrice: price.RegularMarketOpen.Value(),
		HighPrice: price.RegularMarketDayHigh.Value(),
		LowPrice:  price.RegularMarketDayLow.Value(),
		Volume:    price.RegularMarketVolume.Value(),
		MarketCap: price.MarketCap.Value(),
	}

	if prev := price.RegularMarketPreviousClose.Value(); prev != nil && *prev != 0 {
		change := *q.Price - *prev
		pct := change / *prev * 100
		q.ChangeAmount = &change
		q.ChangePercent = &pct
	}

	if sd := res.SummaryDetail; sd != nil {
		q.PERatio = sd.TrailingPE.Value()
		q.Week52High = sd.FiftyTwoWeekHigh.Value()
		q.Week52Low = sd.FiftyTwoWeekLow.Value()
		q.AvgVolume10D = sd.AverageVolume10Days.Value()
		q.DividendYield = sd.DividendYield.Value()
	}
	if ks := res.DefaultKeyStatistics; ks != nil {
		q.EPS = ks.TrailingEps.Value()
	}

	// Moving averages need trailing history. A history failure only costs the
	// averages: the trend degrades to sideways, the quote itself still serves.
	closes, err := c.dailyCloses(ctx, symbol)
	if err != nil {
		slog.Warn("history unavailable, serving quote without moving averages", "symbol", symbol, "error", err)
	} else {
		q.SMA50 = trailingMean(closes, 50)
		q.SMA200 = trailingMean(closes, 200)
	}

	q.Trend = trend.Classify(q.Price, q.SMA50, q.SMA200)
	return q, nil
}

// GetProfile returns the descriptive company record for a stock.
func (c *Client) GetProfile(ctx context.Context, symbol string) (*stockentity.Profile, error) {
	symbol = strings.ToUpper(symbol)

	res, err := c.fetchQuoteSummary(ctx, symbol, "price,assetProfile")
	if err != nil {
		return nil, err
	}
	if res.Price == nil {
		return nil, domain.ErrSymbolNotFound
	}

	p := &stockentity.Profile{
		Symbol:   symbol,
		Name:     displayName(res.Price),
		Exchange: res.Price.ExchangeName,
	}

	if ap := res.AssetProfile; ap != nil {
		p.Sector = ap.Sector
		p.Industry = ap.Industry
		p.Description = ap.LongBusinessSummary
		p.Website = ap.Website
		p.Country = ap.Country
		p.Employees = ap.FullTimeEmployees
		p.CEO = chiefExecutive(ap.CompanyOfficers)
		p.Headquarters = headquarters(ap.City, ap.State)
	}
	return p, nil
}

// GetFundProfile returns the descriptive record of an ETF, including its top
// holdings when the provider reports them.
func (c *Client) GetFundProfile(ctx context.Context, symbol string) (*etfentity.FundProfile, error) {
	symbol = strings.ToUpper(symbol)

	res, err := c.fetchQuoteSummary(ctx, symbol, "price,summaryDetail,assetProfile,fundProfile,topHoldings")
	if err != nil {
		return nil, err
	}
	if res.Price == nil {
		return nil, domain.ErrSymbolNotFound
	}

	fp := &etfentity.FundProfile{
		Symbol: symbol,
		Name:   displayName(res.Price),
	}
	if sd := res.SummaryDetail; sd != nil {
		fp.AUM = sd.TotalAssets.Value()
	}
	if ap := res.AssetProfile; ap != nil {
		fp.Description = ap.LongBusinessSummary
	}
	if f := res.FundProfile; f != nil {
		fp.Category = f.CategoryName
		if f.FeesExpensesInvestment != nil {
			fp.ExpenseRatio = f.FeesExpensesInvestment.AnnualReportExpenseRatio.Value()
		}
	}
	if th := res.TopHoldings; th != nil {
		for _, h := range th.Holdings {
			fp.Holdings = append(fp.Holdings, etfentity.FundHolding{
				Symbol: h.Symbol,
				Name:   h.HoldingName,
				Weight: h.HoldingPercent.Value(),
			})
		}
	}
	return fp, nil
}

// GetHistory returns daily OHLCV bars for a symbol over the given period
// (1d, 5d, 1mo, 3mo, 6mo, 1y, 2y, 5y, max). Unknown periods default to 1y.
func (c *Client) GetHistory(ctx context.Context, symbol, period string) ([]entity.PriceBar, error) {
	symbol = strings.ToUpper(symbol)
	if _, ok := validPeriods[period]; !ok {
		period = "1y"
	}

	res, err := c.fetchChart(ctx, symbol, period)
	if err != nil {
		return nil, err
	}
	if len(res.Indicators.Quote) == 0 {
		return nil, nil
	}

	series := res.Indicators.Quote[0]
	bars := make([]entity.PriceBar, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		day := time.Unix(ts, 0).UTC().Truncate(24 * time.Hour)
		bar := entity.PriceBar{Symbol: symbol, Date: day}
		if i < len(series.Open) {
			bar.Open = series.Open[i]
		}
		if i < len(series.High) {
			bar.High = series.High[i]
		}
		if i < len(series.Low) {
			bar.Low = series.Low[i]
		}
		if i < len(series.Close) {
			bar.Close = series.Close[i]
		}
		if i < len(series.Volume) {
			bar.Volume = series.Volume[i]
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

// BatchGetQuotes applies GetQuote sequentially across symbols, collecting
// only successful results. Individual failures are logged and dropped from
// the result instead of aborting the batch.
func (c *Client) BatchGetQuotes(ctx context.Context, symbols []string) (map[string]*entity.Quote, error) {
	results := make(map[string]*entity.Quote, len(symbols))
	for _, s := range symbols {
		q, err := c.GetQuote(ctx, s)
		if err != nil {
			slog.Warn("batch quote fetch skipped symbol", "symbol", s, "error", err)
			continue
		}
		results[q.Symbol] = q
	}
	return results, nil
}

// fetchQuoteSummary calls the quoteSummary endpoint with the given modules.
func (c *Client) fetchQuoteSummary(ctx context.Context, symbol, modules string) (*dto.QuoteSummaryResult, error) {
	q := url.Values{}
	q.Set("modules", modules)
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", c.cfg.BaseURL, url.PathEscape(symbol), q.Encode())

	var body dto.QuoteSummaryResponse
	if err := c.doGet(ctx, u, &body); err != nil {
		return nil, err
	}
	if body.QuoteSummary.Error != nil {
		slog.Warn("provider rejected quoteSummary request", "symbol", symbol, "code", body.QuoteSummary.Error.Code)
		return nil, domain.ErrSymbolNotFound
	}
	if len(body.QuoteSummary.Result) == 0 {
		return nil, domain.ErrSymbolNotFound
	}
	return &body.QuoteSummary.Result[0], nil
}

// fetchChart calls the chart endpoint for daily bars over a range.
func (c *Client) fetchChart(ctx context.Context, symbol, rng string) (*dto.ChartResult, error) {
	q := url.Values{}
	q.Set("range", rng)
	q.Set("interval", "1d")
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.cfg.BaseURL, url.PathEscape(symbol), q.Encode())

	var body dto.ChartResponse
	if err := c.doGet(ctx, u, &body); err != nil {
		return nil, err
	}
	if body.Chart.Error != nil || len(body.Chart.Result) == 0 {
		return nil, domain.ErrSymbolNotFound
	}
	return &body.Chart.Result[0], nil
}

// doGet performs one throttled GET and decodes the JSON body. HTTP 404 maps
// to ErrSymbolNotFound; every other failure maps to ErrProviderUnavailable.
func (c *Client) doGet(ctx context.Context, u string, out any) error {
	c.limiter.WaitIfNeeded()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", domain.ErrProviderUnavailable)
	}
	req.Header.Set("User-Agent", "thaivest-backend/1.0")

	res, err := c.client.Do(req)
	if err != nil {
		slog.Error("provider request failed", "url", u, "error", err)
		return fmt.Errorf("%v: %w", err, domain.ErrProviderUnavailable)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode == http.StatusNotFound {
		return domain.ErrSymbolNotFound
	}
	if res.StatusCode >= 400 {
		slog.Error("provider returned error status", "url", u, "status", res.StatusCode)
		return fmt.Errorf("http %d: %w", res.StatusCode, domain.ErrProviderUnavailable)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		slog.Error("provider response unparsable", "url", u, "error", err)
		return fmt.Errorf("decode: %w", domain.ErrProviderUnavailable)
	}
	return nil
}

// dailyCloses returns one year of non-null daily closes, oldest first.
func (c *Client) dailyCloses(ctx context.Context, symbol string) ([]float64, error) {
	res, err := c.fetchChart(ctx, symbol, "1y")
	if err != nil {
		return nil, err
	}
	if len(res.Indicators.Quote) == 0 {
		return nil, nil
	}
	var closes []float64
	for _, v := range res.Indicators.Quote[0].Close {
		if v != nil {
			closes = append(closes, *v)
		}
	}
	return closes, nil
}

// trailingMean averages the last n values, or reports absence when fewer
// than n exist. 49 closes yield no 50-day average, by contract.
func trailingMean(values []float64, n int) *float64 {
	if len(values) < n {
		return nil
	}
	sum := 0.0
	for _, v := range values[len(values)-n:] {
		sum += v
	}
	mean := sum / float64(n)
	return &mean
}

// displayName picks the long name, falling back to the short name.
func displayName(p *dto.PriceModule) string {
	if p.LongName != nil && *p.LongName != "" {
		return *p.LongName
	}
	if p.ShortName != nil {
		return *p.ShortName
	}
	return ""
}

// chiefExecutive finds the CEO in the officer list, falling back to the
// first listed officer.
func chiefExecutive(officers []dto.Officer) *string {
	for _, o := range officers {
		title := strings.ToUpper(o.Title)
		if strings.Contains(title, "CEO") || strings.Contains(title, "CHIEF EXECUTIVE") {
			name := o.Name
			return &name
		}
	}
	if len(officers) > 0 {
		name := officers[0].Name
		return &name
	}
	return nil
}

// headquarters joins city and state into a display string.
func headquarters(city, state *string) *string {
	var parts []string
	if city != nil && *city != "" {
		parts = append(parts, *city)
	}
	if state != nil && *state != "" {
		parts = append(parts, *state)
	}
	if len(parts) == 0 {
		return nil
	}
	hq := strings.Join(parts, ", ")
	return &hq
}
