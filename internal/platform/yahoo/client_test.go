package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"thaivest_backend/internal/feature/quotes/domain"
	"thaivest_backend/internal/shared/trend"
)

func testClient(baseURL string) *Client {
	cfg := Config{BaseURL: baseURL, RateLimit: 0, Timeout: 5 * time.Second}
	return NewClient(cfg, &http.Client{}, nil)
}

// quoteSummaryBody renders a minimal price module response.
func quoteSummaryBody(price, prevClose float64) string {
	return fmt.Sprintf(`{
		"quoteSummary": {
			"result": [{
				"price": {
					"symbol": "AAPL",
					"longName": "Apple Inc.",
					"regularMarketPrice": {"raw": %g},
					"regularMarketPreviousClose": {"raw": %g},
					"regularMarketVolume": {"raw": 1000000},
					"marketCap": {"raw": 3000000000000}
				},
				"summaryDetail": {
					"trailingPE": {"raw": 30.5},
					"fiftyTwoWeekHigh": {"raw": 200.0},
					"fiftyTwoWeekLow": {"raw": 120.0}
				},
				"defaultKeyStatistics": {
					"trailingEps": {"raw": 6.1}
				}
			}],
			"error": null
		}
	}`, price, prevClose)
}

// chartBody renders a chart response with the given closes.
func chartBody(closes []float64) string {
	type quoteSeries struct {
		Open   []float64 `json:"open"`
		High   []float64 `json:"high"`
		Low    []float64 `json:"low"`
		Close  []float64 `json:"close"`
		Volume []int64   `json:"volume"`
	}
	timestamps := make([]int64, len(closes))
	volumes := make([]int64, len(closes))
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range closes {
		timestamps[i] = base.AddDate(0, 0, i).Unix()
		volumes[i] = 100
	}
	body := map[string]any{
		"chart": map[string]any{
			"result": []map[string]any{{
				"timestamp": timestamps,
				"indicators": map[string]any{
					"quote": []quoteSeries{{
						Open: closes, High: closes, Low: closes, Close: closes, Volume: volumes,
					}},
				},
			}},
			"error": nil,
		},
	}
	raw, _ := json.Marshal(body)
	return string(raw)
}

func newStubServer(t *testing.T, summary, chart string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.Contains(r.URL.Path, "/v10/finance/quoteSummary/"):
			_, _ = w.Write([]byte(summary))
		case strings.Contains(r.URL.Path, "/v8/finance/chart/"):
			_, _ = w.Write([]byte(chart))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

// flatCloses returns n identical closes.
func flatCloses(n int, v float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = v
	}
	return closes
}

func TestClient_GetQuote_Success(t *testing.T) {
	t.Parallel()

	// Ascending closes keep the short average above the long one.
	closes := make([]float64, 250)
	for i := range closes {
		closes[i] = 100 + 0.1*float64(i)
	}
	server := newStubServer(t, quoteSummaryBody(150.0, 145.0), chartBody(closes))
	defer server.Close()

	q, err := testClient(server.URL).GetQuote(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.Symbol != "AAPL" {
		t.Errorf("expected symbol AAPL, got %s", q.Symbol)
	}
	if q.Price == nil || *q.Price != 150.0 {
		t.Fatalf("expected price 150.0, got %v", q.Price)
	}
	if q.ChangeAmount == nil || *q.ChangeAmount != 5.0 {
		t.Errorf("expected change 5.0, got %v", q.ChangeAmount)
	}
	if q.ChangePercent == nil || *q.ChangePercent < 3.44 || *q.ChangePercent > 3.45 {
		t.Errorf("expected change percent about 3.45, got %v", q.ChangePercent)
	}
	if q.SMA50 == nil || q.SMA200 == nil {
		t.Fatal("expected both averages with 250 closes")
	}
	if *q.SMA50 <= *q.SMA200 {
		t.Errorf("expected sma50 %v above sma200 %v", *q.SMA50, *q.SMA200)
	}
	if q.Trend != trend.Uptrend {
		t.Errorf("expected uptrend, got %s", q.Trend)
	}
}

func TestClient_GetQuote_InsufficientHistoryForAverages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		closes     int
		wantSMA50  bool
		wantSMA200 bool
	}{
		{name: "49 closes yields no averages", closes: 49, wantSMA50: false, wantSMA200: false},
		{name: "50 closes yields the short average only", closes: 50, wantSMA50: true, wantSMA200: false},
		{name: "200 closes yields both", closes: 200, wantSMA50: true, wantSMA200: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newStubServer(t, quoteSummaryBody(150.0, 145.0), chartBody(flatCloses(tt.closes, 140.0)))
			defer server.Close()

			q, err := testClient(server.URL).GetQuote(context.Background(), "AAPL")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := q.SMA50 != nil; got != tt.wantSMA50 {
				t.Errorf("sma50 present = %v, want %v", got, tt.wantSMA50)
			}
			if got := q.SMA200 != nil; got != tt.wantSMA200 {
				t.Errorf("sma200 present = %v, want %v", got, tt.wantSMA200)
			}
			if !tt.wantSMA200 && q.Trend != trend.Sideways {
				t.Errorf("expected sideways without both averages, got %s", q.Trend)
			}
		})
	}
}

func TestClient_GetQuote_ChartFailureStillServesQuote(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/v10/finance/quoteSummary/") {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(quoteSummaryBody(150.0, 145.0)))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	q, err := testClient(server.URL).GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.SMA50 != nil || q.SMA200 != nil {
		t.Error("expected no averages when history is unavailable")
	}
	if q.Trend != trend.Sideways {
		t.Errorf("expected sideways, got %s", q.Trend)
	}
}

func TestClient_GetQuote_MissingPrice(t *testing.T) {
	t.Parallel()

	body := `{"quoteSummary": {"result": [{"price": {"symbol": "ZZZZ"}}], "error": null}}`
	server := newStubServer(t, body, chartBody(nil))
	defer server.Close()

	_, err := testClient(server.URL).GetQuote(context.Background(), "ZZZZ")
	if !errors.Is(err, domain.ErrSymbolNotFound) {
		t.Errorf("expected ErrSymbolNotFound, got %v", err)
	}
}

func TestClient_GetQuote_HTTPStatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "404 means unknown symbol", status: http.StatusNotFound, wantErr: domain.ErrSymbolNotFound},
		{name: "500 means provider down", status: http.StatusInternalServerError, wantErr: domain.ErrProviderUnavailable},
		{name: "429 means provider down", status: http.StatusTooManyRequests, wantErr: domain.ErrProviderUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			_, err := testClient(server.URL).GetQuote(context.Background(), "AAPL")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestClient_GetProfile_Success(t *testing.T) {
	t.Parallel()

	body := `{
		"quoteSummary": {
			"result": [{
				"price": {"symbol": "AAPL", "longName": "Apple Inc."},
				"assetProfile": {
					"sector": "Technology",
					"industry": "Consumer Electronics",
					"longBusinessSummary": "Designs consumer electronics.",
					"website": "https://www.apple.com",
					"country": "United States",
					"city": "Cupertino",
					"state": "CA",
					"fullTimeEmployees": 164000,
					"companyOfficers": [
						{"name": "Mr. Luca Maestri", "title": "CFO"},
						{"name": "Mr. Timothy D. Cook", "title": "Chief Executive Officer"}
					]
				}
			}],
			"error": null
		}
	}`
	server := newStubServer(t, body, "")
	defer server.Close()

	p, err := testClient(server.URL).GetProfile(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Name != "Apple Inc." {
		t.Errorf("expected name Apple Inc., got %s", p.Name)
	}
	if p.CEO == nil || *p.CEO != "Mr. Timothy D. Cook" {
		t.Errorf("expected CEO picked by title, got %v", p.CEO)
	}
	if p.Headquarters == nil || *p.Headquarters != "Cupertino, CA" {
		t.Errorf("expected joined headquarters, got %v", p.Headquarters)
	}
	if p.Employees == nil || *p.Employees != 164000 {
		t.Errorf("expected 164000 employees, got %v", p.Employees)
	}
}

func TestClient_GetFundProfile_Success(t *testing.T) {
	t.Parallel()

	body := `{
		"quoteSummary": {
			"result": [{
				"price": {"symbol": "VOO", "longName": "Vanguard S&P 500 ETF"},
				"summaryDetail": {"totalAssets": {"raw": 400000000000}},
				"fundProfile": {
					"categoryName": "Large Blend",
					"feesExpensesInvestment": {"annualReportExpenseRatio": {"raw": 0.0003}}
				},
				"topHoldings": {
					"holdings": [
						{"symbol": "AAPL", "holdingName": "Apple Inc", "holdingPercent": {"raw": 0.07}},
						{"symbol": "MSFT", "holdingName": "Microsoft Corp", "holdingPercent": {"raw": 0.065}}
					]
				}
			}],
			"error": null
		}
	}`
	server := newStubServer(t, body, "")
	defer server.Close()

	fp, err := testClient(server.URL).GetFundProfile(context.Background(), "voo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fp.Category == nil || *fp.Category != "Large Blend" {
		t.Errorf("expected category Large Blend, got %v", fp.Category)
	}
	if fp.ExpenseRatio == nil || *fp.ExpenseRatio != 0.0003 {
		t.Errorf("expected expense ratio 0.0003, got %v", fp.ExpenseRatio)
	}
	if fp.AUM == nil || *fp.AUM != 400000000000 {
		t.Errorf("expected AUM, got %v", fp.AUM)
	}
	if len(fp.Holdings) != 2 {
		t.Fatalf("expected 2 holdings, got %d", len(fp.Holdings))
	}
	if *fp.Holdings[0].Symbol != "AAPL" || *fp.Holdings[0].Weight != 0.07 {
		t.Errorf("unexpected first holding: %+v", fp.Holdings[0])
	}
}

func TestClient_GetHistory_Success(t *testing.T) {
	t.Parallel()

	server := newStubServer(t, "", chartBody([]float64{100, 101, 102}))
	defer server.Close()

	bars, err := testClient(server.URL).GetHistory(context.Background(), "AAPL", "1mo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(bars))
	}
	if bars[0].Symbol != "AAPL" {
		t.Errorf("expected symbol on bar, got %s", bars[0].Symbol)
	}
	if bars[2].Close == nil || *bars[2].Close != 102 {
		t.Errorf("expected last close 102, got %v", bars[2].Close)
	}
	if !bars[0].Date.Before(bars[1].Date) {
		t.Error("expected bars ordered by date")
	}
}

func TestClient_BatchGetQuotes_DropsFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.Contains(r.URL.Path, "/quoteSummary/AAPL"):
			_, _ = w.Write([]byte(quoteSummaryBody(150.0, 145.0)))
		case strings.Contains(r.URL.Path, "/quoteSummary/"):
			w.WriteHeader(http.StatusNotFound)
		default:
			_, _ = w.Write([]byte(chartBody(flatCloses(250, 140.0))))
		}
	}))
	defer server.Close()

	quotes, err := testClient(server.URL).BatchGetQuotes(context.Background(), []string{"AAPL", "ZZZZ"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quotes) != 1 {
		t.Fatalf("expected 1 quote, got %d", len(quotes))
	}
	if _, ok := quotes["AAPL"]; !ok {
		t.Error("expected AAPL in results")
	}
}

func TestTrailingMean(t *testing.T) {
	t.Parallel()

	values := []float64{1, 2, 3, 4, 5}

	if got := trailingMean(values, 6); got != nil {
		t.Errorf("expected nil for short window, got %v", *got)
	}
	if got := trailingMean(values, 2); got == nil || *got != 4.5 {
		t.Errorf("expected mean of last two 4.5, got %v", got)
	}
	if got := trailingMean(values, 5); got == nil || *got != 3.0 {
		t.Errorf("expected mean 3.0, got %v", got)
	}
}
