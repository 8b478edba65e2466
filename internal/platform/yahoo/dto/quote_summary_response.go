// Package dto defines data transfer objects for the Yahoo Finance API.
package dto

// Number is Yahoo's wrapped numeric value. Empty objects decode to a nil Raw.
type Number struct {
	Raw *float64 `json:"raw"`
}

// Value returns the raw value, tolerating a nil receiver.
func (n *Number) Value() *float64 {
	if n == nil {
		return nil
	}
	return n.Raw
}

// IntNumber is Yahoo's wrapped integer value.
type IntNumber struct {
	Raw *int64 `json:"raw"`
}

// Value returns the raw value, tolerating a nil receiver.
func (n *IntNumber) Value() *int64 {
	if n == nil {
		return nil
	}
	return n.Raw
}

// APIError is the error object embedded in Yahoo responses.
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// QuoteSummaryResponse is the envelope of the quoteSummary endpoint.
type QuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []QuoteSummaryResult `json:"result"`
		Error  *APIError            `json:"error"`
	} `json:"quoteSummary"`
}

// QuoteSummaryResult bundles the requested modules for one symbol.
type QuoteSummaryResult struct {
	Price                *PriceModule        `json:"price"`
	SummaryDetail        *SummaryDetail      `json:"summaryDetail"`
	DefaultKeyStatistics *KeyStatistics      `json:"defaultKeyStatistics"`
	AssetProfile         *AssetProfile       `json:"assetProfile"`
	FundProfile          *FundProfileModule  `json:"fundProfile"`
	TopHoldings          *TopHoldingsModule  `json:"topHoldings"`
}

// PriceModule carries the regular-market price block.
type PriceModule struct {
	Symbol                     string     `json:"symbol"`
	LongName                   *string    `json:"longName"`
	ShortName                  *string    `json:"shortName"`
	ExchangeName               *string    `json:"exchangeName"`
	RegularMarketPrice         *Number    `json:"regularMarketPrice"`
	RegularMarketPreviousClose *Number    `json:"regularMarketPreviousClose"`
	RegularMarketOpen          *Number    `json:"regularMarketOpen"`
	RegularMarketDayHigh       *Number    `json:"regularMarketDayHigh"`
	RegularMarketDayLow        *Number    `json:"regularMarketDayLow"`
	RegularMarketVolume        *IntNumber `json:"regularMarketVolume"`
	MarketCap                  *IntNumber `json:"marketCap"`
}

// SummaryDetail carries valuation and range fields.
type SummaryDetail struct {
	TrailingPE          *Number    `json:"trailingPE"`
	FiftyTwoWeekHigh    *Number    `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow     *Number    `json:"fiftyTwoWeekLow"`
	AverageVolume10Days *IntNumber `json:"averageVolume10days"`
	DividendYield       *Number    `json:"dividendYield"`
	TotalAssets         *IntNumber `json:"totalAssets"`
}

// KeyStatistics carries per-share statistics.
type KeyStatistics struct {
	TrailingEps *Number `json:"trailingEps"`
}

// AssetProfile carries the descriptive company block.
type AssetProfile struct {
	Sector              *string   `json:"sector"`
	Industry            *string   `json:"industry"`
	LongBusinessSummary *string   `json:"longBusinessSummary"`
	Website             *string   `json:"website"`
	Country             *string   `json:"country"`
	City                *string   `json:"city"`
	State               *string   `json:"state"`
	FullTimeEmployees   *int      `json:"fullTimeEmployees"`
	CompanyOfficers     []Officer `json:"companyOfficers"`
}

// Officer is one entry of the company officer list.
type Officer struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// FundProfileModule carries the fund classification block.
type FundProfileModule struct {
	CategoryName           *string `json:"categoryName"`
	FeesExpensesInvestment *struct {
		AnnualReportExpenseRatio *Number `json:"annualReportExpenseRatio"`
	} `json:"feesExpensesInvestment"`
}

// TopHoldingsModule carries the fund holdings block.
type TopHoldingsModule struct {
	Holdings []struct {
		Symbol         *string `json:"symbol"`
		HoldingName    *string `json:"holdingName"`
		HoldingPercent *Number `json:"holdingPercent"`
	} `json:"holdings"`
}
