package cache

import (
	"fmt"
	"strings"
)

// Key helpers namespace entries by logical category and uppercased symbol.
// Search keys use the lowercased query instead.

func QuoteKey(symbol string) string {
	return "quote:" + strings.ToUpper(symbol)
}

func StockKey(symbol string) string {
	return "stock:" + strings.ToUpper(symbol)
}

func ETFKey(symbol string) string {
	return "etf:" + strings.ToUpper(symbol)
}

func IndexComponentsKey(indexSymbol string) string {
	return "index_components:" + strings.ToUpper(indexSymbol)
}

func ETFHoldingsKey(symbol string) string {
	return "etf_holdings:" + strings.ToUpper(symbol)
}

func SearchKey(query string) string {
	return "search:" + strings.ToLower(query)
}

// List keys encode every filter and pagination parameter so two different
// views of the same collection never collide. DeletePattern("stocks:list:*")
// drops all cached pages at once.

func StockListKey(page, perPage int, sector, search string) string {
	return fmt.Sprintf("stocks:list:%d:%d:%s:%s", page, perPage, strings.ToLower(sector), strings.ToLower(search))
}

func ETFListKey(page, perPage int, category string) string {
	return fmt.Sprintf("etfs:list:%d:%d:%s", page, perPage, strings.ToLower(category))
}

func ETFTop50Key() string {
	return "etfs:top50"
}

func IndexListKey() string {
	return "indices:list"
}

func IndexComponentsPageKey(indexSymbol string, page, perPage int, sector, sortBy, order, search string) string {
	return fmt.Sprintf("index_components:%s:%d:%d:%s:%s:%s:%s",
		strings.ToUpper(indexSymbol), page, perPage,
		strings.ToLower(sector), strings.ToLower(sortBy), strings.ToLower(order), strings.ToLower(search))
}
