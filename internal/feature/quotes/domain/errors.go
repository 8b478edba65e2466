// Package domain defines shared market-data domain errors.
package domain

import "errors"

var (
	// ErrSymbolNotFound means the provider (or storage) has no data for the
	// symbol. This is a permanent condition surfaced to clients as 404.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrProviderUnavailable means the quote provider could not be reached or
	// returned an unparsable response. Transient: the read path maps it to
	// 502 and sync jobs skip and continue. Kept distinct from
	// ErrSymbolNotFound so callers never confuse an outage with a delisting.
	ErrProviderUnavailable = errors.New("quote provider unavailable")
)
