// Package domain defines ETF-specific domain errors.
package domain

import "errors"

// ErrETFNotFound means the symbol is in neither the database nor the
// provider's universe.
var ErrETFNotFound = errors.New("etf not found")
