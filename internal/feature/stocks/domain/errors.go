// Package domain defines stock-specific domain errors.
package domain

import "errors"

// ErrStockNotFound means the symbol is in neither the database nor the
// provider's universe.
var ErrStockNotFound = errors.New("stock not found")
