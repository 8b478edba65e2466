// Package domain defines analysis-specific domain errors.
package domain

import "errors"

// ErrAnalysisNotFound means no published article exists for the symbol.
var ErrAnalysisNotFound = errors.New("analysis not found")
