// Package api defines the shared response envelopes for the HTTP layer.
package api

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the standard failure envelope.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// SuccessResponse is the standard success envelope.
type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// PaginationMeta describes the page window of a list response.
type PaginationMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
}

// PaginatedResponse is the success envelope for paginated listings.
type PaginatedResponse struct {
	Success bool           `json:"success"`
	Data    any            `json:"data"`
	Meta    PaginationMeta `json:"meta"`
}

// OK wraps data in a success envelope.
func OK(data any) SuccessResponse {
	return SuccessResponse{Success: true, Data: data}
}

// Err builds a failure envelope.
func Err(code, message string) ErrorResponse {
	return ErrorResponse{Success: false, Error: ErrorDetail{Code: code, Message: message}}
}

// Paginated wraps a page of data with its metadata.
func Paginated(data any, total int64, page, perPage int) PaginatedResponse {
	totalPages := 0
	if total > 0 && perPage > 0 {
		totalPages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return PaginatedResponse{
		Success: true,
		Data:    data,
		Meta: PaginationMeta{
			Total:      total,
			Page:       page,
			PerPage:    perPage,
			TotalPages: totalPages,
		},
	}
}
