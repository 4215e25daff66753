package handler

import "time"

// parseDate parses the YYYY-MM-DD format used for date fields on requests.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// paginationResponse accompanies every paged list.
type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}
