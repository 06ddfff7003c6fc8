package search

// ErrorResponse represents an error payload from the search service.
type ErrorResponse struct {
	Error string `json:"error"`
}
