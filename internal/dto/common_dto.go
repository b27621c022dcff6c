package dto

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// Meta is the pagination envelope returned by every list endpoint.
// Count is the number of items in the current page.
type Meta struct {
	Total  int64 `json:"total"`
	Count  int   `json:"count"`
	Offset int   `json:"offset"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
