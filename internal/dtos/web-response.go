package dtos

// WebResponse repräsentiert eine standardisierte Webantwort. Fehler rendert der ErrorHandler separat.
type WebResponse[T any] struct {
	Message   string `json:"message"`
	Data      T      `json:"data"`
	Details   []any  `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
