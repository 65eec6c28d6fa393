//revive:disable-next-line:var-naming // shared entity package name used across the project
package model

// Page is one page of a paginated backend listing. TotalItems and
// TotalPages come from the latest successful fetch; they are authoritative
// and never recomputed or guessed on this side.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
	PageSize   int `json:"pageSize"`
	PageNumber int `json:"pageNumber"`
}

// ListOptions groups the common list query parameters shared by every
// resource listing: free-text search plus 1-based pagination bounds.
// Resource-specific filters live on per-resource option structs that embed
// this one.
type ListOptions struct {
	Search   string
	Page     int
	PageSize int
}
