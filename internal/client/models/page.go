package models

// Pagination is the flat pagination view-model handed to consumers. It is
// derived from the backend envelope (total/page/totalPages) by the adapter
// layer; HasNext and HasPrev are computed, never trusted from the wire.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
	Total       int  `json:"total"`
}

// Page is one adapted page of entities.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}
