package api

import (
	"encoding/json"

	"github.com/elliot09alderson/estate-client/internal/client/models"
)

// adaptPage reshapes a backend list payload into a Page. The payload shape is
//
//	{"<itemsKey>": [...], "total": n, "page": p, "totalPages": tp}
//
// The adapter is total: any missing, null, or malformed part falls back to a
// default instead of failing. Defaults are an empty item slice, current page
// 1 and total pages 1. HasNext and HasPrev are always computed here, never
// read from the wire.
func adaptPage[T any](data json.RawMessage, itemsKey string) models.Page[T] {
	page := models.Page[T]{
		Items:      []T{},
		Pagination: models.Pagination{CurrentPage: 1, TotalPages: 1},
	}

	var env map[string]json.RawMessage
	if len(data) == 0 || json.Unmarshal(data, &env) != nil {
		return page
	}

	if raw, ok := env[itemsKey]; ok {
		var items []T
		if json.Unmarshal(raw, &items) == nil && items != nil {
			page.Items = items
		}
	}

	page.Pagination.CurrentPage = max(intField(env, "page", 1), 1)
	page.Pagination.TotalPages = max(intField(env, "totalPages", 1), 1)
	page.Pagination.Total = intField(env, "total", len(page.Items))
	page.Pagination.HasNext = page.Pagination.CurrentPage < page.Pagination.TotalPages
	page.Pagination.HasPrev = page.Pagination.CurrentPage > 1
	return page
}

func intField(env map[string]json.RawMessage, key string, def int) int {
	raw, ok := env[key]
	if !ok {
		return def
	}
	var n int
	if json.Unmarshal(raw, &n) != nil {
		return def
	}
	return n
}
