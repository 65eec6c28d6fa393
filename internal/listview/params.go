package listview

import (
	"net/url"
	"strconv"
)

// MaxPageSize bounds client-requested page sizes.
const MaxPageSize = 100

// reserved query parameters; everything else is treated as a filter.
var reservedParams = map[string]bool{
	"search":     true,
	"pageNumber": true,
	"pageSize":   true,
}

// FromValues parses a list query from URL parameters. Unknown parameters
// become filters, so resource handlers pass backend-specific filters (for
// example a blog status) through without naming them here.
func FromValues(values url.Values) Query {
	q := Query{
		Search:   values.Get("search"),
		Page:     intParam(values, "pageNumber", 1),
		PageSize: intParam(values, "pageSize", DefaultPageSize),
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	for key, vals := range values {
		if reservedParams[key] || len(vals) == 0 || vals[0] == "" {
			continue
		}
		if q.Filters == nil {
			q.Filters = make(map[string]string)
		}
		q.Filters[key] = vals[0]
	}
	return q
}

func intParam(values url.Values, key string, fallback int) int {
	raw := values.Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
