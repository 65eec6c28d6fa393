// Package listview manages paginated, searchable list state: one
// authoritative query per list, debounced search, page clamping, and
// last-request-wins fetch ordering. The HTTP list handlers share its query
// parsing helpers; the operator CLI's follow mode drives a Controller
// directly.
package listview

// Query is the authoritative description of what a list is showing.
type Query struct {
	Search   string
	Filters  map[string]string
	Page     int
	PageSize int
}

// clone returns a deep copy so an in-flight fetch never observes later
// mutations of the controller's query.
func (q Query) clone() Query {
	out := q
	if q.Filters != nil {
		out.Filters = make(map[string]string, len(q.Filters))
		for k, v := range q.Filters {
			out.Filters[k] = v
		}
	}
	return out
}

// Snapshot is the result of one successful fetch. TotalPages always comes
// from the server, never derived locally.
type Snapshot[T any] struct {
	Items      []T
	TotalItems int
	TotalPages int
	Page       int
	PageSize   int
}

// State is the controller phase exposed to observers.
type State int

const (
	// StateIdle means no fetch is in flight and the last one succeeded
	// (or none has run yet).
	StateIdle State = iota
	// StateLoading means a fetch is in flight.
	StateLoading
	// StateError means no fetch is in flight and the last one failed; the
	// previous snapshot remains visible.
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
