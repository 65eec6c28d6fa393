//revive:disable-next-line:var-naming // shared entity package name used across the project
package model

// FilterKind identifies one of the option lists the backend serves for
// populating filter dropdowns.
type FilterKind string

const (
	FilterKindCategories   FilterKind = "categories"
	FilterKindMealStatuses FilterKind = "meal-statuses"
	FilterKindDietTypes    FilterKind = "diet-types"
)

// Valid returns true if the filter kind is a known value.
func (k FilterKind) Valid() bool {
	switch k {
	case FilterKindCategories, FilterKindMealStatuses, FilterKindDietTypes:
		return true
	default:
		return false
	}
}

// String returns the string representation of the filter kind.
func (k FilterKind) String() string { return string(k) }

// FilterOption is one selectable entry of a filter dropdown.
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
