//revive:disable-next-line:var-naming // shared entity package name used across the project
package model

// PlatformStats is the aggregate snapshot behind the dashboard stat cards.
// Counts are always server-computed; the console never extrapolates them
// from partial samples.
type PlatformStats struct {
	TotalUsers        int     `json:"totalUsers"`
	ActiveUsers       int     `json:"activeUsers"`
	TotalMeals        int     `json:"totalMeals"`
	TotalBlogs        int     `json:"totalBlogs"`
	TotalTransactions int     `json:"totalTransactions"`
	TotalRevenue      float64 `json:"totalRevenue"`
}

// SeriesPoint is one sample of a time series rendered by the dashboard
// charts.
type SeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Series is a labelled time series.
type Series struct {
	Label  string        `json:"label"`
	Points []SeriesPoint `json:"points"`
}

// Analytics bundles the chart series served by the analytics endpoint.
type Analytics struct {
	UserGrowth Series `json:"userGrowth"`
	Revenue    Series `json:"revenue"`
	MealViews  Series `json:"mealViews"`
}
