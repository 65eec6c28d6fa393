package backend

import (
	"context"
	"encoding/json"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/fitpick/admin-gateway/internal/domain/model"
	apperrors "github.com/fitpick/admin-gateway/internal/errors"
)

// AnalyticsAPI wraps the analytics and platform-stats endpoints. These
// payloads drift the most between backend releases (renamed keys, moved
// nesting), so extraction goes through JMESPath expressions that encode the
// known shapes as ordered fallbacks instead of struct tags.
type AnalyticsAPI struct {
	client *Client
	jems   JMESPathEvaluator
}

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// Analytics returns the analytics API bound to this client.
func (c *Client) Analytics() *AnalyticsAPI {
	return &AnalyticsAPI{client: c, jems: jmespathLibEvaluator{}}
}

// Series extraction expressions, first match wins. The `||` fallback chains
// cover every payload shape the backend has shipped so far.
var seriesExprs = map[string]string{
	"userGrowth": "userGrowth || UserGrowth || charts.userGrowth",
	"revenue":    "revenue || Revenue || charts.revenue",
	"mealViews":  "mealViews || MealViews || charts.mealViews",
}

var statsExprs = []struct {
	dst  func(*model.PlatformStats) *int
	expr string
}{
	{func(s *model.PlatformStats) *int { return &s.TotalUsers }, "totalUsers || TotalUsers || users.total"},
	{func(s *model.PlatformStats) *int { return &s.ActiveUsers }, "activeUsers || ActiveUsers || users.active"},
	{func(s *model.PlatformStats) *int { return &s.TotalMeals }, "totalMeals || TotalMeals || meals.total"},
	{func(s *model.PlatformStats) *int { return &s.TotalBlogs }, "totalBlogs || TotalBlogs || blogs.total"},
	{func(s *model.PlatformStats) *int { return &s.TotalTransactions }, "totalTransactions || TotalTransactions || transactions.total"},
}

const revenueExpr = "totalRevenue || TotalRevenue || transactions.revenue"

// Analytics fetches the dashboard chart series.
func (a *AnalyticsAPI) Analytics(ctx context.Context) (model.Analytics, error) {
	var data json.RawMessage
	if err := a.client.Get(ctx, pathAnalytics, nil, &data); err != nil {
		return model.Analytics{}, err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.Analytics{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "backend returned an unexpected payload")
	}

	out := model.Analytics{}
	for name, expr := range seriesExprs {
		series, err := a.extractSeries(name, expr, doc)
		if err != nil {
			return model.Analytics{}, err
		}
		switch name {
		case "userGrowth":
			out.UserGrowth = series
		case "revenue":
			out.Revenue = series
		case "mealViews":
			out.MealViews = series
		}
	}
	return out, nil
}

// Stats fetches the platform aggregate counts. Counts always come from the
// server; nothing is extrapolated from partial listings on this side.
func (a *AnalyticsAPI) Stats(ctx context.Context) (model.PlatformStats, error) {
	var data json.RawMessage
	if err := a.client.Get(ctx, pathStats, nil, &data); err != nil {
		return model.PlatformStats{}, err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.PlatformStats{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "backend returned an unexpected payload")
	}

	var stats model.PlatformStats
	for _, f := range statsExprs {
		v, err := a.jems.Evaluate(f.expr, doc)
		if err != nil {
			return model.PlatformStats{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "backend returned an unexpected payload")
		}
		if n, ok := asFloat(v); ok {
			*f.dst(&stats) = int(n)
		}
	}
	if v, err := a.jems.Evaluate(revenueExpr, doc); err == nil {
		if n, ok := asFloat(v); ok {
			stats.TotalRevenue = n
		}
	}
	return stats, nil
}

func (a *AnalyticsAPI) extractSeries(label, expr string, doc any) (model.Series, error) {
	v, err := a.jems.Evaluate(expr, doc)
	if err != nil {
		return model.Series{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "backend returned an unexpected payload")
	}
	if v == nil {
		return model.Series{Label: label}, nil
	}

	// A series arrives either as a bare point array or as {label, points}.
	points := v
	if m, ok := v.(map[string]any); ok {
		if p, ok := m["points"]; ok {
			points = p
		} else if p, ok := m["Points"]; ok {
			points = p
		}
	}

	arr, ok := points.([]any)
	if !ok {
		return model.Series{Label: label}, nil
	}

	series := model.Series{Label: label, Points: make([]model.SeriesPoint, 0, len(arr))}
	for _, el := range arr {
		m, ok := el.(map[string]any)
		if !ok {
			continue
		}
		var pt model.SeriesPoint
		if d, ok := firstString(m, "date", "Date", "label", "Label"); ok {
			pt.Date = d
		}
		if n, ok := firstNumber(m, "value", "Value", "count", "Count"); ok {
			pt.Value = n
		}
		series.Points = append(series.Points, pt)
	}
	return series, nil
}

func firstString(m map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return s, true
			}
		}
	}
	return "", false
}

func firstNumber(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if n, ok := asFloat(v); ok {
				return n, true
			}
		}
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
