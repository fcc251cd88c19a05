// Package entity はanalyticsフィーチャーのドメインエンティティを定義します。
package entity

// Point is one observation in a time series, bucketed to its calendar
// date. Several points may share a date when a metric was recorded
// more than once that day.
type Point struct {
	Date  string  `json:"date"` // YYYY-MM-DD, local time
	Value float64 `json:"value"`
}

// CorrelationResult is the outcome of correlating two metrics over a
// trailing window. Coefficient is nil when no coefficient is defined:
// either the series never overlap or one of them has zero variance.
type CorrelationResult struct {
	Metric1     string   `json:"metric1"`
	Metric2     string   `json:"metric2"`
	WindowDays  int      `json:"window_days"`
	Pairs       int      `json:"pairs"`
	Coefficient *float64 `json:"coefficient"`
}
