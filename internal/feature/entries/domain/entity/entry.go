// Package entity はentriesフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// Entry is a single recorded observation of a metric.
// Timestamp carries full precision; analytics buckets it by calendar
// date, so several entries may share a day.
type Entry struct {
	ID        uint
	UserID    uint
	MetricID  uint
	Value     float64
	Timestamp time.Time
}
