package cache

import "time"

// TimeUntilNextMidnight は次のローカル深夜0時までの期間を返します。
// 日次バケットされた系列は日付が変わると意味が変わるため、
// キャッシュの寿命を日付の境界に合わせます。
func TimeUntilNextMidnight() time.Duration {
	now := time.Now()
	next := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	return next.Sub(now)
}
