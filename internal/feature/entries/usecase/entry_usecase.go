// Package usecase はentriesフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"time"

	"lifetrack_backend/internal/feature/entries/domain/entity"
)

// EntryRepository はエントリーの永続化層を抽象化します。
type EntryRepository interface {
	// Create は新しいエントリーを永続化し、IDを採番します。
	Create(ctx context.Context, entry *entity.Entry) error
	// DeleteByMetricID は指定メトリクスの全エントリーを削除します。
	DeleteByMetricID(ctx context.Context, userID, metricID uint) error
}

// MetricResolver はメトリクス名からIDを解決します。
// 存在しない場合はErrMetricNotFoundを返します。
type MetricResolver interface {
	ResolveMetricID(ctx context.Context, userID uint, name string) (uint, error)
}

// entryUsecase はエントリー記録のユースケースを実装します。
type entryUsecase struct {
	entries EntryRepository
	metrics MetricResolver
	now     func() time.Time
}

// NewEntryUsecase はentryUsecaseの新しいインスタンスを生成します。
func NewEntryUsecase(entries EntryRepository, metrics MetricResolver) *entryUsecase {
	return &entryUsecase{entries: entries, metrics: metrics, now: time.Now}
}

// Record はメトリクスの観測値を1件記録し、エントリーIDを返します。
// timestampがゼロ値の場合は現在時刻を使用します（日付指定で過去の記録も可能）。
// メトリクスのmin/maxは入力時のガイダンスであり、ここでは値を拒否しません。
func (eu *entryUsecase) Record(ctx context.Context, userID uint, metricName string, value float64, timestamp time.Time) (uint, error) {
	metricID, err := eu.metrics.ResolveMetricID(ctx, userID, metricName)
	if err != nil {
		return 0, err
	}

	if timestamp.IsZero() {
		timestamp = eu.now()
	}

	entry := &entity.Entry{
		UserID:    userID,
		MetricID:  metricID,
		Value:     value,
		Timestamp: timestamp,
	}
	if err := eu.entries.Create(ctx, entry); err != nil {
		return 0, err
	}
	return entry.ID, nil
}
