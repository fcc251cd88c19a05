// Package adapters はanalyticsフィーチャーの永続化アダプターを実装します。
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"lifetrack_backend/internal/feature/analytics/usecase"
)

// seriesGorm はGORMを用いたSeriesRepositoryの実装です。
// catalogとentriesのテーブルを読み取り専用で参照します。
type seriesGorm struct {
	db *gorm.DB
}

// NewSeriesGorm はseriesGormの新しいインスタンスを生成します。
func NewSeriesGorm(db *gorm.DB) usecase.SeriesRepository {
	return &seriesGorm{db: db}
}

var _ usecase.SeriesRepository = (*seriesGorm)(nil)

// FindSeries は指定メトリクスのfrom以降の観測値をtimestamp昇順で取得します。
// 観測ゼロと未知のメトリクスを区別するため、先にメトリクスの存在を確認します。
func (r *seriesGorm) FindSeries(ctx context.Context, userID uint, metricName string, from time.Time) ([]usecase.Observation, error) {
	var metric struct{ ID uint }
	err := r.db.WithContext(ctx).
		Table("metrics").
		Select("id").
		Where("user_id = ? AND name = ?", userID, metricName).
		Take(&metric).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrMetricNotFound
		}
		return nil, fmt.Errorf("failed to resolve metric: %w", err)
	}

	var rows []struct {
		Timestamp time.Time
		Value     float64
	}
	err = r.db.WithContext(ctx).
		Table("entries").
		Select("timestamp, value").
		Where("user_id = ? AND metric_id = ? AND timestamp >= ?", userID, metric.ID, from).
		Order("timestamp ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load series: %w", err)
	}

	observations := make([]usecase.Observation, 0, len(rows))
	for _, row := range rows {
		observations = append(observations, usecase.Observation{
			Timestamp: row.Timestamp,
			Value:     row.Value,
		})
	}
	return observations, nil
}
