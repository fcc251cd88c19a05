// Package adapters はentriesフィーチャーの永続化アダプターを実装します。
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"lifetrack_backend/internal/feature/entries/domain/entity"
	"lifetrack_backend/internal/feature/entries/usecase"
)

// EntryModel はentriesテーブルのGORMモデルです。
type EntryModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index:idx_entries_user_metric"`
	MetricID  uint      `gorm:"not null;index:idx_entries_user_metric"`
	Value     float64   `gorm:"not null"`
	Timestamp time.Time `gorm:"not null;index"`
}

// TableName はGORMのデフォルト命名を上書きします。
func (EntryModel) TableName() string { return "entries" }

// entryGorm はGORMを用いたEntryRepository/MetricResolverの実装です。
type entryGorm struct {
	db *gorm.DB
}

// NewEntryGorm はentryGormの新しいインスタンスを生成します。
// 戻り値はEntryRepositoryとMetricResolverの両方を満たします。
func NewEntryGorm(db *gorm.DB) *entryGorm {
	return &entryGorm{db: db}
}

var (
	_ usecase.EntryRepository = (*entryGorm)(nil)
	_ usecase.MetricResolver  = (*entryGorm)(nil)
)

// Create は新しいエントリーを保存し、採番されたIDを書き戻します。
func (r *entryGorm) Create(ctx context.Context, entry *entity.Entry) error {
	model := &EntryModel{
		UserID:    entry.UserID,
		MetricID:  entry.MetricID,
		Value:     entry.Value,
		Timestamp: entry.Timestamp,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}
	entry.ID = model.ID
	return nil
}

// DeleteByMetricID は指定メトリクスの全エントリーを削除します。
// メトリクス削除時のカスケードとしてcatalogユースケースから呼ばれます。
func (r *entryGorm) DeleteByMetricID(ctx context.Context, userID, metricID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND metric_id = ?", userID, metricID).
		Delete(&EntryModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete entries: %w", err)
	}
	return nil
}

// ResolveMetricID はメトリクス名をIDに解決します。
func (r *entryGorm) ResolveMetricID(ctx context.Context, userID uint, name string) (uint, error) {
	var row struct{ ID uint }
	err := r.db.WithContext(ctx).
		Table("metrics").
		Select("id").
		Where("user_id = ? AND name = ?", userID, name).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, usecase.ErrMetricNotFound
		}
		return 0, fmt.Errorf("failed to resolve metric: %w", err)
	}
	return row.ID, nil
}
