package cache

import (
	"context"
	"log/slog"

	entriesentity "lifetrack_backend/internal/feature/entries/domain/entity"
	entriesusecase "lifetrack_backend/internal/feature/entries/usecase"
)

// InvalidatingEntryRepository は EntryRepository をデコレートし、
// 書き込みのたびに当該ユーザーの系列キャッシュを無効化します。
type InvalidatingEntryRepository struct {
	inner entriesusecase.EntryRepository
	cache *CachingSeriesRepository
}

// NewInvalidatingEntryRepository はInvalidatingEntryRepositoryの新しいインスタンスを生成します。
func NewInvalidatingEntryRepository(inner entriesusecase.EntryRepository, cache *CachingSeriesRepository) *InvalidatingEntryRepository {
	return &InvalidatingEntryRepository{inner: inner, cache: cache}
}

var _ entriesusecase.EntryRepository = (*InvalidatingEntryRepository)(nil)

// Create はまず本体へ書き込み、その後キャッシュを無効化します。
// 無効化の失敗で書き込みは失敗させません。
func (r *InvalidatingEntryRepository) Create(ctx context.Context, entry *entriesentity.Entry) error {
	if err := r.inner.Create(ctx, entry); err != nil {
		return err
	}
	if err := r.cache.InvalidateUser(ctx, entry.UserID); err != nil {
		slog.Warn("failed to invalidate series cache", "error", err, "user_id", entry.UserID)
	}
	return nil
}

// DeleteByMetricID はまず本体から削除し、その後キャッシュを無効化します。
func (r *InvalidatingEntryRepository) DeleteByMetricID(ctx context.Context, userID, metricID uint) error {
	if err := r.inner.DeleteByMetricID(ctx, userID, metricID); err != nil {
		return err
	}
	if err := r.cache.InvalidateUser(ctx, userID); err != nil {
		slog.Warn("failed to invalidate series cache", "error", err, "user_id", userID)
	}
	return nil
}
