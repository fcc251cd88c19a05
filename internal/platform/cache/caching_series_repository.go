// Package cache は分析クエリのRedisキャッシュ層を提供します。
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"lifetrack_backend/internal/feature/analytics/usecase"
)

// CachingSeriesRepository は SeriesRepository を Redis キャッシュでデコレートします。
type CachingSeriesRepository struct {
	inner     usecase.SeriesRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingSeriesRepository は SeriesRepository を Redis キャッシュでデコレートします。
// ttl=0 の場合は次のローカル深夜0時までにフォールバックします（日次バケットの境界）。
// namespace が空なら "series" を使います。rdb=nil の場合はキャッシュせず素通しします。
func NewCachingSeriesRepository(rdb *redis.Client, ttl time.Duration, inner usecase.SeriesRepository, namespace string) *CachingSeriesRepository {
	if namespace == "" {
		namespace = "series"
	}
	return &CachingSeriesRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

var _ usecase.SeriesRepository = (*CachingSeriesRepository)(nil)

// FindSeries はキャッシュを確認し、ミス時はストアから取得して保存します。
// キャッシュ操作の失敗は本処理を妨げません。
func (c *CachingSeriesRepository) FindSeries(ctx context.Context, userID uint, metricName string, from time.Time) ([]usecase.Observation, error) {
	// Redis 未設定なら素通し
	if c.rdb == nil {
		return c.inner.FindSeries(ctx, userID, metricName, from)
	}

	key := c.cacheKey(userID, metricName, from)

	// 1) キャッシュヒット確認
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []usecase.Observation
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// 壊れていたら落とす
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) ストアへフォールバック
	out, err := c.inner.FindSeries(ctx, userID, metricName, from)
	if err != nil {
		return nil, err
	}

	// 3) キャッシュ保存（ベストエフォート）
	if b, err := json.Marshal(out); err == nil {
		ttl := c.ttl
		if ttl <= 0 {
			ttl = TimeUntilNextMidnight()
		}
		_ = c.rdb.Set(ctx, key, b, ttl).Err()
	}

	return out, nil
}

// InvalidateUser は指定ユーザーの系列キャッシュを全て無効化します。
// エントリーの記録や削除の後に呼ばれます。
func (c *CachingSeriesRepository) InvalidateUser(ctx context.Context, userID uint) error {
	if c.rdb == nil {
		return nil
	}
	return c.deleteByPattern(ctx, fmt.Sprintf("%s:%d:*", c.namespace, userID))
}

func (c *CachingSeriesRepository) cacheKey(userID uint, metricName string, from time.Time) string {
	return fmt.Sprintf("%s:%d:%s:%s",
		c.namespace,
		userID,
		safe(metricName),
		from.Format("2006-01-02"),
	)
}

func (c *CachingSeriesRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

func safe(s string) string {
	// Redis キーに使いづらい記号の簡易エスケープ
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
