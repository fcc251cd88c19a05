// Package usecase はcatalogフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"

	"lifetrack_backend/internal/feature/catalog/domain/entity"
)

// CatalogRepository はカテゴリーとメトリクス定義の永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type CatalogRepository interface {
	// CreateCategory は新しいカテゴリーを永続化します。
	// (userID, name)が既に存在する場合、ErrDuplicateNameを返します。
	CreateCategory(ctx context.Context, category *entity.Category) error

	// FindCategoryByID は指定ユーザーのカテゴリーをIDで取得します。
	FindCategoryByID(ctx context.Context, userID, id uint) (*entity.Category, error)

	// FindCategoryByName は指定ユーザーのカテゴリーを名前で取得します。
	FindCategoryByName(ctx context.Context, userID uint, name string) (*entity.Category, error)

	// DeleteCategoryByID はカテゴリーを削除します。
	DeleteCategoryByID(ctx context.Context, userID, id uint) error

	// CreateMetric は新しいメトリクスを永続化します。
	// (userID, name)が既に存在する場合、ErrDuplicateNameを返します。
	CreateMetric(ctx context.Context, metric *entity.Metric) error

	// FindMetricByName は指定ユーザーのメトリクスを名前で取得します。
	FindMetricByName(ctx context.Context, userID uint, name string) (*entity.Metric, error)

	// SaveMetric は既存メトリクスの全フィールドを保存します。
	SaveMetric(ctx context.Context, metric *entity.Metric) error

	// DeleteMetricByID はメトリクスを削除します。
	DeleteMetricByID(ctx context.Context, userID, id uint) error

	// ListMetricsByCategoryID はカテゴリー内のメトリクスを取得します。
	ListMetricsByCategoryID(ctx context.Context, userID, categoryID uint) ([]entity.Metric, error)

	// ListCatalog はカテゴリー名・メトリクス名の昇順で全メトリクスを取得します。
	ListCatalog(ctx context.Context, userID uint) ([]entity.CatalogItem, error)
}

// EntryRemover はメトリクス削除時のエントリーのカスケード削除を抽象化します。
// カスケードはストアの暗黙動作ではなく、このユースケースが明示的に実行します。
type EntryRemover interface {
	// DeleteByMetricID は指定メトリクスの全エントリーを削除します。
	DeleteByMetricID(ctx context.Context, userID, metricID uint) error
}

// MetricDefinition はメトリクス作成時の入力です。
type MetricDefinition struct {
	Name        string
	Kind        string
	MinValue    float64
	MaxValue    *float64 // nilは上限なし
	Description string
	Example     *string
	ExampleLow  *string
	ExampleHigh *string
}

// MetricUpdate は部分更新の入力です。nilのフィールドは変更されません
// （「空欄は現状維持」であり「空欄はクリア」ではない）。
type MetricUpdate struct {
	MinValue    *float64
	MaxValue    *float64
	Description *string
	Example     *string
	ExampleLow  *string
	ExampleHigh *string
}

// catalogUsecase はカテゴリー・メトリクス管理のユースケースを実装します。
type catalogUsecase struct {
	catalog CatalogRepository
	entries EntryRemover
}

// NewCatalogUsecase はcatalogUsecaseの新しいインスタンスを生成します。
func NewCatalogUsecase(catalog CatalogRepository, entries EntryRemover) *catalogUsecase {
	return &catalogUsecase{catalog: catalog, entries: entries}
}

// CreateCategory は新しいカテゴリーを作成し、そのIDを返します。
func (cu *catalogUsecase) CreateCategory(ctx context.Context, userID uint, name string) (uint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: category name must not be empty", ErrInvalidDefinition)
	}

	category := &entity.Category{UserID: userID, Name: name}
	if err := cu.catalog.CreateCategory(ctx, category); err != nil {
		return 0, err
	}
	return category.ID, nil
}

// validateDefinition はメトリクス定義のバリデーションを行い、
// 種別に応じてガイダンスフィールドを正規化します。書き込み前に必ず呼ばれます。
func validateDefinition(def *MetricDefinition) error {
	def.Name = strings.TrimSpace(def.Name)
	if def.Name == "" {
		return fmt.Errorf("%w: metric name must not be empty", ErrInvalidDefinition)
	}

	switch def.Kind {
	case entity.KindQuantitative:
		// 定量メトリクスは単一のexampleのみを持つ
		def.ExampleLow = nil
		def.ExampleHigh = nil
	case entity.KindQualitative:
		// 定性メトリクスは両端のガイダンスが必須
		if def.ExampleLow == nil || def.ExampleHigh == nil {
			return fmt.Errorf("%w: qualitative metrics require example_low and example_high", ErrInvalidDefinition)
		}
		def.Example = nil
	default:
		return fmt.Errorf("%w: kind must be %q or %q", ErrInvalidDefinition, entity.KindQuantitative, entity.KindQualitative)
	}

	if def.MaxValue != nil && def.MinValue > *def.MaxValue {
		return fmt.Errorf("%w: min_value %g exceeds max_value %g", ErrInvalidDefinition, def.MinValue, *def.MaxValue)
	}

	return nil
}

// CreateMetric は新しいメトリクスを作成し、そのIDを返します。
// カテゴリーは呼び出したユーザーのものでなければなりません。
func (cu *catalogUsecase) CreateMetric(ctx context.Context, userID, categoryID uint, def MetricDefinition) (uint, error) {
	if err := validateDefinition(&def); err != nil {
		return 0, err
	}

	if _, err := cu.catalog.FindCategoryByID(ctx, userID, categoryID); err != nil {
		return 0, err
	}

	metric := &entity.Metric{
		UserID:      userID,
		CategoryID:  categoryID,
		Name:        def.Name,
		Kind:        def.Kind,
		MinValue:    def.MinValue,
		MaxValue:    def.MaxValue,
		Description: def.Description,
		Example:     def.Example,
		ExampleLow:  def.ExampleLow,
		ExampleHigh: def.ExampleHigh,
	}
	if err := cu.catalog.CreateMetric(ctx, metric); err != nil {
		return 0, err
	}
	return metric.ID, nil
}

// UpdateMetric はメトリクスを部分更新します。nilのフィールドは元の値を保持します。
func (cu *catalogUsecase) UpdateMetric(ctx context.Context, userID uint, name string, update MetricUpdate) error {
	metric, err := cu.catalog.FindMetricByName(ctx, userID, name)
	if err != nil {
		return err
	}

	if update.MinValue != nil {
		metric.MinValue = *update.MinValue
	}
	if update.MaxValue != nil {
		metric.MaxValue = update.MaxValue
	}
	if update.Description != nil {
		metric.Description = *update.Description
	}
	if update.Example != nil {
		metric.Example = update.Example
	}
	if update.ExampleLow != nil {
		metric.ExampleLow = update.ExampleLow
	}
	if update.ExampleHigh != nil {
		metric.ExampleHigh = update.ExampleHigh
	}

	return cu.catalog.SaveMetric(ctx, metric)
}

// DeleteMetric はメトリクスとその全エントリーを削除します。
// エントリー削除→メトリクス削除の順で、カスケードを明示的に実行します。
// 破壊的で元に戻せない操作のため、事前確認は呼び出し側（シェル）の責務です。
func (cu *catalogUsecase) DeleteMetric(ctx context.Context, userID uint, name string) error {
	metric, err := cu.catalog.FindMetricByName(ctx, userID, name)
	if err != nil {
		return err
	}

	if err := cu.entries.DeleteByMetricID(ctx, userID, metric.ID); err != nil {
		return err
	}
	return cu.catalog.DeleteMetricByID(ctx, userID, metric.ID)
}

// DeleteCategory はカテゴリーと、その全メトリクス・全エントリーを削除します。
func (cu *catalogUsecase) DeleteCategory(ctx context.Context, userID uint, name string) error {
	category, err := cu.catalog.FindCategoryByName(ctx, userID, name)
	if err != nil {
		return err
	}

	metrics, err := cu.catalog.ListMetricsByCategoryID(ctx, userID, category.ID)
	if err != nil {
		return err
	}
	for _, m := range metrics {
		if err := cu.entries.DeleteByMetricID(ctx, userID, m.ID); err != nil {
			return err
		}
		if err := cu.catalog.DeleteMetricByID(ctx, userID, m.ID); err != nil {
			return err
		}
	}

	return cu.catalog.DeleteCategoryByID(ctx, userID, category.ID)
}

// ListMetrics はカテゴリー名・メトリクス名の昇順で全メトリクスを返します。
func (cu *catalogUsecase) ListMetrics(ctx context.Context, userID uint) ([]entity.CatalogItem, error) {
	return cu.catalog.ListCatalog(ctx, userID)
}

// SeedDefaultCatalog はデフォルトの3カテゴリー・7メトリクスを作成します。
// シーケンシャルな挿入であり、トランザクションではありません:
// 2回目の呼び出しは名前重複で途中失敗し、それ以前の挿入は残ります。
func (cu *catalogUsecase) SeedDefaultCatalog(ctx context.Context, userID uint) error {
	for _, dc := range DefaultCatalog() {
		categoryID, err := cu.CreateCategory(ctx, userID, dc.Name)
		if err != nil {
			return err
		}
		for _, def := range dc.Metrics {
			if _, err := cu.CreateMetric(ctx, userID, categoryID, def); err != nil {
				return err
			}
		}
	}
	return nil
}
