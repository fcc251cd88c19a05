// Package adapters はcatalogフィーチャーの永続化アダプターを実装します。
package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lifetrack_backend/internal/feature/catalog/domain/entity"
	"lifetrack_backend/internal/feature/catalog/usecase"
)

// CategoryModel はcategoriesテーブルのGORMモデルです。
// 名前の一意性はユーザー単位です。
type CategoryModel struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_categories_user_name"`
	Name   string `gorm:"size:64;not null;uniqueIndex:idx_categories_user_name"`
}

// TableName はGORMのデフォルト命名を上書きします。
func (CategoryModel) TableName() string { return "categories" }

// MetricModel はmetricsテーブルのGORMモデルです。
// ガイダンスフィールドは種別に応じてNULLになります。
type MetricModel struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;uniqueIndex:idx_metrics_user_name"`
	CategoryID  uint   `gorm:"not null;index"`
	Name        string `gorm:"size:64;not null;uniqueIndex:idx_metrics_user_name"`
	Kind        string `gorm:"size:16;not null;check:kind IN ('quantitative','qualitative')"`
	MinValue    float64
	MaxValue    *float64
	Description string `gorm:"size:255"`
	Example     *string
	ExampleLow  *string
	ExampleHigh *string
}

// TableName はGORMのデフォルト命名を上書きします。
func (MetricModel) TableName() string { return "metrics" }

// catalogGorm はGORMを用いたCatalogRepositoryの実装です。
type catalogGorm struct {
	db *gorm.DB
}

// NewCatalogGorm はcatalogGormの新しいインスタンスを生成します。
func NewCatalogGorm(db *gorm.DB) usecase.CatalogRepository {
	return &catalogGorm{db: db}
}

var _ usecase.CatalogRepository = (*catalogGorm)(nil)

func toCategoryEntity(m *CategoryModel) *entity.Category {
	return &entity.Category{ID: m.ID, UserID: m.UserID, Name: m.Name}
}

func toMetricModel(e *entity.Metric) *MetricModel {
	return &MetricModel{
		ID:          e.ID,
		UserID:      e.UserID,
		CategoryID:  e.CategoryID,
		Name:        e.Name,
		Kind:        e.Kind,
		MinValue:    e.MinValue,
		MaxValue:    e.MaxValue,
		Description: e.Description,
		Example:     e.Example,
		ExampleLow:  e.ExampleLow,
		ExampleHigh: e.ExampleHigh,
	}
}

func toMetricEntity(m *MetricModel) *entity.Metric {
	return &entity.Metric{
		ID:          m.ID,
		UserID:      m.UserID,
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Kind:        m.Kind,
		MinValue:    m.MinValue,
		MaxValue:    m.MaxValue,
		Description: m.Description,
		Example:     m.Example,
		ExampleLow:  m.ExampleLow,
		ExampleHigh: m.ExampleHigh,
	}
}

// CreateCategory は新しいカテゴリーを保存します。
// (user_id, name)の複合ユニークインデックス違反はErrDuplicateNameに変換します。
func (r *catalogGorm) CreateCategory(ctx context.Context, category *entity.Category) error {
	model := &CategoryModel{UserID: category.UserID, Name: category.Name}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: category %q", usecase.ErrDuplicateName, category.Name)
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	category.ID = model.ID
	return nil
}

// FindCategoryByID は指定ユーザーのカテゴリーをIDで取得します。
func (r *catalogGorm) FindCategoryByID(ctx context.Context, userID, id uint) (*entity.Category, error) {
	var model CategoryModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return toCategoryEntity(&model), nil
}

// FindCategoryByName は指定ユーザーのカテゴリーを名前で取得します。
func (r *catalogGorm) FindCategoryByName(ctx context.Context, userID uint, name string) (*entity.Category, error) {
	var model CategoryModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return toCategoryEntity(&model), nil
}

// DeleteCategoryByID はカテゴリーを削除します。
func (r *catalogGorm) DeleteCategoryByID(ctx context.Context, userID, id uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&CategoryModel{}, id).Error
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// CreateMetric は新しいメトリクスを保存します。
func (r *catalogGorm) CreateMetric(ctx context.Context, metric *entity.Metric) error {
	model := toMetricModel(metric)
	model.ID = 0
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: metric %q", usecase.ErrDuplicateName, metric.Name)
		}
		return fmt.Errorf("failed to create metric: %w", err)
	}
	metric.ID = model.ID
	return nil
}

// FindMetricByName は指定ユーザーのメトリクスを名前で取得します。
func (r *catalogGorm) FindMetricByName(ctx context.Context, userID uint, name string) (*entity.Metric, error) {
	var model MetricModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrMetricNotFound
		}
		return nil, fmt.Errorf("failed to find metric: %w", err)
	}
	return toMetricEntity(&model), nil
}

// SaveMetric は既存メトリクスの全フィールドを保存します。
// Saveを使うことで、nilに戻されたガイダンスフィールドもNULLで書き込まれます。
func (r *catalogGorm) SaveMetric(ctx context.Context, metric *entity.Metric) error {
	if err := r.db.WithContext(ctx).Save(toMetricModel(metric)).Error; err != nil {
		return fmt.Errorf("failed to save metric: %w", err)
	}
	return nil
}

// DeleteMetricByID はメトリクスを削除します。
func (r *catalogGorm) DeleteMetricByID(ctx context.Context, userID, id uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&MetricModel{}, id).Error
	if err != nil {
		return fmt.Errorf("failed to delete metric: %w", err)
	}
	return nil
}

// ListMetricsByCategoryID はカテゴリー内のメトリクスを名前順で取得します。
func (r *catalogGorm) ListMetricsByCategoryID(ctx context.Context, userID, categoryID uint) ([]entity.Metric, error) {
	var models []MetricModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list metrics: %w", err)
	}

	metrics := make([]entity.Metric, 0, len(models))
	for i := range models {
		metrics = append(metrics, *toMetricEntity(&models[i]))
	}
	return metrics, nil
}

// ListCatalog は全メトリクスをカテゴリー名・メトリクス名の昇順で取得します。
func (r *catalogGorm) ListCatalog(ctx context.Context, userID uint) ([]entity.CatalogItem, error) {
	var rows []struct {
		ID           uint
		UserID       uint
		CategoryID   uint
		Name         string
		Kind         string
		MinValue     float64
		MaxValue     *float64
		Description  string
		Example      *string
		ExampleLow   *string
		ExampleHigh  *string
		CategoryName string
	}
	err := r.db.WithContext(ctx).
		Table("metrics").
		Select("metrics.*, categories.name AS category_name").
		Joins("JOIN categories ON categories.id = metrics.category_id").
		Where("metrics.user_id = ?", userID).
		Order("categories.name ASC, metrics.name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}

	items := make([]entity.CatalogItem, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		items = append(items, entity.CatalogItem{
			Category: row.CategoryName,
			Metric: entity.Metric{
				ID:          row.ID,
				UserID:      row.UserID,
				CategoryID:  row.CategoryID,
				Name:        row.Name,
				Kind:        row.Kind,
				MinValue:    row.MinValue,
				MaxValue:    row.MaxValue,
				Description: row.Description,
				Example:     row.Example,
				ExampleLow:  row.ExampleLow,
				ExampleHigh: row.ExampleHigh,
			},
		})
	}
	return items, nil
}
