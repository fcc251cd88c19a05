// Package handler はcatalogフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"lifetrack_backend/internal/feature/catalog/domain/entity"
	"lifetrack_backend/internal/feature/catalog/transport/http/dto"
	"lifetrack_backend/internal/feature/catalog/usecase"
	jwtmw "lifetrack_backend/internal/platform/jwt"
)

// CatalogUsecase はカテゴリー・メトリクス管理のユースケースを定義します。
type CatalogUsecase interface {
	CreateCategory(ctx context.Context, userID uint, name string) (uint, error)
	CreateMetric(ctx context.Context, userID, categoryID uint, def usecase.MetricDefinition) (uint, error)
	UpdateMetric(ctx context.Context, userID uint, name string, update usecase.MetricUpdate) error
	DeleteMetric(ctx context.Context, userID uint, name string) error
	DeleteCategory(ctx context.Context, userID uint, name string) error
	ListMetrics(ctx context.Context, userID uint) ([]entity.CatalogItem, error)
	SeedDefaultCatalog(ctx context.Context, userID uint) error
}

// CatalogHandler はカタログ管理のHTTPリクエストを処理します。
type CatalogHandler struct {
	catalog CatalogUsecase
}

// NewCatalogHandler はCatalogHandlerの新しいインスタンスを生成します。
func NewCatalogHandler(catalog CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// CreateCategory は POST /categories を処理します。
// - 重複名は409
// - 空の名前は400
// - 成功時は201でIDを返却
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req dto.CreateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	id, err := h.catalog.CreateCategory(c.Request.Context(), userID, req.Name)
	if err != nil {
		h.writeCatalogError(c, err, "create category")
		return
	}
	c.JSON(http.StatusCreated, dto.CreateCategoryResponse{ID: id})
}

// DeleteCategory は DELETE /categories/:name を処理します。
// カテゴリー配下の全メトリクスと全エントリーもまとめて削除されます。
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.catalog.DeleteCategory(c.Request.Context(), userID, c.Param("name")); err != nil {
		h.writeCatalogError(c, err, "delete category")
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateMetric は POST /metrics を処理します。
func (h *CatalogHandler) CreateMetric(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req dto.CreateMetricReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	def := usecase.MetricDefinition{
		Name:        req.Name,
		Kind:        req.Kind,
		MinValue:    req.MinValue,
		MaxValue:    req.MaxValue,
		Description: req.Description,
		Example:     req.Example,
		ExampleLow:  req.ExampleLow,
		ExampleHigh: req.ExampleHigh,
	}
	id, err := h.catalog.CreateMetric(c.Request.Context(), userID, req.CategoryID, def)
	if err != nil {
		h.writeCatalogError(c, err, "create metric")
		return
	}
	c.JSON(http.StatusCreated, dto.CreateMetricResponse{ID: id})
}

// UpdateMetric は PATCH /metrics/:name を処理します。
// ボディに含まれないフィールドは現在の値を保持します。
func (h *CatalogHandler) UpdateMetric(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req dto.UpdateMetricReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	update := usecase.MetricUpdate{
		MinValue:    req.MinValue,
		MaxValue:    req.MaxValue,
		Description: req.Description,
		Example:     req.Example,
		ExampleLow:  req.ExampleLow,
		ExampleHigh: req.ExampleHigh,
	}
	if err := h.catalog.UpdateMetric(c.Request.Context(), userID, c.Param("name"), update); err != nil {
		h.writeCatalogError(c, err, "update metric")
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteMetric は DELETE /metrics/:name を処理します。
func (h *CatalogHandler) DeleteMetric(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.catalog.DeleteMetric(c.Request.Context(), userID, c.Param("name")); err != nil {
		h.writeCatalogError(c, err, "delete metric")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMetrics は GET /metrics を処理します。
// カテゴリー名・メトリクス名の昇順で全メトリクスを返します。
func (h *CatalogHandler) ListMetrics(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	items, err := h.catalog.ListMetrics(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to list metrics", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	res := make([]dto.MetricResponse, 0, len(items))
	for _, item := range items {
		res = append(res, dto.MetricResponse{
			ID:          item.Metric.ID,
			Category:    item.Category,
			Name:        item.Metric.Name,
			Kind:        item.Metric.Kind,
			MinValue:    item.Metric.MinValue,
			MaxValue:    item.Metric.MaxValue,
			Description: item.Metric.Description,
			Example:     item.Metric.Example,
			ExampleLow:  item.Metric.ExampleLow,
			ExampleHigh: item.Metric.ExampleHigh,
		})
	}
	c.JSON(http.StatusOK, gin.H{"metrics": res})
}

// SeedDefaults は POST /catalog/defaults を処理します。
// 既定の3カテゴリー・7メトリクスを新規ユーザー向けに投入します。
func (h *CatalogHandler) SeedDefaults(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.catalog.SeedDefaultCatalog(c.Request.Context(), userID); err != nil {
		h.writeCatalogError(c, err, "seed defaults")
		return
	}
	c.Status(http.StatusCreated)
}

// writeCatalogError はユースケースのエラーをHTTPステータスに変換します。
func (h *CatalogHandler) writeCatalogError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, usecase.ErrDuplicateName):
		c.JSON(http.StatusConflict, gin.H{"error": "name already in use"})
	case errors.Is(err, usecase.ErrInvalidDefinition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrMetricNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "metric not found"})
	case errors.Is(err, usecase.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
	default:
		slog.Error("catalog operation failed", "op", op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
