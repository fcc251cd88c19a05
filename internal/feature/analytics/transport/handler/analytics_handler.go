// Package handler はanalyticsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lifetrack_backend/internal/feature/analytics/domain/entity"
	"lifetrack_backend/internal/feature/analytics/transport/http/dto"
	"lifetrack_backend/internal/feature/analytics/usecase"
	jwtmw "lifetrack_backend/internal/platform/jwt"
)

// AnalyticsUsecase は時系列・相関分析のユースケースを定義します。
type AnalyticsUsecase interface {
	TimeSeries(ctx context.Context, userID uint, metricName string, days int) ([]entity.Point, error)
	Correlation(ctx context.Context, userID uint, metric1, metric2 string, days int, opts usecase.CorrelationOptions) (*entity.CorrelationResult, error)
}

// AnalyticsHandler は分析クエリのHTTPリクエストを処理します。
type AnalyticsHandler struct {
	analytics AnalyticsUsecase
}

// NewAnalyticsHandler はAnalyticsHandlerの新しいインスタンスを生成します。
func NewAnalyticsHandler(analytics AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// parseDays はdaysクエリパラメータを解釈します。未指定は0（デフォルト扱い）。
func parseDays(c *gin.Context) (int, bool) {
	raw := c.Query("days")
	if raw == "" {
		return 0, true
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return days, true
}

// TimeSeries は GET /analytics/series/:name を処理します。
// daysクエリで分析ウィンドウを指定できます（デフォルト7日）。
func (h *AnalyticsHandler) TimeSeries(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	days, ok := parseDays(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be an integer"})
		return
	}

	metric := c.Param("name")
	points, err := h.analytics.TimeSeries(c.Request.Context(), userID, metric, days)
	if err != nil {
		h.writeAnalyticsError(c, err, "time series")
		return
	}
	c.JSON(http.StatusOK, dto.SeriesResponse{Metric: metric, Points: points})
}

// Correlation は GET /analytics/correlation を処理します。
// metric1とmetric2は必須。aggregate=meanで日次平均に集約してからペアリングします。
func (h *AnalyticsHandler) Correlation(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	metric1 := c.Query("metric1")
	metric2 := c.Query("metric2")
	if metric1 == "" || metric2 == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "metric1 and metric2 are required"})
		return
	}

	days, ok := parseDays(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be an integer"})
		return
	}

	var opts usecase.CorrelationOptions
	switch c.Query("aggregate") {
	case "":
	case "mean":
		opts.AggregateMean = true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "aggregate must be \"mean\""})
		return
	}

	result, err := h.analytics.Correlation(c.Request.Context(), userID, metric1, metric2, days, opts)
	if err != nil {
		h.writeAnalyticsError(c, err, "correlation")
		return
	}
	c.JSON(http.StatusOK, result)
}

// writeAnalyticsError はユースケースのエラーをHTTPステータスに変換します。
func (h *AnalyticsHandler) writeAnalyticsError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, usecase.ErrMetricNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrInvalidWindow):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.Error("analytics query failed", "op", op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
