// Package handler はentriesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lifetrack_backend/internal/feature/entries/transport/http/dto"
	"lifetrack_backend/internal/feature/entries/usecase"
	jwtmw "lifetrack_backend/internal/platform/jwt"
)

// dateLayout は過去日付指定のフォーマット
const dateLayout = "2006-01-02"

// EntryUsecase はエントリー記録のユースケースを定義します。
type EntryUsecase interface {
	Record(ctx context.Context, userID uint, metricName string, value float64, timestamp time.Time) (uint, error)
}

// EntryHandler はエントリー記録のHTTPリクエストを処理します。
type EntryHandler struct {
	entries EntryUsecase
}

// NewEntryHandler はEntryHandlerの新しいインスタンスを生成します。
func NewEntryHandler(entries EntryUsecase) *EntryHandler {
	return &EntryHandler{entries: entries}
}

// Record は POST /entries を処理します。
// - dateが指定された場合はローカルタイムのその日の0時として記録
// - 不正なdateは400
// - 存在しないメトリクスは404
// - 成功時は201でIDを返却
func (h *EntryHandler) Record(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req dto.RecordEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var timestamp time.Time
	if req.Date != "" {
		parsed, err := time.ParseInLocation(dateLayout, req.Date, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
			return
		}
		timestamp = parsed
	}

	id, err := h.entries.Record(c.Request.Context(), userID, req.Metric, *req.Value, timestamp)
	if err != nil {
		if errors.Is(err, usecase.ErrMetricNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "metric not found"})
			return
		}
		slog.Error("failed to record entry", "error", err, "user_id", userID, "metric", req.Metric)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, dto.RecordEntryResponse{ID: id})
}
