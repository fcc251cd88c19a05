package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifetrack_backend/internal/feature/analytics/domain/entity"
	"lifetrack_backend/internal/feature/analytics/usecase"
	jwtmw "lifetrack_backend/internal/platform/jwt"
)

// mockAnalyticsUsecase is a mock implementation of the AnalyticsUsecase interface.
type mockAnalyticsUsecase struct {
	TimeSeriesFunc  func(ctx context.Context, userID uint, metricName string, days int) ([]entity.Point, error)
	CorrelationFunc func(ctx context.Context, userID uint, metric1, metric2 string, days int, opts usecase.CorrelationOptions) (*entity.CorrelationResult, error)
}

func (m *mockAnalyticsUsecase) TimeSeries(ctx context.Context, userID uint, metricName string, days int) ([]entity.Point, error) {
	if m.TimeSeriesFunc != nil {
		return m.TimeSeriesFunc(ctx, userID, metricName, days)
	}
	return nil, nil
}

func (m *mockAnalyticsUsecase) Correlation(ctx context.Context, userID uint, metric1, metric2 string, days int, opts usecase.CorrelationOptions) (*entity.CorrelationResult, error) {
	if m.CorrelationFunc != nil {
		return m.CorrelationFunc(ctx, userID, metric1, metric2, days, opts)
	}
	return &entity.CorrelationResult{Metric1: metric1, Metric2: metric2, WindowDays: 7}, nil
}

func newRouter(h *AnalyticsHandler, userID uint) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, userID)
		c.Next()
	})
	router.GET("/analytics/series/:name", h.TimeSeries)
	router.GET("/analytics/correlation", h.Correlation)
	return router
}

func performGET(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()

	req, _ := http.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAnalyticsHandler_TimeSeries(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns points for the metric", func(t *testing.T) {
		mock := &mockAnalyticsUsecase{
			TimeSeriesFunc: func(ctx context.Context, userID uint, metricName string, days int) ([]entity.Point, error) {
				assert.Equal(t, uint(1), userID)
				assert.Equal(t, "Steps", metricName)
				assert.Equal(t, 30, days)
				return []entity.Point{
					{Date: "2026-08-27", Value: 4000},
					{Date: "2026-08-28", Value: 9000},
				}, nil
			},
		}
		router := newRouter(NewAnalyticsHandler(mock), 1)

		w := performGET(t, router, "/analytics/series/Steps?days=30")

		require.Equal(t, http.StatusOK, w.Code)

		var res struct {
			Metric string         `json:"metric"`
			Points []entity.Point `json:"points"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "Steps", res.Metric)
		require.Len(t, res.Points, 2)
		assert.Equal(t, 4000.0, res.Points[0].Value)
	})

	t.Run("missing days defaults to zero", func(t *testing.T) {
		var gotDays = -1
		mock := &mockAnalyticsUsecase{
			TimeSeriesFunc: func(ctx context.Context, userID uint, metricName string, days int) ([]entity.Point, error) {
				gotDays = days
				return nil, nil
			},
		}
		router := newRouter(NewAnalyticsHandler(mock), 1)

		w := performGET(t, router, "/analytics/series/Steps")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, gotDays)
	})

	t.Run("malformed days maps to 400", func(t *testing.T) {
		router := newRouter(NewAnalyticsHandler(&mockAnalyticsUsecase{}), 1)
		w := performGET(t, router, "/analytics/series/Steps?days=week")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown metric maps to 404", func(t *testing.T) {
		mock := &mockAnalyticsUsecase{
			TimeSeriesFunc: func(ctx context.Context, userID uint, metricName string, days int) ([]entity.Point, error) {
				return nil, usecase.ErrMetricNotFound
			},
		}
		router := newRouter(NewAnalyticsHandler(mock), 1)

		w := performGET(t, router, "/analytics/series/NoSuch")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAnalyticsHandler_Correlation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns the correlation result", func(t *testing.T) {
		r := 0.83
		mock := &mockAnalyticsUsecase{
			CorrelationFunc: func(ctx context.Context, userID uint, metric1, metric2 string, days int, opts usecase.CorrelationOptions) (*entity.CorrelationResult, error) {
				assert.Equal(t, "Hours of Sleep", metric1)
				assert.Equal(t, "Mood", metric2)
				assert.False(t, opts.AggregateMean)
				return &entity.CorrelationResult{
					Metric1: metric1, Metric2: metric2, WindowDays: 7,
					Pairs: 5, Coefficient: &r,
				}, nil
			},
		}
		router := newRouter(NewAnalyticsHandler(mock), 1)

		w := performGET(t, router, "/analytics/correlation?metric1=Hours%20of%20Sleep&metric2=Mood")

		require.Equal(t, http.StatusOK, w.Code)

		var res entity.CorrelationResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, 5, res.Pairs)
		require.NotNil(t, res.Coefficient)
		assert.Equal(t, r, *res.Coefficient)
	})

	t.Run("nil coefficient serializes as JSON null", func(t *testing.T) {
		mock := &mockAnalyticsUsecase{
			CorrelationFunc: func(ctx context.Context, userID uint, metric1, metric2 string, days int, opts usecase.CorrelationOptions) (*entity.CorrelationResult, error) {
				return &entity.CorrelationResult{Metric1: metric1, Metric2: metric2, WindowDays: 7}, nil
			},
		}
		router := newRouter(NewAnalyticsHandler(mock), 1)

		w := performGET(t, router, "/analytics/correlation?metric1=A&metric2=B")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"coefficient":null`)
	})

	t.Run("aggregate=mean is passed through", func(t *testing.T) {
		var gotOpts usecase.CorrelationOptions
		mock := &mockAnalyticsUsecase{
			CorrelationFunc: func(ctx context.Context, userID uint, metric1, metric2 string, days int, opts usecase.CorrelationOptions) (*entity.CorrelationResult, error) {
				gotOpts = opts
				return &entity.CorrelationResult{}, nil
			},
		}
		router := newRouter(NewAnalyticsHandler(mock), 1)

		w := performGET(t, router, "/analytics/correlation?metric1=A&metric2=B&aggregate=mean")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, gotOpts.AggregateMean)
	})

	t.Run("unsupported aggregate maps to 400", func(t *testing.T) {
		router := newRouter(NewAnalyticsHandler(&mockAnalyticsUsecase{}), 1)
		w := performGET(t, router, "/analytics/correlation?metric1=A&metric2=B&aggregate=median")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing metric params maps to 400", func(t *testing.T) {
		router := newRouter(NewAnalyticsHandler(&mockAnalyticsUsecase{}), 1)
		w := performGET(t, router, "/analytics/correlation?metric1=A")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
