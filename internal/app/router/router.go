package router

import (
	"github.com/gin-gonic/gin"

	analyticshandler "lifetrack_backend/internal/feature/analytics/transport/handler"
	authhandler "lifetrack_backend/internal/feature/auth/transport/handler"
	cataloghandler "lifetrack_backend/internal/feature/catalog/transport/handler"
	entryhandler "lifetrack_backend/internal/feature/entries/transport/handler"
	"lifetrack_backend/internal/platform/http/handler"
	jwtmw "lifetrack_backend/internal/platform/jwt"
	"lifetrack_backend/internal/shared/ratelimiter"
)

func NewRouter(
	authHandler *authhandler.AuthHandler,
	catalog *cataloghandler.CatalogHandler,
	entries *entryhandler.EntryHandler,
	analytics *analyticshandler.AnalyticsHandler,
	loginLimiter *ratelimiter.RateLimiter,
) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)

	// 認証エンドポイントはクレデンシャル総当たり対策でIP単位のレート制限をかける
	public := r.Group("/")
	public.Use(loginLimiter.Middleware())
	{
		// 新規ユーザー登録
		public.POST("/signup", authHandler.Signup)
		// ログイン（JWT 発行）
		public.POST("/login", authHandler.Login)
		// リフレッシュトークンの交換
		public.POST("/refresh", authHandler.Refresh)
	}

	// 認証必須のルート
	auth := r.Group("/")
	// リクエストヘッダーに JWT が必要になる
	auth.Use(jwtmw.AuthRequired())
	{
		auth.POST("/logout", authHandler.Logout)

		// カタログ管理
		auth.GET("/metrics", catalog.ListMetrics)
		auth.POST("/metrics", catalog.CreateMetric)
		auth.PATCH("/metrics/:name", catalog.UpdateMetric)
		auth.DELETE("/metrics/:name", catalog.DeleteMetric)
		auth.POST("/categories", catalog.CreateCategory)
		auth.DELETE("/categories/:name", catalog.DeleteCategory)
		auth.POST("/catalog/defaults", catalog.SeedDefaults)

		// 記録
		auth.POST("/entries", entries.Record)

		// 分析
		auth.GET("/analytics/series/:name", analytics.TimeSeries)
		auth.GET("/analytics/correlation", analytics.Correlation)
	}

	return r
}
