package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"lifetrack_backend/internal/app/router"
	analyticsadapters "lifetrack_backend/internal/feature/analytics/adapters"
	analyticshandler "lifetrack_backend/internal/feature/analytics/transport/handler"
	analyticsusecase "lifetrack_backend/internal/feature/analytics/usecase"
	authadapters "lifetrack_backend/internal/feature/auth/adapters"
	authhandler "lifetrack_backend/internal/feature/auth/transport/handler"
	authusecase "lifetrack_backend/internal/feature/auth/usecase"
	catalogadapters "lifetrack_backend/internal/feature/catalog/adapters"
	cataloghandler "lifetrack_backend/internal/feature/catalog/transport/handler"
	catalogusecase "lifetrack_backend/internal/feature/catalog/usecase"
	entriesadapters "lifetrack_backend/internal/feature/entries/adapters"
	entryhandler "lifetrack_backend/internal/feature/entries/transport/handler"
	entriesusecase "lifetrack_backend/internal/feature/entries/usecase"
	"lifetrack_backend/internal/platform/cache"
	platformdb "lifetrack_backend/internal/platform/db"
	platformjwt "lifetrack_backend/internal/platform/jwt"
	platformredis "lifetrack_backend/internal/platform/redis"
	"lifetrack_backend/internal/platform/session"
	"lifetrack_backend/internal/shared/ratelimiter"
)

func main() {
	// .envは開発用。本番では環境変数を直接設定する
	_ = godotenv.Load()

	// db
	db := platformdb.OpenDB()

	// Redis（セッションストア兼キャッシュ）
	rdb, err := platformredis.NewRedisClient()
	if err != nil {
		log.Fatal("Redis is required for refresh sessions: ", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Println("[ERROR] Failed to close Redis client:", err)
		}
	}()

	// JWT
	secret := os.Getenv(platformjwt.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}
	tokens := platformjwt.NewGenerator(secret, 15*time.Minute)

	// Repository
	userRepo := authadapters.NewUserGorm(db)
	sessionRepo := session.NewSessionRedis(rdb, "session")
	catalogRepo := catalogadapters.NewCatalogGorm(db)
	entryRepo := entriesadapters.NewEntryGorm(db)
	seriesRepo := analyticsadapters.NewSeriesGorm(db)

	// Redisキャッシュでラップ。ttl=0で次の深夜0時に自動失効
	cachedSeries := cache.NewCachingSeriesRepository(rdb, 0, seriesRepo, "series")
	// エントリーの書き込みで系列キャッシュを無効化
	invalidatingEntries := cache.NewInvalidatingEntryRepository(entryRepo, cachedSeries)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, tokens, 7*24*time.Hour, 5)
	catalogUC := catalogusecase.NewCatalogUsecase(catalogRepo, invalidatingEntries)
	entriesUC := entriesusecase.NewEntryUsecase(invalidatingEntries, entryRepo)
	analyticsUC := analyticsusecase.NewAnalyticsUsecase(cachedSeries)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	catalogH := cataloghandler.NewCatalogHandler(catalogUC)
	entriesH := entryhandler.NewEntryHandler(entriesUC)
	analyticsH := analyticshandler.NewAnalyticsHandler(analyticsUC)

	// 認証エンドポイントのレート制限（IP単位）
	loginLimiter := ratelimiter.NewRateLimiter(10, time.Minute)

	// ルータ生成
	r := router.NewRouter(authH, catalogH, entriesH, analyticsH, loginLimiter)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
