// Package db はGORMによるデータベース接続とマイグレーションを提供します。
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gmysql "gorm.io/driver/mysql"
	gsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authentity "lifetrack_backend/internal/feature/auth/domain/entity"
	catalogadapters "lifetrack_backend/internal/feature/catalog/adapters"
	entriesadapters "lifetrack_backend/internal/feature/entries/adapters"
)

const (
	// DriverSQLite はローカルファイル保存用のsqliteドライバーです。
	DriverSQLite = "sqlite"
	// DriverMySQL はサーバー運用時のmysqlドライバーです。
	DriverMySQL = "mysql"

	// DefaultSQLitePath はDB_PATH未設定時のデータベースファイルです。
	DefaultSQLitePath = "lifetrack.db"

	connectTimeout = 60 * time.Second
	retryInterval  = 3 * time.Second
)

// Config はデータベース接続設定を保持します。
type Config struct {
	Driver string // "sqlite"（デフォルト）または "mysql"
	Path   string // sqliteのデータベースファイルパス

	// mysql用
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	InstanceName string // Cloud SQL接続名（設定時はUnixソケット接続）
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	return Config{
		Driver:       os.Getenv("DB_DRIVER"),
		Path:         os.Getenv("DB_PATH"),
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		Host:         os.Getenv("DB_HOST"),
		Port:         os.Getenv("DB_PORT"),
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
	}
}

// BuildDSN はmysql用のDSN文字列を生成します。
// InstanceNameが設定されている場合はCloud SQLのUnixソケット接続を優先します。
func BuildDSN(cfg Config) string {
	if cfg.InstanceName != "" {
		return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.User, cfg.Password, cfg.InstanceName, cfg.Name)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
}

// OpenFunc はDSNからgorm.DBを開く関数です。テストで差し替え可能にします。
type OpenFunc func(dsn string) (*gorm.DB, error)

// ConnectWithRetry は接続に成功するまでリトライし、タイムアウト後はエラーを返します。
func ConnectWithRetry(dsn string, timeout time.Duration, open OpenFunc) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %v: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(retryInterval)
	}
}

// gormConfig は全ドライバー共通のGORM設定を返します。
// TranslateErrorによりユニークキー違反がgorm.ErrDuplicatedKeyに正規化されます。
func gormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

// Open は設定に応じたドライバーでデータベースを開きます。
func Open(cfg Config) (*gorm.DB, error) {
	switch cfg.Driver {
	case DriverMySQL:
		return ConnectWithRetry(BuildDSN(cfg), connectTimeout, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(gmysql.Open(dsn), gormConfig())
		})
	case DriverSQLite, "":
		path := cfg.Path
		if path == "" {
			path = DefaultSQLitePath
		}
		return gorm.Open(gsqlite.Open(path), gormConfig())
	default:
		return nil, fmt.Errorf("unsupported db driver: %q", cfg.Driver)
	}
}

// Migrate はスキーマのマイグレーションを実行します。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&authentity.User{},
		&catalogadapters.CategoryModel{},
		&catalogadapters.MetricModel{},
		&entriesadapters.EntryModel{},
	)
}

// OpenDB は環境変数の設定でデータベースを開き、必要ならマイグレーションします。
// 接続できない場合はプロセスを終了します。
func OpenDB() *gorm.DB {
	cfg := LoadConfigFromEnv()

	db, err := Open(cfg)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := Migrate(db); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
