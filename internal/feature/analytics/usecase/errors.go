package usecase

import "errors"

var (
	// ErrMetricNotFound は指定された名前のメトリクスが存在しない場合のエラー
	ErrMetricNotFound = errors.New("metric not found")
	// ErrInvalidWindow は分析ウィンドウの日数が不正な場合のエラー
	ErrInvalidWindow = errors.New("window days must be positive")
)
