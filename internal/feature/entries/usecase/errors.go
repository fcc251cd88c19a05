package usecase

import "errors"

var (
	// ErrMetricNotFound は指定された名前のメトリクスが存在しない場合のエラー
	ErrMetricNotFound = errors.New("metric not found")
)
