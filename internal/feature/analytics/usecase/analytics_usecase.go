// Package usecase はanalyticsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"lifetrack_backend/internal/feature/analytics/domain/entity"
)

// dateLayout は日次バケットのキーフォーマット
const dateLayout = "2006-01-02"

// defaultWindowDays はウィンドウ未指定時の分析期間
const defaultWindowDays = 7

// Observation はストアから取得した生の観測値です。
type Observation struct {
	Timestamp time.Time
	Value     float64
}

// SeriesRepository は分析用の時系列取得を抽象化します。
// メトリクスが存在しない場合はErrMetricNotFoundを返します。
type SeriesRepository interface {
	// FindSeries は指定メトリクスのfrom以降の観測値をtimestamp昇順で取得します。
	FindSeries(ctx context.Context, userID uint, metricName string, from time.Time) ([]Observation, error)
}

// CorrelationOptions は相関分析のオプションです。
type CorrelationOptions struct {
	// AggregateMean がtrueの場合、ペアリング前に各日の観測値を平均に集約します。
	// falseの場合、同じ日の全観測値の組み合わせをペアとして展開します。
	AggregateMean bool
}

// analyticsUsecase は時系列と相関の分析ユースケースを実装します。
type analyticsUsecase struct {
	series SeriesRepository
	now    func() time.Time
}

// NewAnalyticsUsecase はanalyticsUsecaseの新しいインスタンスを生成します。
func NewAnalyticsUsecase(series SeriesRepository) *analyticsUsecase {
	return &analyticsUsecase{series: series, now: time.Now}
}

// windowStart はローカルタイムで(今日 - days)日の0時を返します。
// 日付単位のバケットと整合するよう、時刻ではなく日付でウィンドウを切ります。
func (au *analyticsUsecase) windowStart(days int) time.Time {
	now := au.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -days)
}

func normalizeWindow(days int) (int, error) {
	if days < 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidWindow, days)
	}
	if days == 0 {
		return defaultWindowDays, nil
	}
	return days, nil
}

// TimeSeries は直近days日分の観測値を日付バケットで返します。
// 同じ日に複数回記録されたメトリクスは複数ポイントになります。
func (au *analyticsUsecase) TimeSeries(ctx context.Context, userID uint, metricName string, days int) ([]entity.Point, error) {
	days, err := normalizeWindow(days)
	if err != nil {
		return nil, err
	}

	observations, err := au.series.FindSeries(ctx, userID, metricName, au.windowStart(days))
	if err != nil {
		return nil, err
	}

	points := make([]entity.Point, 0, len(observations))
	for _, o := range observations {
		points = append(points, entity.Point{
			Date:  o.Timestamp.Local().Format(dateLayout),
			Value: o.Value,
		})
	}
	return points, nil
}

// Correlation は2つのメトリクスのピアソン相関係数を計算します。
// 両方に観測がある日だけが寄与し、観測のない日は欠損として無視されます
// （ゼロ埋めすると相関を捏造するため）。重複記録された日はデフォルトで
// 全組み合わせに展開され、その日の重みが観測数に比例して増えます。
func (au *analyticsUsecase) Correlation(ctx context.Context, userID uint, metric1, metric2 string, days int, opts CorrelationOptions) (*entity.CorrelationResult, error) {
	days, err := normalizeWindow(days)
	if err != nil {
		return nil, err
	}
	from := au.windowStart(days)

	// 未知のメトリクス名は日付結合がゼロ行になるだけで、エラーにはしない
	series1, err := au.findSeriesLenient(ctx, userID, metric1, from)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", metric1, err)
	}
	series2, err := au.findSeriesLenient(ctx, userID, metric2, from)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", metric2, err)
	}

	buckets1 := bucketByDate(series1)
	buckets2 := bucketByDate(series2)
	if opts.AggregateMean {
		buckets1 = collapseToMean(buckets1)
		buckets2 = collapseToMean(buckets2)
	}

	xs, ys := pairAcrossDates(buckets1, buckets2)

	result := &entity.CorrelationResult{
		Metric1:    metric1,
		Metric2:    metric2,
		WindowDays: days,
		Pairs:      len(xs),
	}
	if r, ok := pearson(xs, ys); ok {
		result.Coefficient = &r
	}
	return result, nil
}

// findSeriesLenient は系列を取得し、メトリクス未登録を空系列として扱います。
func (au *analyticsUsecase) findSeriesLenient(ctx context.Context, userID uint, metricName string, from time.Time) ([]Observation, error) {
	observations, err := au.series.FindSeries(ctx, userID, metricName, from)
	if errors.Is(err, ErrMetricNotFound) {
		return nil, nil
	}
	return observations, err
}

// bucketByDate は観測値をローカル日付ごとにまとめます。
func bucketByDate(observations []Observation) map[string][]float64 {
	buckets := make(map[string][]float64)
	for _, o := range observations {
		date := o.Timestamp.Local().Format(dateLayout)
		buckets[date] = append(buckets[date], o.Value)
	}
	return buckets
}

// collapseToMean は各日のバケットを平均1点に置き換えます。
func collapseToMean(buckets map[string][]float64) map[string][]float64 {
	out := make(map[string][]float64, len(buckets))
	for date, values := range buckets {
		var sum float64
		for _, v := range values {
			sum += v
		}
		out[date] = []float64{sum / float64(len(values))}
	}
	return out
}

// pairAcrossDates は両方に観測がある日付だけを対象に、
// その日の観測値の全組み合わせを(x, y)ペアとして展開します。
// 日付順に走査し、決定的な結果を返します。
func pairAcrossDates(buckets1, buckets2 map[string][]float64) (xs, ys []float64) {
	dates := make([]string, 0, len(buckets1))
	for date := range buckets1 {
		if _, ok := buckets2[date]; ok {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)

	for _, date := range dates {
		for _, x := range buckets1[date] {
			for _, y := range buckets2[date] {
				xs = append(xs, x)
				ys = append(ys, y)
			}
		}
	}
	return xs, ys
}

// pearson はピアソンの積率相関係数を計算します。
// ペアが空、またはどちらかの分散がゼロの場合は定義されず、okはfalseになります。
func pearson(xs, ys []float64) (float64, bool) {
	n := float64(len(xs))
	if n == 0 {
		return 0, false
	}

	var sumX, sumY, sumXY, sumXX, sumYY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
		sumYY += ys[i] * ys[i]
	}

	cov := n*sumXY - sumX*sumY
	varX := n*sumXX - sumX*sumX
	varY := n*sumYY - sumY*sumY
	if varX <= 0 || varY <= 0 {
		return 0, false
	}
	return cov / math.Sqrt(varX*varY), true
}
