// Package chartimg は売上高系列の棒グラフをPNGとして描画するアダプターを提供します。
package chartimg

import (
	"bytes"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"

	"report_backend/internal/feature/report/domain/entity"
	"report_backend/internal/feature/report/usecase"
)

const (
	// ChartTitle はグラフのタイトルです。
	ChartTitle = "CIM Financials Quarterly Revenue"
	// YAxisName はY軸のラベルです。
	YAxisName = "Revenue (in thousands)"
	// XAxisLabelRotation はX軸の四半期ラベルの回転角（度）です。
	XAxisLabelRotation = 45

	barWidth   = 28
	barSpacing = 18
	// minCanvasWidth / canvasHeight は描画キャンバスの下限サイズです。
	// 幅は系列長に応じて広げ、棒がキャンバスに収まらない描画エラーを防ぎます。
	minCanvasWidth = 800
	canvasHeight   = 480
	sideMargin     = 120
)

// RevenueChartRenderer はgo-chartで棒グラフPNGを生成するChartRenderer実装です。
// 描画ごとに新しいチャート値を組み立てるため、呼び出し間で共有される状態はありません。
type RevenueChartRenderer struct{}

// RevenueChartRendererがusecase.ChartRendererを実装していることをコンパイル時に検証します。
var _ usecase.ChartRenderer = (*RevenueChartRenderer)(nil)

// NewRevenueChartRenderer はRevenueChartRendererの新しいインスタンスを生成します。
func NewRevenueChartRenderer() *RevenueChartRenderer {
	return &RevenueChartRenderer{}
}

// RenderRevenueChart は系列全体の棒グラフをPNGバイト列として描画します。
// 欠損値（NaN）は高さ0の棒として描画し、四半期の位置を保持します。
func (r *RevenueChartRenderer) RenderRevenueChart(series entity.RevenueSeries) ([]byte, error) {
	if len(series.Values) == 0 {
		return nil, fmt.Errorf("revenue series is empty")
	}
	if len(series.Periods) != len(series.Values) {
		return nil, fmt.Errorf("series has %d labels for %d values", len(series.Periods), len(series.Values))
	}

	bars := make([]chart.Value, 0, len(series.Values))
	for i, v := range series.Values {
		if math.IsNaN(v) {
			v = 0
		}
		bars = append(bars, chart.Value{Label: series.Periods[i], Value: v})
	}

	width := len(bars)*(barWidth+barSpacing) + sideMargin
	if width < minCanvasWidth {
		width = minCanvasWidth
	}

	bc := chart.BarChart{
		Title:      ChartTitle,
		Width:      width,
		Height:     canvasHeight,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		XAxis: chart.Style{
			TextRotationDegrees: XAxisLabelRotation,
		},
		YAxis: chart.YAxis{
			Name: YAxisName,
		},
		// 負の売上高も基準線0から下向きに描画する
		UseBaseValue: true,
		BaseValue:    0,
		Bars:         bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render revenue chart: %w", err)
	}
	return buf.Bytes(), nil
}
