// Package entity はreportフィーチャーのドメインモデルを定義します。
package entity

// RevenueSeries は損益計算書から抽出した四半期ごとの純売上高の時系列を表します。
// 並び順はシートの列順をそのまま保持します。
type RevenueSeries struct {
	Periods []string  // 四半期ラベル（例: "Q3 2016"）
	Values  []float64 // 純売上高（千単位）。数値化できなかったセルはmath.NaN()
}

// FinancialSnapshot は最新四半期と前年同期の売上高比較を表します。
type FinancialSnapshot struct {
	LatestRevenue   float64 // 最新四半期の純売上高
	PreviousRevenue float64 // 前年同期（4期前）の純売上高
	GrowthPercent   float64 // 前年同期比の変化率（%）
}
