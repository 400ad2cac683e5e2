// Package usecase はreportフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"report_backend/internal/feature/report/domain"
	"report_backend/internal/feature/report/domain/entity"
)

const (
	// MaxUploadSize はアップロードファイル1件あたりの最大サイズ（20MB）です。
	MaxUploadSize = 20 * 1024 * 1024
	// MaxPromptTextChars はプロンプトに埋め込む抽出テキストの最大文字数（rune数）です。
	MaxPromptTextChars = 4000
	// YearAgoOffset は前年同期とみなす四半期の位置（末尾から4つ前）です。
	YearAgoOffset = 4
	// MinComparisonPeriods は前年同期比較に必要な最小の四半期数です。
	MinComparisonPeriods = YearAgoOffset + 1
)

// NarrativePromptTemplate はAIナラティブ生成のプロンプトテンプレートです。
// 埋め込み順: 最新売上高、前年同期売上高、変化率、抽出テキスト。
// Q3 2016の負の売上高に関する指示は入力データ既知の異常に対する固定文です。
const NarrativePromptTemplate = `You are a professional financial analyst for SICOM.
The latest quarterly revenue is %s.
The revenue for the same quarter last year was %s.
This represents a %s%% change.

The quarterly data also shows a significant negative revenue of -1,388.1M in Q3 2016.
Flag this in your analysis as a "Data Integrity Alert" and advise that it appears to be a data-entry error in the source file.

Analyze the following text from the financial report and provide a brief summary
of key performance indicators, risks, and outlook.

Text:
%s`

// StatementNormalizer は損益計算書ワークブックから売上高系列を抽出するリポジトリインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type StatementNormalizer interface {
	// ParseNetRevenue はワークブックのバイト列から純売上高の時系列を抽出します。
	ParseNetRevenue(data []byte) (entity.RevenueSeries, error)
}

// ChartRenderer は売上高系列から棒グラフPNGを描画するリポジトリインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ChartRenderer interface {
	// RenderRevenueChart は系列全体の棒グラフをPNGバイト列として描画します。
	RenderRevenueChart(series entity.RevenueSeries) ([]byte, error)
}

// TextExtractor はPDFドキュメントから本文テキストを抽出するリポジトリインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type TextExtractor interface {
	// ExtractText は全ページのプレーンテキストを連結して返します。
	ExtractText(data []byte) (string, error)
}

// NarrativeGenerator はプロンプトから分析ナラティブを生成するリポジトリインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type NarrativeGenerator interface {
	// Generate はプロンプトを外部AIサービスに送り、生成テキストを返します。
	Generate(ctx context.Context, prompt string) (string, error)
}

// ReportAssembler はナラティブとグラフをPDFレポートに組み立てるリポジトリインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ReportAssembler interface {
	// Assemble はタイトル・ナラティブ・グラフ画像を1つのPDFにまとめます。
	Assemble(narrative string, chartPNG []byte) (*entity.ReportDocument, error)
}

// reportUsecase はレポート生成パイプラインのビジネスロジックを提供します。
type reportUsecase struct {
	normalizer StatementNormalizer
	chart      ChartRenderer
	extractor  TextExtractor
	generator  NarrativeGenerator
	assembler  ReportAssembler
}

// NewReportUsecase はreportUsecaseの新しいインスタンスを生成します。
func NewReportUsecase(n StatementNormalizer, c ChartRenderer, t TextExtractor, g NarrativeGenerator, a ReportAssembler) *reportUsecase {
	return &reportUsecase{normalizer: n, chart: c, extractor: t, generator: g, assembler: a}
}

// GenerateReport は2つのアップロードファイルからPDFレポートを生成します。
// パイプライン: 正規化 → 指標算出 → グラフ描画 → テキスト抽出 → ナラティブ生成 → PDF組み立て。
// 最初に失敗したステージで処理を打ち切り、エラーを返します。
func (u *reportUsecase) GenerateReport(ctx context.Context, statement, document []byte) (*entity.ReportDocument, error) {
	if len(statement) == 0 {
		return nil, domain.ErrMissingStatement
	}
	if len(document) == 0 {
		return nil, domain.ErrMissingDocument
	}
	if len(statement) > MaxUploadSize {
		return nil, fmt.Errorf("%w: statement is %d bytes (max %d)", domain.ErrUploadTooLarge, len(statement), MaxUploadSize)
	}
	if len(document) > MaxUploadSize {
		return nil, fmt.Errorf("%w: document is %d bytes (max %d)", domain.ErrUploadTooLarge, len(document), MaxUploadSize)
	}

	reportID := uuid.NewString()
	start := time.Now()
	slog.Info("report.generate.start", "report_id", reportID,
		"statement_bytes", len(statement), "document_bytes", len(document))

	series, err := u.normalizer.ParseNetRevenue(statement)
	if err != nil {
		return nil, fmt.Errorf("normalize statement: %w", err)
	}
	slog.Info("report.statement.ok", "report_id", reportID, "periods", len(series.Periods))

	// 指標はグラフ描画より先に確定させる。系列が比較に足りない場合、
	// ここで打ち切ることで後続ステージの無駄な実行を避ける。
	snapshot, err := DeriveSnapshot(series)
	if err != nil {
		return nil, err
	}
	slog.Info("report.metrics.ok", "report_id", reportID,
		"latest", snapshot.LatestRevenue, "previous", snapshot.PreviousRevenue,
		"growth_pct", snapshot.GrowthPercent)

	chartPNG, err := u.chart.RenderRevenueChart(series)
	if err != nil {
		return nil, fmt.Errorf("render revenue chart: %w", err)
	}
	slog.Info("report.chart.ok", "report_id", reportID, "png_bytes", len(chartPNG))

	text, err := u.extractor.ExtractText(document)
	if err != nil {
		return nil, fmt.Errorf("extract document text: %w", err)
	}
	slog.Info("report.text.ok", "report_id", reportID, "chars", utf8.RuneCountInString(text))

	prompt := BuildNarrativePrompt(snapshot, text)
	narrative, err := u.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNarrativeService, err)
	}
	slog.Info("report.narrative.ok", "report_id", reportID, "chars", utf8.RuneCountInString(narrative))

	doc, err := u.assembler.Assemble(narrative, chartPNG)
	if err != nil {
		return nil, fmt.Errorf("assemble report: %w", err)
	}
	slog.Info("report.generate.ok", "report_id", reportID, "pdf_bytes", len(doc.PDF),
		"degraded_font", doc.Degraded, "elapsed_ms", time.Since(start).Milliseconds())
	return doc, nil
}

// DeriveSnapshot は売上高系列から最新・前年同期・変化率のスナップショットを算出します。
// 系列が5四半期に満たない、比較対象が欠損、前年同期が0のいずれかの場合はエラーを返します。
func DeriveSnapshot(series entity.RevenueSeries) (entity.FinancialSnapshot, error) {
	n := len(series.Values)
	if n < MinComparisonPeriods {
		return entity.FinancialSnapshot{}, fmt.Errorf("%w: have %d periods, need %d",
			domain.ErrInsufficientPeriods, n, MinComparisonPeriods)
	}

	latest := series.Values[n-1]
	previous := series.Values[n-1-YearAgoOffset]
	if math.IsNaN(latest) || math.IsNaN(previous) {
		return entity.FinancialSnapshot{}, fmt.Errorf("%w: %s vs %s",
			domain.ErrMissingValue, periodLabel(series, n-1), periodLabel(series, n-1-YearAgoOffset))
	}
	if previous == 0 {
		return entity.FinancialSnapshot{}, domain.ErrZeroBaseline
	}

	return entity.FinancialSnapshot{
		LatestRevenue:   latest,
		PreviousRevenue: previous,
		GrowthPercent:   (latest - previous) / previous * 100,
	}, nil
}

// BuildNarrativePrompt はスナップショットと抽出テキストからプロンプトを組み立てます。
// テキストは先頭MaxPromptTextChars文字に切り詰めます。
func BuildNarrativePrompt(snapshot entity.FinancialSnapshot, documentText string) string {
	return fmt.Sprintf(NarrativePromptTemplate,
		formatRevenue(snapshot.LatestRevenue),
		formatRevenue(snapshot.PreviousRevenue),
		fmt.Sprintf("%.2f", snapshot.GrowthPercent),
		truncateRunes(documentText, MaxPromptTextChars))
}

// formatRevenue は売上高を小数点なし・3桁区切りで整形します（例: 1,234,567）。
func formatRevenue(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

// truncateRunes はsを先頭limit文字（rune数）に切り詰めます。
func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

// periodLabel は位置iの四半期ラベルを返します。ラベルが無い場合は位置番号を返します。
func periodLabel(series entity.RevenueSeries, i int) string {
	if i >= 0 && i < len(series.Periods) {
		return series.Periods[i]
	}
	return fmt.Sprintf("period %d", i)
}
