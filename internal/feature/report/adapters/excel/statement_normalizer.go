// Package excel は損益計算書ワークブック（.xlsx）から売上高系列を抽出するアダプターを提供します。
package excel

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"report_backend/internal/feature/report/domain"
	"report_backend/internal/feature/report/domain/entity"
	"report_backend/internal/feature/report/usecase"
)

const (
	// SheetName は読み取り対象のシート名です。
	SheetName = "Income Statement"
	// HeaderRowIndex はヘッダー行の0始まり行番号です（先頭3行はタイトル等）。
	HeaderRowIndex = 3
	// DropRowLabel は集計に含めないメタ行のラベルです。この行の存在は
	// シート構造の前提なので、見つからない場合はエラーにします。
	DropRowLabel = "3 Months Ending"
	// RevenueRowLabel は抽出対象の純売上高行のラベルです。
	RevenueRowLabel = "Net Revenue"
	// dataStartColumn はデータ開始列です。列0はラベル、列1は通期等の非四半期列で捨てます。
	dataStartColumn = 2
)

// StatementNormalizer はexcelizeでワークブックを読み取るStatementNormalizer実装です。
type StatementNormalizer struct{}

// StatementNormalizerがusecase.StatementNormalizerを実装していることをコンパイル時に検証します。
var _ usecase.StatementNormalizer = (*StatementNormalizer)(nil)

// NewStatementNormalizer はStatementNormalizerの新しいインスタンスを生成します。
func NewStatementNormalizer() *StatementNormalizer {
	return &StatementNormalizer{}
}

// ParseNetRevenue はワークブックのバイト列から純売上高の時系列を抽出します。
//
// シート構造の前提:
//   - シート名は "Income Statement"
//   - 行インデックス3がヘッダー行（四半期ラベルは列2以降）
//   - "3 Months Ending" 行が存在する（日付メタ行、捨てる）
//   - "Net Revenue" 行が存在する（抽出対象）
//
// 数値化できないセルはNaNとして系列に残します。
func (s *StatementNormalizer) ParseNetRevenue(data []byte) (entity.RevenueSeries, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return entity.RevenueSeries{}, fmt.Errorf("%w: %v", domain.ErrStatementFormat, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close workbook", "error", err)
		}
	}()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		var notExist excelize.ErrSheetNotExist
		if errors.As(err, &notExist) {
			return entity.RevenueSeries{}, fmt.Errorf("%w: %q", domain.ErrSheetNotFound, SheetName)
		}
		return entity.RevenueSeries{}, fmt.Errorf("%w: %v", domain.ErrStatementFormat, err)
	}
	if len(rows) <= HeaderRowIndex {
		return entity.RevenueSeries{}, fmt.Errorf("%w: header row %d is missing", domain.ErrStatementFormat, HeaderRowIndex)
	}

	header := rows[HeaderRowIndex]
	if len(header) < dataStartColumn {
		return entity.RevenueSeries{}, fmt.Errorf("%w: header row has no quarter columns", domain.ErrStatementFormat)
	}
	periods := make([]string, 0, len(header)-dataStartColumn)
	for _, label := range header[dataStartColumn:] {
		periods = append(periods, strings.TrimSpace(label))
	}

	var revenueRow []string
	foundRevenue := false
	foundDropRow := false
	for _, row := range rows[HeaderRowIndex+1:] {
		if len(row) == 0 {
			continue
		}
		switch strings.TrimSpace(row[0]) {
		case DropRowLabel:
			foundDropRow = true
		case RevenueRowLabel:
			foundRevenue = true
			revenueRow = row
		}
	}
	if !foundDropRow {
		return entity.RevenueSeries{}, fmt.Errorf("%w: %q", domain.ErrRowNotFound, DropRowLabel)
	}
	if !foundRevenue {
		return entity.RevenueSeries{}, fmt.Errorf("%w: %q", domain.ErrRowNotFound, RevenueRowLabel)
	}

	values := make([]float64, len(periods))
	for i := range periods {
		cell := ""
		if idx := i + dataStartColumn; idx < len(revenueRow) {
			cell = revenueRow[idx]
		}
		values[i] = parseRevenueCell(cell)
	}

	return entity.RevenueSeries{Periods: periods, Values: values}, nil
}

// parseRevenueCell はセル文字列をfloat64に変換します。
// 3桁区切りのカンマは除去し、空欄や数値でない文字列はNaNを返します。
func parseRevenueCell(raw string) float64 {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
