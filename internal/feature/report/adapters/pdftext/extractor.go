// Package pdftext はPDFドキュメントから本文テキストを抽出するアダプターを提供します。
// 純Go実装のledongthuc/pdfを使うため、CGOや外部コマンドは不要です。
package pdftext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"report_backend/internal/feature/report/domain"
	"report_backend/internal/feature/report/usecase"
)

// pdfMagic はPDFファイルの先頭バイト列です。
var pdfMagic = []byte("%PDF-")

// DocumentTextExtractor はledongthuc/pdfで全ページのテキストを抽出するTextExtractor実装です。
type DocumentTextExtractor struct{}

// DocumentTextExtractorがusecase.TextExtractorを実装していることをコンパイル時に検証します。
var _ usecase.TextExtractor = (*DocumentTextExtractor)(nil)

// NewDocumentTextExtractor はDocumentTextExtractorの新しいインスタンスを生成します。
func NewDocumentTextExtractor() *DocumentTextExtractor {
	return &DocumentTextExtractor{}
}

// ExtractText は全ページのプレーンテキストをページ順に区切りなしで連結して返します。
// 画像のみのページやテキストを取り出せないページは読み飛ばします。
func (e *DocumentTextExtractor) ExtractText(data []byte) (string, error) {
	if !bytes.HasPrefix(data, pdfMagic) {
		return "", fmt.Errorf("%w: missing %%PDF- header", domain.ErrDocumentFormat)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrDocumentFormat, err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}
