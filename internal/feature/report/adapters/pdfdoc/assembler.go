package pdfdoc

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"report_backend/internal/feature/report/domain/entity"
	"report_backend/internal/feature/report/usecase"
)

const (
	// ReportTitle はレポート1ページ目のタイトルです。
	ReportTitle = "SICOM Financial Analysis"
	// FallbackWarning はUnicodeフォントが見つからず組み込みフォントで
	// 組み立てた場合に利用者へ提示する警告です。
	FallbackWarning = "Font files not found. Falling back to Arial, which may cause errors with special characters."

	unicodeFamily   = "DejaVu"
	fallbackFamily  = "Arial"
	regularFontFile = "DejaVuSans.ttf"
	boldFontFile    = "DejaVuSans-Bold.ttf"

	chartImageName = "revenue-chart"
	// chartX / chartWidth はグラフ画像の配置（左端10mm、幅190mm = A4本文幅）です。
	chartX     = 10.0
	chartWidth = 190.0
)

// ReportAssembler はfpdfでPDFレポートを組み立てるReportAssembler実装です。
type ReportAssembler struct {
	cfg Config
}

// ReportAssemblerがusecase.ReportAssemblerを実装していることをコンパイル時に検証します。
var _ usecase.ReportAssembler = (*ReportAssembler)(nil)

// NewReportAssembler は指定された設定でReportAssemblerの新しいインスタンスを生成します。
func NewReportAssembler(cfg Config) *ReportAssembler {
	return &ReportAssembler{cfg: cfg}
}

// Assemble はタイトル・ナラティブ・グラフ画像を1つのA4縦PDFにまとめます。
//
// フォント: FontDirにDejaVuSans.ttf / DejaVuSans-Bold.ttfの両方があれば
// UTF-8フォントとして登録します。無い場合は組み込みのArialで代替し、
// 結果をDegradedとしてマークして警告を付けます（エラーにはしません）。
func (a *ReportAssembler) Assemble(narrative string, chartPNG []byte) (*entity.ReportDocument, error) {
	if len(chartPNG) == 0 {
		return nil, fmt.Errorf("chart image is empty")
	}

	doc := fpdf.New("P", "mm", "A4", "")

	family := fallbackFamily
	degraded := true
	regular := filepath.Join(a.cfg.FontDir, regularFontFile)
	bold := filepath.Join(a.cfg.FontDir, boldFontFile)
	if fileExists(regular) && fileExists(bold) {
		doc.AddUTF8Font(unicodeFamily, "", regular)
		doc.AddUTF8Font(unicodeFamily, "B", bold)
		family = unicodeFamily
		degraded = false
	}

	body := narrative
	if degraded {
		slog.Warn("unicode fonts unavailable, falling back to a built-in font",
			"font_dir", a.cfg.FontDir, "fallback", fallbackFamily)
		// 組み込みフォントはcp1252の1バイト文字しか扱えないため、
		// 表現できる文字はcp1252バイトに、それ以外は'?'に変換する
		body = toCP1252(narrative)
	}

	doc.AddPage()
	doc.SetFont(family, "B", 16)
	doc.CellFormat(0, 10, ReportTitle, "", 1, "C", false, 0, "")
	doc.SetFont(family, "", 11)
	doc.MultiCell(0, 5, body, "", "", false)
	doc.Ln(10)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader(chartImageName, opts, bytes.NewReader(chartPNG))
	doc.ImageOptions(chartImageName, chartX, 0, chartWidth, 0, true, opts, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write report pdf: %w", err)
	}

	out := &entity.ReportDocument{PDF: buf.Bytes(), Degraded: degraded}
	if degraded {
		out.Warning = FallbackWarning
	}
	return out, nil
}

// fileExists はpathが通常ファイルとして存在するかを返します。
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// cp1252Extras は0xA0未満のcp1252拡張領域に割り当てられた文字です。
var cp1252Extras = map[rune]byte{
	'€': 0x80, '‚': 0x82, 'ƒ': 0x83, '„': 0x84, '…': 0x85, '†': 0x86, '‡': 0x87,
	'ˆ': 0x88, '‰': 0x89, 'Š': 0x8a, '‹': 0x8b, 'Œ': 0x8c, 'Ž': 0x8e,
	'‘': 0x91, '’': 0x92, '“': 0x93, '”': 0x94, '•': 0x95, '–': 0x96, '—': 0x97,
	'˜': 0x98, '™': 0x99, 'š': 0x9a, '›': 0x9b, 'œ': 0x9c, 'ž': 0x9e, 'Ÿ': 0x9f,
}

// toCP1252 はUTF-8文字列をcp1252のバイト列（fpdfの組み込みフォントが
// 期待する1バイト表現）に変換します。表現できない文字は'?'に置き換えます。
func toCP1252(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r < 0x80:
			b.WriteByte(byte(r))
		case r >= 0xa0 && r <= 0xff:
			b.WriteByte(byte(r))
		default:
			if c, ok := cp1252Extras[r]; ok {
				b.WriteByte(c)
			} else {
				b.WriteByte('?')
			}
		}
	}
	return b.String()
}
