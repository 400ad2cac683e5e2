package pdfdoc

import (
	"bytes"
	"strings"
	"testing"

	"report_backend/internal/feature/report/adapters/chartimg"
	"report_backend/internal/feature/report/adapters/pdftext"
	"report_backend/internal/feature/report/domain/entity"
)

// renderChartPNG renders a real chart so the assembler receives a valid PNG,
// the same bytes the pipeline would hand it.
func renderChartPNG(t *testing.T) []byte {
	t.Helper()

	png, err := chartimg.NewRevenueChartRenderer().RenderRevenueChart(entity.RevenueSeries{
		Periods: []string{"Q1 2016", "Q2 2016", "Q3 2016", "Q4 2016", "Q1 2017", "Q2 2017"},
		Values:  []float64{950000, 1000000, -1388100, 980000, 1100000, 1200000},
	})
	if err != nil {
		t.Fatalf("failed to render chart fixture: %v", err)
	}
	return png
}

// With no font files present the assembler must still produce a usable PDF,
// marked degraded and carrying the fallback warning.
func TestReportAssembler_Assemble_FallbackWithoutFonts(t *testing.T) {
	t.Parallel()

	assembler := NewReportAssembler(Config{FontDir: t.TempDir()})

	doc, err := assembler.Assemble("Margins held steady.", renderChartPNG(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.PDF) == 0 {
		t.Fatal("expected non-empty PDF bytes")
	}
	if !bytes.HasPrefix(doc.PDF, []byte("%PDF-")) {
		t.Error("expected PDF header")
	}
	if !doc.Degraded {
		t.Error("expected degraded flag when fonts are absent")
	}
	if doc.Warning != FallbackWarning {
		t.Errorf("warning mismatch: got %q", doc.Warning)
	}
}

// The title and narrative written into the PDF must be recoverable by the
// same extractor the pipeline uses for uploads, and the chart must be
// embedded as an image object.
func TestReportAssembler_Assemble_NarrativeRoundTrip(t *testing.T) {
	t.Parallel()

	narrative := "Revenue grew 20.00 percent. Outlook for the café segment is stable."
	assembler := NewReportAssembler(Config{FontDir: t.TempDir()})

	doc, err := assembler.Assemble(narrative, renderChartPNG(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text, err := pdftext.NewDocumentTextExtractor().ExtractText(doc.PDF)
	if err != nil {
		t.Fatalf("failed to extract text from assembled PDF: %v", err)
	}

	if !strings.Contains(text, ReportTitle) {
		t.Errorf("expected title %q in extracted text, got %q", ReportTitle, text)
	}
	if !strings.Contains(text, "Revenue grew 20.00 percent.") {
		t.Errorf("expected narrative in extracted text, got %q", text)
	}
	// cp1252-representable characters survive the fallback font
	if !strings.Contains(text, "café") {
		t.Errorf("expected accented text to survive, got %q", text)
	}

	if !bytes.Contains(doc.PDF, []byte("/Subtype /Image")) {
		t.Error("expected an embedded image object in the PDF")
	}
}

func TestReportAssembler_Assemble_EmptyChart(t *testing.T) {
	t.Parallel()

	assembler := NewReportAssembler(Config{FontDir: t.TempDir()})

	if _, err := assembler.Assemble("text", nil); err == nil {
		t.Fatal("expected error for empty chart image, got nil")
	}
}

func TestToCP1252(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "ascii passthrough", in: "Plain ASCII 123.", want: "Plain ASCII 123."},
		{name: "latin-1 mapped to single bytes", in: "café", want: "caf\xe9"},
		{name: "cp1252 extras mapped", in: "5–10% — est.", want: "5\x9610% \x97 est."},
		{name: "unrepresentable become question marks", in: "売上高", want: "???"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toCP1252(tt.in); got != tt.want {
				t.Errorf("toCP1252(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
