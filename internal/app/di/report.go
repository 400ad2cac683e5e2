// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"os"

	"report_backend/internal/feature/report/adapters/chartimg"
	"report_backend/internal/feature/report/adapters/excel"
	"report_backend/internal/feature/report/adapters/gemini"
	"report_backend/internal/feature/report/adapters/openai"
	"report_backend/internal/feature/report/adapters/pdfdoc"
	"report_backend/internal/feature/report/adapters/pdftext"
	"report_backend/internal/feature/report/transport/handler"
	"report_backend/internal/feature/report/usecase"
	infrahttp "report_backend/internal/platform/http"
)

// NewNarrativeGenerator creates the narrative provider selected by
// REPORT_LLM_PROVIDER ("openai" by default, "gemini" as the alternate).
// A missing credential for the selected provider is returned as an error so
// the process refuses to start without one.
func NewNarrativeGenerator(ctx context.Context) (usecase.NarrativeGenerator, error) {
	provider := os.Getenv("REPORT_LLM_PROVIDER")
	if provider == "" {
		provider = "openai"
	}

	switch provider {
	case "openai":
		cfg := openai.LoadConfig()
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set")
		}
		httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
		return openai.NewOpenAINarrator(cfg, httpClient), nil
	case "gemini":
		if os.Getenv("GEMINI_API_KEY") == "" && os.Getenv("GOOGLE_API_KEY") == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set")
		}
		return gemini.NewGeminiNarrator(ctx)
	default:
		return nil, fmt.Errorf("unknown narrative provider %q", provider)
	}
}

// NewReportHandler creates a report handler with the full pipeline wired in:
// excelize normalizer, go-chart renderer, PDF text extractor, the given
// narrative generator and the fpdf assembler.
func NewReportHandler(generator usecase.NarrativeGenerator) *handler.ReportHandler {
	uc := usecase.NewReportUsecase(
		excel.NewStatementNormalizer(),
		chartimg.NewRevenueChartRenderer(),
		pdftext.NewDocumentTextExtractor(),
		generator,
		pdfdoc.NewReportAssembler(pdfdoc.LoadConfig()),
	)
	return handler.NewReportHandler(uc)
}
