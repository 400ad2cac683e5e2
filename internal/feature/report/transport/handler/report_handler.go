// Package handler はreportフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"report_backend/internal/api"
	"report_backend/internal/feature/report/domain"
	"report_backend/internal/feature/report/domain/entity"
)

// ReportFileName はダウンロードされるレポートのファイル名です。
const ReportFileName = "SICOM_Report.pdf"

// reportPageHTML はアップロードページです。2つのファイル選択と生成ボタンのみを持つ
// 静的な単一ページで、テンプレート変数はありません。
const reportPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>SICOM AI Report Generator</title>
<style>
  body { font-family: sans-serif; max-width: 640px; margin: 40px auto; padding: 0 16px; color: #222; }
  h1 { font-size: 1.4rem; }
  form { border: 1px solid #ccc; border-radius: 8px; padding: 24px; }
  label { display: block; margin: 16px 0 4px; font-weight: bold; }
  button { margin-top: 24px; padding: 10px 24px; font-size: 1rem; cursor: pointer; }
  #status { margin-top: 16px; color: #555; }
</style>
</head>
<body>
<h1>SICOM AI Report Generator</h1>
<p>Upload the quarterly financial statements (.xlsx) and the narrative report (.pdf),
then generate the combined analysis PDF.</p>
<form method="POST" action="/v1/reports" enctype="multipart/form-data"
      onsubmit="document.getElementById('status').textContent='Generating report... this can take a minute.'">
  <label for="statement">Financial statements (.xlsx)</label>
  <input type="file" id="statement" name="statement" accept=".xlsx" required>
  <label for="document">Narrative report (.pdf)</label>
  <input type="file" id="document" name="document" accept=".pdf,application/pdf" required>
  <button type="submit">Generate Report</button>
  <p id="status"></p>
</form>
</body>
</html>`

// ReportUsecase はレポート生成のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ReportUsecase interface {
	GenerateReport(ctx context.Context, statement, document []byte) (*entity.ReportDocument, error)
}

// ReportHandler はレポート生成のHTTPリクエストを処理します。
type ReportHandler struct {
	uc ReportUsecase
}

// NewReportHandler はReportHandlerの新しいインスタンスを生成します。
func NewReportHandler(uc ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Page はアップロードページを返します。
//
// エンドポイント: GET /
func (h *ReportHandler) Page(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(reportPageHTML))
}

// Generate は2つのアップロードファイルからPDFレポートを生成して返します。
//
// エンドポイント: POST /v1/reports
// Content-Type: multipart/form-data
// フィールド: statement（.xlsxファイル）、document（PDFファイル）
// 成功時はapplication/pdfを添付ファイルとして返します。
func (h *ReportHandler) Generate(c *gin.Context) {
	statement, err := readUpload(c, "statement")
	if err != nil {
		slog.Warn("財務諸表ファイルの取得に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: domain.ErrMissingStatement.Error()})
		return
	}

	document, err := readUpload(c, "document")
	if err != nil {
		slog.Warn("レポートPDFの取得に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: domain.ErrMissingDocument.Error()})
		return
	}

	doc, err := h.uc.GenerateReport(c.Request.Context(), statement, document)
	if err != nil {
		status := statusForError(err)
		slog.Error("レポート生成に失敗", "error", err, "status", status)
		c.JSON(status, api.ErrorResponse{Error: err.Error()})
		return
	}

	if doc.Warning != "" {
		c.Header("X-Report-Warning", doc.Warning)
	}
	c.Header("Content-Disposition", "attachment; filename="+ReportFileName)
	c.Data(http.StatusOK, "application/pdf", doc.PDF)
}

// readUpload は指定フィールドのアップロードファイルを読み込みます。
func readUpload(c *gin.Context, field string) ([]byte, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return nil, err
	}

	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("アップロードファイルのクローズに失敗", "field", field, "error", err)
		}
	}()

	return io.ReadAll(f)
}

// statusForError はパイプラインのエラーをHTTPステータスに対応付けます。
// 入力不備は400、データ構造や指標の問題は422、外部AIサービスの失敗は502です。
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingStatement), errors.Is(err, domain.ErrMissingDocument):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrStatementFormat),
		errors.Is(err, domain.ErrSheetNotFound),
		errors.Is(err, domain.ErrRowNotFound),
		errors.Is(err, domain.ErrInsufficientPeriods),
		errors.Is(err, domain.ErrZeroBaseline),
		errors.Is(err, domain.ErrMissingValue),
		errors.Is(err, domain.ErrDocumentFormat):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNarrativeService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
