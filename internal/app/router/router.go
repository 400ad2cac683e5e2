package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	reporthandler "report_backend/internal/feature/report/transport/handler"
	"report_backend/internal/platform/http/handler"
)

func NewRouter(report *reporthandler.ReportHandler) *gin.Engine {
	r := gin.Default()

	r.Use(cors.Default())

	// 導通確認用
	r.GET("/healthz", handler.Health)
	// アップロードページ
	r.GET("/", report.Page)
	// レポート生成（2ファイルのアップロードを受けてPDFを返す）
	r.POST("/v1/reports", report.Generate)

	return r
}
