package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"report_backend/internal/app/di"
	"report_backend/internal/app/router"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	ctx := context.Background()

	// ナラティブ生成プロバイダ（資格情報が無ければ起動しない）
	generator, err := di.NewNarrativeGenerator(ctx)
	if err != nil {
		log.Fatal("[ERROR] narrative generator: ", err)
	}

	// Handler（パイプライン一式を配線）
	reportH := di.NewReportHandler(generator)

	// ルータ生成
	router := router.NewRouter(reportH)

	addr := os.Getenv("REPORT_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if err := router.Run(addr); err != nil {
		log.Fatal(err)
	}
}
