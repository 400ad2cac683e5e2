// Package pdfdoc はナラティブとグラフをPDFレポートに組み立てるアダプターを提供します。
package pdfdoc

import "os"

// Config はレポート組み立ての設定を保持します。
type Config struct {
	FontDir string // DejaVuフォントファイルを探すディレクトリ
}

// LoadConfig は環境変数からレポート組み立ての設定を読み込みます。
func LoadConfig() Config {
	dir := os.Getenv("REPORT_FONT_DIR")
	if dir == "" {
		dir = "fonts"
	}
	return Config{FontDir: dir}
}
