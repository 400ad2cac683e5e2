// Package openai はOpenAI Chat Completions APIを使用したナラティブ生成クライアントを提供します。
package openai

import (
	"os"
	"time"
)

// Config はOpenAIクライアントの設定を保持します。
// モデルと温度はレポートの再現性のため固定値で、環境変数では変更できません。
type Config struct {
	APIKey  string        // 認証用APIキー
	BaseURL string        // APIのベースURL（空ならSDKのデフォルト）
	Timeout time.Duration // HTTPリクエストタイムアウト
}

// LoadConfig は環境変数からOpenAIの設定を読み込みます。
func LoadConfig() Config {
	return Config{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		BaseURL: os.Getenv("OPENAI_BASE_URL"),
		Timeout: 60 * time.Second,
	}
}
