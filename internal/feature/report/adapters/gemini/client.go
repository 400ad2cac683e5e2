// Package gemini はGoogle Gemini APIを使用したナラティブ生成クライアントを提供します。
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"report_backend/internal/feature/report/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
	// Temperature はナラティブ生成の固定サンプリング温度です。
	Temperature = 0.5
)

// GeminiNarrator はGoogle Gemini APIでナラティブを生成します。
type GeminiNarrator struct {
	client *genai.Client
	model  string
}

// GeminiNarratorがNarrativeGeneratorを実装していることをコンパイル時に検証します。
var _ usecase.NarrativeGenerator = (*GeminiNarrator)(nil)

// NewGeminiNarrator は環境の資格情報（GEMINI_API_KEYまたはADC）を使用して
// GeminiNarratorの新しいインスタンスを生成します。
func NewGeminiNarrator(ctx context.Context) (*GeminiNarrator, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiNarrator{client: client, model: DefaultModel}, nil
}

// Generate はプロンプトからナラティブを生成します。
func (g *GeminiNarrator) Generate(ctx context.Context, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](Temperature),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	return resp.Text(), nil
}
