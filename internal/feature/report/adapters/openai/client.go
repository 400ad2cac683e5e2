package openai

import (
	"context"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"report_backend/internal/feature/report/usecase"
)

const (
	// Model はナラティブ生成に使う固定のモデルIDです。
	Model = openai.ChatModelGPT4o
	// Temperature はナラティブ生成の固定サンプリング温度です。
	Temperature = 0.5
)

// OpenAINarrator はOpenAI Chat Completions APIでナラティブを生成します。
type OpenAINarrator struct {
	client *openai.Client
	model  openai.ChatModel
}

// OpenAINarratorがNarrativeGeneratorを実装していることをコンパイル時に検証します。
var _ usecase.NarrativeGenerator = (*OpenAINarrator)(nil)

// NewOpenAINarrator は指定された設定とHTTPクライアントでOpenAINarratorの新しいインスタンスを生成します。
func NewOpenAINarrator(cfg Config, httpClient *http.Client) *OpenAINarrator {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := openai.NewClient(opts...)
	return &OpenAINarrator{client: &client, model: Model}
}

// Generate はプロンプトを1つのユーザーメッセージとして送信し、生成テキストを返します。
func (o *OpenAINarrator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       o.model,
		Temperature: openai.Float(Temperature),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
