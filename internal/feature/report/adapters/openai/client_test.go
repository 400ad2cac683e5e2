package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestOpenAINarrator_Generate_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer auth, got %q", got)
		}

		// Verify the request pins the fixed model and temperature
		var body struct {
			Model       string  `json:"model"`
			Temperature float64 `json:"temperature"`
			Messages    []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		if body.Model != "gpt-4o" {
			t.Errorf("expected model gpt-4o, got %q", body.Model)
		}
		if body.Temperature != 0.5 {
			t.Errorf("expected temperature 0.5, got %v", body.Temperature)
		}
		if len(body.Messages) != 1 || body.Messages[0].Role != "user" {
			t.Errorf("expected a single user message, got %+v", body.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-test",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4o",
			"choices": [
				{"index": 0, "finish_reason": "stop",
				 "message": {"role": "assistant", "content": "Revenue grew 20 percent year over year."}}
			]
		}`))
	}))
	defer server.Close()

	cfg := Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5 * time.Second}
	narrator := NewOpenAINarrator(cfg, server.Client())

	got, err := narrator.Generate(context.Background(), "Analyze the quarter.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Revenue grew 20 percent year over year." {
		t.Errorf("unexpected narrative: %q", got)
	}
}

func TestOpenAINarrator_Generate_APIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"message": "invalid request", "type": "invalid_request_error"}}`))
	}))
	defer server.Close()

	cfg := Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5 * time.Second}
	narrator := NewOpenAINarrator(cfg, server.Client())

	_, err := narrator.Generate(context.Background(), "Analyze the quarter.")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "openai chat completion") {
		t.Errorf("expected wrapped completion error, got %v", err)
	}
}

func TestOpenAINarrator_Generate_NoChoices(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id": "chatcmpl-test", "object": "chat.completion", "choices": []}`))
	}))
	defer server.Close()

	cfg := Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5 * time.Second}
	narrator := NewOpenAINarrator(cfg, server.Client())

	_, err := narrator.Generate(context.Background(), "Analyze the quarter.")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "no choices") {
		t.Errorf("expected no-choices error, got %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	cfg := LoadConfig()

	if cfg.Timeout != 60*time.Second {
		t.Errorf("expected timeout 60s, got %v", cfg.Timeout)
	}
}
