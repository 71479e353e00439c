package ai_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Recomendador-api/internal/application/ports"
	"github.com/jhoicas/Recomendador-api/internal/domain"
	"github.com/jhoicas/Recomendador-api/internal/infrastructure/ai"
)

func TestAnthropicService_Complete(t *testing.T) {
	var gotHeaders http.Header
	var gotBody struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		System    string `json:"system"`
		Messages  []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = io.WriteString(w, `{"content":[{"type":"text","text":"[\"eco\","},{"type":"text","text":"\"reusable\"]"}]}`)
	}))
	defer srv.Close()

	svc := ai.NewAnthropicService("sk-ant", "claude-test", time.Second).WithURL(srv.URL)
	out, err := svc.Complete(context.Background(), ports.CompletionRequest{
		Call:   "related_tags",
		Prompt: "related tags please",
		System: "be brief",
	})

	require.NoError(t, err)
	assert.Equal(t, `["eco","reusable"]`, out)
	assert.Equal(t, "sk-ant", gotHeaders.Get("x-api-key"))
	assert.Equal(t, "2023-06-01", gotHeaders.Get("anthropic-version"))
	assert.Equal(t, "claude-test", gotBody.Model)
	assert.Equal(t, 1024, gotBody.MaxTokens, "max_tokens por defecto")
	assert.Equal(t, "be brief", gotBody.System)
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "user", gotBody.Messages[0].Role)
}

func TestAnthropicService_ErrorHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`)
	}))
	defer srv.Close()

	_, err := ai.NewAnthropicService("k", "m", time.Second).WithURL(srv.URL).
		Complete(context.Background(), ports.CompletionRequest{Prompt: "p"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate_limit_error")
	assert.Contains(t, err.Error(), "slow down")
}

func TestAnthropicService_SinAPIKey(t *testing.T) {
	_, err := ai.NewAnthropicService("", "m", time.Second).
		Complete(context.Background(), ports.CompletionRequest{Prompt: "p"})

	assert.ErrorIs(t, err, domain.ErrLLMNotConfigured)
}
