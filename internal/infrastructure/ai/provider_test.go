package ai_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Recomendador-api/internal/application/ports"
	"github.com/jhoicas/Recomendador-api/internal/domain"
	"github.com/jhoicas/Recomendador-api/internal/infrastructure/ai"
	"github.com/jhoicas/Recomendador-api/pkg/config"
	"github.com/jhoicas/Recomendador-api/pkg/metrics"
)

type stubLLM struct {
	out string
	err error
}

func (s stubLLM) Complete(context.Context, ports.CompletionRequest) (string, error) { return s.out, s.err }
func (s stubLLM) Provider() string                                                 { return "stub" }

func TestNewLLMService_EligeProveedor(t *testing.T) {
	cases := map[string]string{
		config.ProviderGemini:    "gemini",
		config.ProviderAnthropic: "anthropic",
		config.ProviderOpenAI:    "openai",
	}
	for provider, want := range cases {
		svc, err := ai.NewLLMService(config.AIConfig{Provider: provider, TimeoutSeconds: 1}, nil)
		require.NoError(t, err)
		assert.Equal(t, want, svc.Provider())
	}

	_, err := ai.NewLLMService(config.AIConfig{Provider: "mistral"}, nil)
	assert.Error(t, err)
}

func TestNewLLMService_SinClaveDevuelveNoConfigurado(t *testing.T) {
	svc, err := ai.NewLLMService(config.AIConfig{Provider: config.ProviderGemini, TimeoutSeconds: 1}, nil)
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), ports.CompletionRequest{Call: "recommend", Prompt: "p"})
	assert.ErrorIs(t, err, domain.ErrLLMNotConfigured)
}

func TestInstrument_RegistraMetricas(t *testing.T) {
	ok := metrics.LLMRequests.WithLabelValues("stub", "recommend", "success")
	failed := metrics.LLMRequests.WithLabelValues("stub", "related_tags", "error")
	okBefore := testutil.ToFloat64(ok)
	failedBefore := testutil.ToFloat64(failed)

	out, err := ai.Instrument(stubLLM{out: "[]"}, nil).
		Complete(context.Background(), ports.CompletionRequest{Call: "recommend"})
	require.NoError(t, err)
	assert.Equal(t, "[]", out)

	_, err = ai.Instrument(stubLLM{err: errors.New("boom")}, nil).
		Complete(context.Background(), ports.CompletionRequest{Call: "related_tags"})
	assert.EqualError(t, err, "boom")

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}

