package ai

import (
	"fmt"

	"github.com/jhoicas/Recomendador-api/internal/application/ports"
	"github.com/jhoicas/Recomendador-api/pkg/config"
	"github.com/jhoicas/Recomendador-api/pkg/logger"
)

// NewLLMService elige el adaptador según AI_PROVIDER y lo envuelve con instrumentación.
// Una API key vacía no es error aquí: el servicio arranca y las llamadas devuelven
// domain.ErrLLMNotConfigured (HTTP 503).
func NewLLMService(cfg config.AIConfig, log *logger.Logger) (ports.LLMService, error) {
	var svc ports.LLMService
	switch cfg.Provider {
	case config.ProviderGemini, "":
		svc = NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Timeout())
	case config.ProviderAnthropic:
		svc = NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.Timeout())
	case config.ProviderOpenAI:
		svc = NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, cfg.Timeout())
	default:
		return nil, fmt.Errorf("AI: proveedor desconocido %q", cfg.Provider)
	}
	return Instrument(svc, log), nil
}
