package ai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/jhoicas/Recomendador-api/internal/application/ports"
	"github.com/jhoicas/Recomendador-api/internal/domain"
)

// Verificar en tiempo de compilación que OpenAIService implementa LLMService.
var _ ports.LLMService = (*OpenAIService)(nil)

// OpenAIService adaptador sobre go-openai (Chat Completions).
// Con baseURL se puede apuntar a cualquier servidor compatible (Azure, Ollama, vLLM).
type OpenAIService struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIService construye el adaptador. Si apiKey está vacío, client queda nil y
// Complete devuelve domain.ErrLLMNotConfigured.
func NewOpenAIService(apiKey, model, baseURL string, timeout time.Duration) *OpenAIService {
	s := &OpenAIService{model: model, timeout: timeout}
	if apiKey == "" {
		return s
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	s.client = openai.NewClientWithConfig(cfg)
	return s
}

// Provider implementa ports.LLMService.
func (s *OpenAIService) Provider() string { return "openai" }

// Complete envía el prompt como mensaje de usuario y devuelve el contenido de la primera opción.
// JSONOutput no se traslada: el modo json_object de OpenAI exige un objeto y los prompts piden un array.
func (s *OpenAIService) Complete(ctx context.Context, in ports.CompletionRequest) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("AI: OPENAI_API_KEY no configurado: %w", domain.ErrLLMNotConfigured)
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if in.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: in.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: in.Prompt,
	})

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    messages,
		MaxTokens:   in.MaxTokens,
		Temperature: openAITemperature(in.Temperature),
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("AI: OpenAI HTTP %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
		}
		return "", fmt.Errorf("AI: llamada a OpenAI fallida: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("AI: OpenAI devolvió respuesta vacía")
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("AI: OpenAI devolvió texto vacío (finish_reason=%s)", resp.Choices[0].FinishReason)
	}
	return out, nil
}

// openAITemperature evita que go-openai omita temperature=0 (el campo es omitempty y el
// servidor aplicaría su valor por defecto, 1.0).
func openAITemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}
