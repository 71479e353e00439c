package ports

import "context"

// CompletionRequest parámetros de una llamada de texto al modelo.
type CompletionRequest struct {
	// Call identifica el propósito de la llamada ("recommend", "related_tags") para logs y métricas.
	Call        string
	Prompt      string
	System      string
	MaxTokens   int
	Temperature float32
	// JSONOutput pide al proveedor salida JSON cuando lo soporta. Solo Gemini lo aplica
	// (responseMimeType); Anthropic y OpenAI lo ignoran y el parseo sigue siendo tolerante.
	JSONOutput bool
}

// LLMService define el puerto de salida hacia el proveedor de LLM.
// Cualquier adaptador (Gemini, Anthropic, OpenAI, mock) debe implementar esta interfaz.
// Siguiendo el principio de inversión de dependencias (DIP), la aplicación solo conoce este
// contrato, no la implementación concreta.
type LLMService interface {
	// Complete envía el prompt y devuelve el texto de la respuesta.
	// Cualquier respuesta distinta de 200, fallo de transporte o respuesta vacía es un error.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	// Provider nombre corto del proveedor ("gemini", "anthropic", "openai").
	Provider() string
}
