package ai

import (
	"context"
	"time"

	"github.com/jhoicas/Recomendador-api/internal/application/ports"
	"github.com/jhoicas/Recomendador-api/pkg/logger"
	"github.com/jhoicas/Recomendador-api/pkg/metrics"
)

var _ ports.LLMService = (*InstrumentedService)(nil)

// InstrumentedService decora un LLMService con métricas Prometheus y log por llamada.
type InstrumentedService struct {
	next ports.LLMService
	log  *logger.Logger
}

// Instrument envuelve next. log puede ser nil.
func Instrument(next ports.LLMService, log *logger.Logger) *InstrumentedService {
	if log == nil {
		log = logger.Nop()
	}
	return &InstrumentedService{next: next, log: log}
}

// Provider delega en el adaptador envuelto.
func (s *InstrumentedService) Provider() string { return s.next.Provider() }

// Complete mide la llamada y registra el resultado.
func (s *InstrumentedService) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	start := time.Now()
	out, err := s.next.Complete(ctx, req)
	elapsed := time.Since(start)

	call := req.Call
	if call == "" {
		call = "unknown"
	}
	metrics.ObserveLLMCall(s.next.Provider(), call, err, elapsed)

	ev := s.log.Debug()
	if err != nil {
		ev = s.log.Warn().Err(err)
	}
	ev.Str("provider", s.next.Provider()).
		Str("call", call).
		Dur("elapsed", elapsed).
		Int("prompt_chars", len(req.Prompt)).
		Int("response_chars", len(out)).
		Msg("llamada LLM")
	return out, err
}
