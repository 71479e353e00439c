package usecase

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/Recomendador-api/internal/application/ports"
	"github.com/jhoicas/Recomendador-api/internal/domain/recommend"
	"github.com/jhoicas/Recomendador-api/pkg/logger"
	"github.com/jhoicas/Recomendador-api/pkg/metrics"
)

// Verificar en tiempo de compilación que LLMTagExpander implementa recommend.TagExpander.
var _ recommend.TagExpander = (*LLMTagExpander)(nil)

const callRelatedTags = "related_tags"

// LLMTagExpander expande las etiquetas navegadas con una llamada corta al LLM.
// Nunca propaga errores: la calidad de la recomendación se degrada, la petición no falla.
type LLMTagExpander struct {
	llm       ports.LLMService
	log       *logger.Logger
	maxTokens int
	timeout   time.Duration
}

// NewLLMTagExpander construye el expansor. maxTokens y timeout <= 0 usan 128 tokens y 10 s.
func NewLLMTagExpander(llm ports.LLMService, log *logger.Logger, maxTokens int, timeout time.Duration) *LLMTagExpander {
	if maxTokens <= 0 {
		maxTokens = 128
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &LLMTagExpander{llm: llm, log: log, maxTokens: maxTokens, timeout: timeout}
}

// RelatedTags pide al modelo etiquetas del catálogo relacionadas con browsedTags.
// Solo se devuelven etiquetas presentes en catalogTags.
func (e *LLMTagExpander) RelatedTags(ctx context.Context, browsedTags []string, catalogTags recommend.TagSet) recommend.TagLookup {
	lookup := e.lookup(ctx, browsedTags, catalogTags)
	metrics.ObserveTagLookup(string(lookup.Status))
	return lookup
}

func (e *LLMTagExpander) lookup(ctx context.Context, browsedTags []string, catalogTags recommend.TagSet) recommend.TagLookup {
	if e.llm == nil || len(browsedTags) == 0 || len(catalogTags) == 0 {
		return recommend.TagLookup{Tags: []string{}, Status: recommend.TagLookupSkipped}
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.llm.Complete(ctx, ports.CompletionRequest{
		Call:        callRelatedTags,
		Prompt:      recommend.BuildRelatedTagsPrompt(browsedTags, catalogTags),
		MaxTokens:   e.maxTokens,
		Temperature: 0,
		JSONOutput:  true,
	})
	if err != nil {
		e.log.Warn().Err(err).Str("provider", e.llm.Provider()).Msg("expansión de etiquetas falló; se continúa sin etiquetas relacionadas")
		return recommend.FailedLookup(fmt.Errorf("consultar etiquetas relacionadas: %w", err))
	}

	candidates, err := recommend.ParseTagList(raw)
	if err != nil {
		e.log.Warn().Err(err).Str("raw", truncate(raw, 200)).Msg("respuesta de etiquetas ilegible")
		return recommend.FailedLookup(err)
	}

	tags := recommend.ResolveRelatedTags(candidates, catalogTags, browsedTags)
	if len(tags) == 0 {
		return recommend.TagLookup{Tags: []string{}, Status: recommend.TagLookupEmpty}
	}
	e.log.Debug().Strs("browsed", browsedTags).Strs("related", tags).Msg("etiquetas relacionadas")
	return recommend.TagLookup{Tags: tags, Status: recommend.TagLookupFound}
}

// truncate recorta s a n bytes como máximo sin partir una runa.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "…"
}
