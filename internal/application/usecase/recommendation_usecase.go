package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Recomendador-api/internal/application/dto"
	"github.com/jhoicas/Recomendador-api/internal/application/ports"
	"github.com/jhoicas/Recomendador-api/internal/domain"
	"github.com/jhoicas/Recomendador-api/internal/domain/entity"
	"github.com/jhoicas/Recomendador-api/internal/domain/recommend"
	"github.com/jhoicas/Recomendador-api/pkg/logger"
	"github.com/jhoicas/Recomendador-api/pkg/metrics"
)

const callRecommend = "recommend"

// RecommendationConfig parámetros del recomendador (vienen de pkg/config).
type RecommendationConfig struct {
	MaxCandidates      int
	PromptCatalogLimit int
	MaxTokens          int
	Temperature        float32
	Timeout            time.Duration // timeout de la llamada principal al LLM
}

// RecommendationUseCase orquesta filtro → prompt → LLM → parseo.
// No guarda estado entre llamadas; cada invocación es independiente.
type RecommendationUseCase struct {
	llm      ports.LLMService
	catalog  ports.CatalogSource
	expander recommend.TagExpander
	cfg      RecommendationConfig
	log      *logger.Logger
}

// NewRecommendationUseCase construye el caso de uso. expander puede ser nil (sin expansión de etiquetas).
func NewRecommendationUseCase(
	llm ports.LLMService,
	catalog ports.CatalogSource,
	expander recommend.TagExpander,
	cfg RecommendationConfig,
	log *logger.Logger,
) *RecommendationUseCase {
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = recommend.DefaultMaxCandidates
	}
	if cfg.PromptCatalogLimit <= 0 {
		cfg.PromptCatalogLimit = recommend.DefaultPromptCatalogLimit
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RecommendationUseCase{llm: llm, catalog: catalog, expander: expander, cfg: cfg, log: log}
}

// RecommendForCatalog carga el catálogo desde la fuente configurada y genera las recomendaciones.
func (uc *RecommendationUseCase) RecommendForCatalog(ctx context.Context, req dto.RecommendationRequest) (*dto.RecommendationResponse, error) {
	if uc.catalog == nil {
		return nil, fmt.Errorf("recomendación: %w", domain.ErrCatalogUnavailable)
	}
	catalog, err := uc.catalog.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("recomendación: %w: %w", domain.ErrCatalogUnavailable, err)
	}
	return uc.Generate(ctx, req.Preferences.ToEntity(), req.BrowsingHistory, catalog)
}

// Generate produce recomendaciones personalizadas para las preferencias e historial dados.
//
// Un fallo del proveedor LLM (HTTP distinto de 200, transporte, timeout) se devuelve como error
// que envuelve domain.ErrLLMUpstream. Una respuesta ilegible no es error: se devuelve la lista
// vacía con el campo Error. Los product_id desconocidos se descartan y se registran en el log.
func (uc *RecommendationUseCase) Generate(
	ctx context.Context,
	prefs entity.UserPreferences,
	historyIDs []string,
	catalog []entity.Product,
) (*dto.RecommendationResponse, error) {
	requestID := uuid.NewString()
	log := uc.log.Child(uc.log.With().Str("request_id", requestID))

	browsed := ResolveHistory(historyIDs, catalog)
	filtered := recommend.FilterCandidates(ctx, prefs, browsed, catalog, uc.expander, uc.cfg.MaxCandidates)
	if filtered.TagLookup.Degraded() {
		log.Warn().Err(filtered.TagLookup.Err).Msg("expansión de etiquetas degradada")
	}
	log.Debug().
		Int("catalog", len(catalog)).
		Int("browsed", len(browsed)).
		Int("candidates", len(filtered.Candidates)).
		Str("tag_lookup", string(filtered.TagLookup.Status)).
		Msg("candidatos filtrados")

	resp := &dto.RecommendationResponse{
		RequestID:       requestID,
		Recommendations: []entity.Recommendation{},
	}

	// Sin candidatos el modelo no tiene ningún id válido que devolver.
	if len(filtered.Candidates) == 0 {
		log.Info().Msg("sin candidatos; no se consulta el LLM")
		metrics.ObserveRecommendation(metrics.OutcomeNoCandidates, 0, 0)
		return resp, nil
	}

	if uc.llm == nil {
		return nil, fmt.Errorf("recomendación: %w", domain.ErrLLMNotConfigured)
	}

	prompt := recommend.BuildPromptLimited(prefs, browsed, filtered.Candidates, uc.cfg.PromptCatalogLimit)

	callCtx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()

	raw, err := uc.llm.Complete(callCtx, ports.CompletionRequest{
		Call:        callRecommend,
		Prompt:      prompt,
		MaxTokens:   uc.cfg.MaxTokens,
		Temperature: uc.cfg.Temperature,
	})
	if err != nil {
		metrics.ObserveRecommendation(metrics.OutcomeUpstreamError, 0, 0)
		log.Error().Err(err).Str("provider", uc.llm.Provider()).Msg("llamada al LLM fallida")
		if errors.Is(err, domain.ErrLLMNotConfigured) {
			return nil, fmt.Errorf("recomendación: %w", err)
		}
		return nil, fmt.Errorf("generar recomendaciones: %w: %w", domain.ErrLLMUpstream, err)
	}
	log.Debug().Str("raw", truncate(raw, 500)).Msg("respuesta del LLM")

	parsed := recommend.ParseResponse(raw, catalog)
	for _, id := range parsed.Dropped {
		log.Warn().Str("product_id", id).Msg("el modelo devolvió un producto que no existe en el catálogo; se descarta")
	}
	if parsed.Failed() {
		log.Warn().Str("error", parsed.Err).Str("raw", truncate(raw, 200)).Msg("respuesta del LLM ilegible")
		metrics.ObserveRecommendation(metrics.OutcomeParseError, 0, len(parsed.Dropped))
		resp.Error = parsed.Err
		return resp, nil
	}

	metrics.ObserveRecommendation(metrics.OutcomeOK, parsed.Count(), len(parsed.Dropped))
	resp.Recommendations = parsed.Recommendations
	resp.Count = parsed.Count()
	log.Info().Int("count", resp.Count).Int("dropped", len(parsed.Dropped)).Msg("recomendaciones generadas")
	return resp, nil
}

// ResolveHistory traduce los ids del historial a productos del catálogo, en el mismo orden.
// Ids desconocidos o repetidos se omiten.
func ResolveHistory(historyIDs []string, catalog []entity.Product) []entity.Product {
	byID := make(map[string]entity.Product, len(catalog))
	for _, p := range catalog {
		if _, exists := byID[p.ID]; !exists {
			byID[p.ID] = p
		}
	}
	out := make([]entity.Product, 0, len(historyIDs))
	seen := make(map[string]struct{}, len(historyIDs))
	for _, id := range historyIDs {
		p, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, p)
	}
	return out
}
