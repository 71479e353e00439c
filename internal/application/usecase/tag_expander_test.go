package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Recomendador-api/internal/application/usecase"
	"github.com/jhoicas/Recomendador-api/internal/domain/recommend"
)

var testCatalogTags = recommend.NewTagSet("reusable", "hydration", "eco", "wireless", "running")

func TestLLMTagExpander_DevuelveEtiquetasDelCatalogo(t *testing.T) {
	llm := newFakeLLM()
	llm.responses["related_tags"] = "```json\n[\"reusable\", \"Eco\", \"outdoor\", \"hydration\"]\n```"
	exp := usecase.NewLLMTagExpander(llm, nil, 0, 0)

	lookup := exp.RelatedTags(context.Background(), []string{"hydration"}, testCatalogTags)

	assert.Equal(t, recommend.TagLookupFound, lookup.Status)
	assert.Equal(t, []string{"reusable", "eco"}, lookup.Tags)
	assert.NoError(t, lookup.Err)

	calls := llm.callsFor("related_tags")
	require.Len(t, calls, 1)
	assert.Equal(t, 128, calls[0].MaxTokens, "llamada secundaria pequeña")
	assert.Contains(t, calls[0].Prompt, "hydration")
}

func TestLLMTagExpander_FalloDeAPISeAbsorbe(t *testing.T) {
	llm := newFakeLLM()
	llm.errs["related_tags"] = errors.New("Gemini HTTP 503")
	exp := usecase.NewLLMTagExpander(llm, nil, 64, 0)

	lookup := exp.RelatedTags(context.Background(), []string{"hydration"}, testCatalogTags)

	assert.Equal(t, recommend.TagLookupFailed, lookup.Status)
	assert.True(t, lookup.Degraded())
	assert.NotNil(t, lookup.Tags)
	assert.Empty(t, lookup.Tags)
	assert.Error(t, lookup.Err)
}

func TestLLMTagExpander_RespuestaIlegible(t *testing.T) {
	llm := newFakeLLM()
	llm.responses["related_tags"] = `["eco", {"nope": true}]`
	exp := usecase.NewLLMTagExpander(llm, nil, 0, 0)

	lookup := exp.RelatedTags(context.Background(), []string{"hydration"}, testCatalogTags)

	assert.Equal(t, recommend.TagLookupFailed, lookup.Status)
	assert.Empty(t, lookup.Tags)
}

func TestLLMTagExpander_NadaRelacionado(t *testing.T) {
	llm := newFakeLLM()
	llm.responses["related_tags"] = `["outdoor", "hydration"]`
	exp := usecase.NewLLMTagExpander(llm, nil, 0, 0)

	lookup := exp.RelatedTags(context.Background(), []string{"hydration"}, testCatalogTags)

	assert.Equal(t, recommend.TagLookupEmpty, lookup.Status, "consulta correcta pero sin etiquetas nuevas")
	assert.False(t, lookup.Degraded())
	assert.Empty(t, lookup.Tags)
}

func TestLLMTagExpander_SinEtiquetasNoLlamaAlLLM(t *testing.T) {
	llm := newFakeLLM()
	exp := usecase.NewLLMTagExpander(llm, nil, 0, 0)

	lookup := exp.RelatedTags(context.Background(), nil, testCatalogTags)

	assert.Equal(t, recommend.TagLookupSkipped, lookup.Status)
	assert.Empty(t, llm.callsFor("related_tags"))
}
