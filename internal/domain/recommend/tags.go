package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/text/cases"

	"github.com/jhoicas/Recomendador-api/internal/domain/entity"
	"github.com/jhoicas/Recomendador-api/pkg/llmjson"
)

// TagSet conjunto de etiquetas indexado por su forma plegada (case folding Unicode).
// El valor guarda la grafía canónica tal como aparece por primera vez en el catálogo.
type TagSet map[string]string

// foldTag normaliza una etiqueta para compararla sin distinguir mayúsculas.
// cases.Caser no es seguro entre goroutines, por eso se crea en cada llamada.
func foldTag(tag string) string {
	return cases.Fold().String(strings.TrimSpace(tag))
}

// NewTagSet construye un TagSet con las etiquetas dadas (ignora vacías).
func NewTagSet(tags ...string) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		s.Add(t)
	}
	return s
}

// Add agrega la etiqueta si no existe ya una equivalente.
func (s TagSet) Add(tag string) {
	key := foldTag(tag)
	if key == "" {
		return
	}
	if _, ok := s[key]; !ok {
		s[key] = strings.TrimSpace(tag)
	}
}

// Canonical devuelve la grafía del catálogo para tag, si pertenece al conjunto.
func (s TagSet) Canonical(tag string) (string, bool) {
	v, ok := s[foldTag(tag)]
	return v, ok
}

// Contains indica si tag (o una variante de mayúsculas) pertenece al conjunto.
func (s TagSet) Contains(tag string) bool {
	_, ok := s[foldTag(tag)]
	return ok
}

// Sorted devuelve las etiquetas canónicas ordenadas alfabéticamente.
func (s TagSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for _, v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// CatalogTags reúne todas las etiquetas presentes en el catálogo.
func CatalogTags(catalog []entity.Product) TagSet {
	s := make(TagSet)
	for _, p := range catalog {
		for _, t := range p.Tags {
			s.Add(t)
		}
	}
	return s
}

// BrowsedTags devuelve las etiquetas de los productos vistos, sin duplicados y en orden de aparición.
func BrowsedTags(browsed []entity.Product) []string {
	seen := make(TagSet)
	out := make([]string, 0)
	for _, p := range browsed {
		for _, t := range p.Tags {
			if foldTag(t) == "" || seen.Contains(t) {
				continue
			}
			seen.Add(t)
			out = append(out, strings.TrimSpace(t))
		}
	}
	return out
}

// ── Expansión de etiquetas ────────────────────────────────────────────────────

// TagLookupStatus distingue "no hay etiquetas relacionadas" de "la consulta falló".
type TagLookupStatus string

const (
	TagLookupSkipped TagLookupStatus = "skipped" // sin etiquetas navegadas o sin expansor
	TagLookupFound   TagLookupStatus = "found"
	TagLookupEmpty   TagLookupStatus = "empty"  // consulta correcta, nada relacionado en el catálogo
	TagLookupFailed  TagLookupStatus = "failed" // error de API, timeout o respuesta ilegible
)

// TagLookup resultado de la expansión de etiquetas. Tags siempre es una lista válida (posiblemente vacía);
// Err solo se llena cuando Status es TagLookupFailed.
type TagLookup struct {
	Tags   []string
	Status TagLookupStatus
	Err    error
}

// Degraded indica que la consulta falló y se continuó sin etiquetas relacionadas.
func (l TagLookup) Degraded() bool {
	return l.Status == TagLookupFailed
}

// FailedLookup construye el resultado degradado.
func FailedLookup(err error) TagLookup {
	return TagLookup{Tags: []string{}, Status: TagLookupFailed, Err: err}
}

// TagExpander busca etiquetas del catálogo semánticamente relacionadas con las navegadas.
// Las implementaciones nunca devuelven error: los fallos se reportan como TagLookupFailed.
type TagExpander interface {
	RelatedTags(ctx context.Context, browsedTags []string, catalogTags TagSet) TagLookup
}

// ParseTagList extrae una lista de etiquetas de la respuesta del modelo.
// Acepta un array JSON (aunque venga envuelto en prosa o markdown) o una lista separada
// por comas o saltos de línea. Solo devuelve error si hay un array JSON mal formado.
func ParseTagList(raw string) ([]string, error) {
	text := llmjson.StripFences(raw)
	if text == "" {
		return []string{}, nil
	}

	if arr, ok := llmjson.ExtractArray(text); ok {
		var tags []string
		if err := json.Unmarshal([]byte(arr), &tags); err != nil {
			return nil, fmt.Errorf("lista de etiquetas inválida: %w", err)
		}
		return cleanTags(tags), nil
	}

	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})
	for i, p := range parts {
		// "Related tags: eco" → "eco"
		if idx := strings.LastIndex(p, ":"); idx != -1 {
			parts[i] = p[idx+1:]
		}
	}
	return cleanTags(parts), nil
}

func cleanTags(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		t = strings.TrimLeft(t, "-*•· ")
		t = strings.Trim(t, "\"'`. ")
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ResolveRelatedTags conserva solo las etiquetas que existen en el catálogo (en su grafía canónica),
// descarta las que ya estaban entre las navegadas y elimina duplicados.
func ResolveRelatedTags(candidates []string, catalogTags TagSet, browsedTags []string) []string {
	seen := NewTagSet(browsedTags...)
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		canonical, ok := catalogTags.Canonical(c)
		if !ok || seen.Contains(canonical) {
			continue
		}
		seen.Add(canonical)
		out = append(out, canonical)
	}
	return out
}
