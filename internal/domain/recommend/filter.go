package recommend

import (
	"context"

	"github.com/jhoicas/Recomendador-api/internal/domain/entity"
)

// DefaultMaxCandidates tamaño máximo del conjunto de candidatos si no se configura otro.
const DefaultMaxCandidates = 20

// FilterResult candidatos filtrados más el resultado de la expansión de etiquetas,
// para que el llamador pueda registrar si la consulta se degradó.
type FilterResult struct {
	Candidates []entity.Product
	TagLookup  TagLookup
}

// FilterCandidates reduce el catálogo a un conjunto acotado de candidatos relevantes.
//
// Primero entran los productos dentro del tope de precio que coinciden con alguna categoría o
// marca preferida (o todos los del tope si no hay preferencias). Si queda espacio, se completa con
// productos que comparten etiquetas con el historial o con las etiquetas relacionadas que devuelva
// expander. El resultado no tiene ids repetidos y nunca supera maxCandidates.
// expander puede ser nil; en ese caso solo se usan las etiquetas navegadas.
func FilterCandidates(
	ctx context.Context,
	prefs entity.UserPreferences,
	browsed []entity.Product,
	catalog []entity.Product,
	expander TagExpander,
	maxCandidates int,
) FilterResult {
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxCandidates
	}
	limit := LimitForBand(prefs.PriceRange)

	// Categorías y marcas se comparan sin distinguir mayúsculas, igual que las etiquetas.
	categories := NewTagSet(prefs.Categories...)
	brands := NewTagSet(prefs.Brands...)
	restrict := len(categories) > 0 || len(brands) > 0

	candidates := make([]entity.Product, 0, min(maxCandidates, len(catalog)))
	included := make(map[string]struct{}, len(catalog))
	for _, p := range catalog {
		if len(candidates) >= maxCandidates {
			break
		}
		if _, dup := included[p.ID]; dup || !limit.Allows(p.Price) {
			continue
		}
		if restrict && !categories.Contains(p.Category) && !brands.Contains(p.Brand) {
			continue
		}
		candidates = append(candidates, p)
		included[p.ID] = struct{}{}
	}

	result := FilterResult{
		Candidates: candidates,
		TagLookup:  TagLookup{Tags: []string{}, Status: TagLookupSkipped},
	}

	browsedTags := BrowsedTags(browsed)
	if len(browsedTags) == 0 || len(candidates) >= maxCandidates {
		return result
	}

	if expander != nil {
		lookup := expander.RelatedTags(ctx, browsedTags, CatalogTags(catalog))
		if lookup.Tags == nil {
			lookup.Tags = []string{}
		}
		result.TagLookup = lookup
	}

	tags := make([]string, 0, len(browsedTags)+len(result.TagLookup.Tags))
	tags = append(tags, browsedTags...)
	tags = append(tags, result.TagLookup.Tags...)

	for _, p := range ProductsByTags(tags, catalog, limit, included) {
		if len(result.Candidates) >= maxCandidates {
			break
		}
		result.Candidates = append(result.Candidates, p)
		included[p.ID] = struct{}{}
	}
	return result
}

// ProductsByTags devuelve, en orden de catálogo, los productos dentro de limit que llevan al menos
// una de tags y cuyo id no está en exclude. exclude puede ser nil.
func ProductsByTags(
	tags []string,
	catalog []entity.Product,
	limit PriceLimit,
	exclude map[string]struct{},
) []entity.Product {
	wanted := NewTagSet(tags...)
	out := make([]entity.Product, 0)
	if len(wanted) == 0 {
		return out
	}
	seen := make(map[string]struct{})
	for _, p := range catalog {
		if _, skip := exclude[p.ID]; skip {
			continue
		}
		if _, dup := seen[p.ID]; dup || !limit.Allows(p.Price) {
			continue
		}
		for _, t := range p.Tags {
			if wanted.Contains(t) {
				out = append(out, p)
				seen[p.ID] = struct{}{}
				break
			}
		}
	}
	return out
}
