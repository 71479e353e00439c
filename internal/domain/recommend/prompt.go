package recommend

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Recomendador-api/internal/domain/entity"
)

const (
	// RecommendationCount número de productos que se pide al modelo.
	RecommendationCount = 5
	// DefaultPromptCatalogLimit máximo de candidatos listados en el prompt (acota tokens).
	DefaultPromptCatalogLimit = 20
)

// BuildPrompt construye el prompt de recomendación con el límite de catálogo por defecto.
func BuildPrompt(prefs entity.UserPreferences, browsed, candidates []entity.Product) string {
	return BuildPromptLimited(prefs, browsed, candidates, DefaultPromptCatalogLimit)
}

// BuildPromptLimited construye el prompt listando como máximo catalogLimit candidatos.
// El texto es determinista: mismas entradas, mismo prompt.
func BuildPromptLimited(prefs entity.UserPreferences, browsed, candidates []entity.Product, catalogLimit int) string {
	if catalogLimit <= 0 {
		catalogLimit = DefaultPromptCatalogLimit
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Based on the following user preferences and browsing history, recommend exactly %d products from the catalog with explanations.\n\n", RecommendationCount)

	b.WriteString("User Preferences:\n")
	fmt.Fprintf(&b, "- priceRange: %s\n", orAny(prefs.PriceRange))
	fmt.Fprintf(&b, "- categories: %s\n", orAny(strings.Join(prefs.Categories, ", ")))
	fmt.Fprintf(&b, "- brands: %s\n", orAny(strings.Join(prefs.Brands, ", ")))

	b.WriteString("\nBrowsing History:\n")
	if len(browsed) == 0 {
		b.WriteString("- (no products viewed yet)\n")
	}
	for _, p := range browsed {
		fmt.Fprintf(&b, "- %s (Category: %s, Price: $%s)\n", p.Name, p.Category, p.Price.StringFixed(2))
	}

	fmt.Fprintf(&b, "\nPlease recommend %d products from the catalog that match the user's preferences and browsing history.\n", RecommendationCount)
	b.WriteString("For each recommendation, include:\n")
	b.WriteString("- 'product_id': must match an existing ID from the catalog below\n")
	b.WriteString("- 'explanation': a friendly, persuasive message that tells the user why they'll love this product\n")
	b.WriteString("  - Use the tone of a shopping assistant helping them, not a developer or analyst.\n")
	b.WriteString("  - Speak directly to the user (use 'you' and 'your').\n")
	b.WriteString("  - Mention their preferences, categories or brands in a natural way.\n")
	b.WriteString("- 'score': your confidence in the recommendation, 1 to 10.\n")
	b.WriteString("\nFormat your response as a JSON array of objects with the keys 'product_id', 'explanation' and 'score' (1-10 indicating confidence).\n")
	b.WriteString("\nIMPORTANT: Only recommend products that exist in the following catalog. ")
	b.WriteString("Each 'product_id' must be one of the exact ids listed below. Do not invent product names or IDs.\n")

	b.WriteString("\nHere are product IDs and names in the catalog:\n")
	for i, p := range candidates {
		if i >= catalogLimit {
			break
		}
		fmt.Fprintf(&b, "- %s: %s\n", p.ID, p.Name)
	}
	return b.String()
}

// BuildRelatedTagsPrompt construye el prompt corto de expansión de etiquetas.
// Las etiquetas del catálogo se listan ordenadas para que el prompt sea determinista.
func BuildRelatedTagsPrompt(browsedTags []string, catalogTags TagSet) string {
	var b strings.Builder
	b.WriteString("A shopper has been browsing products with these tags:\n")
	fmt.Fprintf(&b, "%s\n\n", strings.Join(browsedTags, ", "))
	b.WriteString("From the list of available catalog tags below, pick the tags that are semantically related to the browsed tags.\n")
	b.WriteString("Only use tags from this list, spelled exactly as shown:\n")
	fmt.Fprintf(&b, "%s\n\n", strings.Join(catalogTags.Sorted(), ", "))
	b.WriteString("Respond ONLY with a JSON array of strings, for example [\"tag-a\", \"tag-b\"]. Respond with [] if none are related.")
	return b.String()
}

func orAny(s string) string {
	if strings.TrimSpace(s) == "" {
		return "any"
	}
	return s
}
