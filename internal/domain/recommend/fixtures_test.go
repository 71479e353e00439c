package recommend_test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Recomendador-api/internal/domain/entity"
	"github.com/jhoicas/Recomendador-api/internal/domain/recommend"
)

// sampleProducts catálogo mínimo usado en todos los tests del paquete.
func sampleProducts() []entity.Product {
	return []entity.Product{
		{
			ID: "prod001", Name: "Test Shoe", Category: "Footwear",
			Price: decimal.RequireFromString("89.99"), Brand: "TestBrand",
			Tags: []string{"running", "lightweight"}, Rating: 4.5, Inventory: 10,
		},
		{
			ID: "prod002", Name: "Test Headphones", Category: "Electronics",
			Price: decimal.RequireFromString("199.99"), Brand: "TestSound",
			Tags: []string{"audio", "wireless"}, Rating: 4.9, Inventory: 5,
		},
		{
			ID: "prod003", Name: "Eco Bottle", Category: "Home",
			Price: decimal.RequireFromString("29.99"), Brand: "EcoBrand",
			Tags: []string{"reusable", "hydration"}, Rating: 4.6, Inventory: 50,
		},
		{
			ID: "prod004", Name: "Reusable Kitchen Towels", Category: "Home",
			Price: decimal.RequireFromString("19.99"), Brand: "EcoBrand",
			Tags: []string{"reusable", "kitchen", "eco-friendly"}, Rating: 4.4, Inventory: 30,
		},
	}
}

// stubExpander TagExpander de prueba que registra las llamadas.
type stubExpander struct {
	lookup  recommend.TagLookup
	calls   int
	browsed []string
	catalog recommend.TagSet
}

func (s *stubExpander) RelatedTags(_ context.Context, browsed []string, catalog recommend.TagSet) recommend.TagLookup {
	s.calls++
	s.browsed = browsed
	s.catalog = catalog
	return s.lookup
}

func ids(products []entity.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}
