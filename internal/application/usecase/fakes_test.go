package usecase_test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Recomendador-api/internal/application/ports"
	"github.com/jhoicas/Recomendador-api/internal/domain/entity"
)

// fakeLLM responde según el propósito de la llamada y registra los prompts recibidos.
type fakeLLM struct {
	mu        sync.Mutex
	responses map[string]string
	errs      map[string]error
	requests  []ports.CompletionRequest
}

func newFakeLLM() *fakeLLM {
	return &fakeLLM{responses: map[string]string{}, errs: map[string]error{}}
}

func (f *fakeLLM) Complete(_ context.Context, req ports.CompletionRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if err := f.errs[req.Call]; err != nil {
		return "", err
	}
	return f.responses[req.Call], nil
}

func (f *fakeLLM) Provider() string { return "fake" }

func (f *fakeLLM) callsFor(call string) []ports.CompletionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ports.CompletionRequest, 0)
	for _, r := range f.requests {
		if r.Call == call {
			out = append(out, r)
		}
	}
	return out
}

// fakeCatalog fuente de catálogo en memoria.
type fakeCatalog struct {
	products []entity.Product
	err      error
}

func (c *fakeCatalog) ListProducts(context.Context) ([]entity.Product, error) {
	return c.products, c.err
}

func sampleProducts() []entity.Product {
	return []entity.Product{
		{ID: "prod001", Name: "Test Shoe", Category: "Footwear", Price: decimal.RequireFromString("89.99"),
			Brand: "TestBrand", Tags: []string{"running", "lightweight"}, Rating: 4.5, Inventory: 10},
		{ID: "prod002", Name: "Test Headphones", Category: "Electronics", Price: decimal.RequireFromString("199.99"),
			Brand: "TestSound", Tags: []string{"audio", "wireless"}, Rating: 4.9, Inventory: 5},
		{ID: "prod003", Name: "Eco Bottle", Category: "Home", Price: decimal.RequireFromString("29.99"),
			Brand: "EcoBrand", Tags: []string{"reusable", "hydration"}, Rating: 4.6, Inventory: 50},
		{ID: "prod004", Name: "Reusable Kitchen Towels", Category: "Home", Price: decimal.RequireFromString("19.99"),
			Brand: "EcoBrand", Tags: []string{"reusable", "kitchen", "eco-friendly"}, Rating: 4.4, Inventory: 30},
	}
}
