package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Recomendador-api/internal/application/dto"
	"github.com/jhoicas/Recomendador-api/internal/application/ports"
	"github.com/jhoicas/Recomendador-api/internal/application/usecase"
	"github.com/jhoicas/Recomendador-api/internal/domain"
	"github.com/jhoicas/Recomendador-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Recomendador-api/internal/interfaces/http"
)

// ── Fakes ────────────────────────────────────────────────────────────────────

type scriptedLLM struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (s *scriptedLLM) Complete(_ context.Context, req ports.CompletionRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, req.Prompt)
	if req.Call == "related_tags" {
		return "[]", nil
	}
	return s.reply, s.err
}

func (s *scriptedLLM) Provider() string { return "scripted" }

type staticCatalog struct {
	products []entity.Product
	err      error
}

func (c staticCatalog) ListProducts(context.Context) ([]entity.Product, error) { return c.products, c.err }

func testProducts() []entity.Product {
	return []entity.Product{
		{ID: "prod001", Name: "Test Shoe", Category: "Footwear", Price: decimal.RequireFromString("89.99"),
			Brand: "TestBrand", Tags: []string{"running", "lightweight"}, Rating: 4.5, Inventory: 10},
		{ID: "prod002", Name: "Test Headphones", Category: "Electronics", Price: decimal.RequireFromString("199.99"),
			Brand: "TestSound", Tags: []string{"audio", "wireless"}, Rating: 4.9, Inventory: 5},
		{ID: "prod003", Name: "Eco Bottle", Category: "Home", Price: decimal.RequireFromString("29.99"),
			Brand: "EcoBrand", Tags: []string{"reusable", "hydration"}, Rating: 4.6, Inventory: 50},
	}
}

func buildApp(llm ports.LLMService, catalog ports.CatalogSource, secret string) *fiber.App {
	expander := usecase.NewLLMTagExpander(llm, nil, 0, time.Second)
	recUC := usecase.NewRecommendationUseCase(llm, catalog, expander, usecase.RecommendationConfig{Timeout: time.Second}, nil)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:          "recomendador-test",
		RecommendationUC: recUC,
		ProductUC:        usecase.NewProductUseCase(catalog),
		JWTSecret:        secret,
	})
	return app
}

func postRecommendation(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ── Recomendaciones ──────────────────────────────────────────────────────────

func TestRecommend_OK(t *testing.T) {
	llm := &scriptedLLM{reply: "```json\n" +
		`[{"product_id":"prod003","explanation":"Stay hydrated.","score":8},{"product_id":"ghost","score":9}]` +
		"\n```"}
	app := buildApp(llm, staticCatalog{products: testProducts()}, "")

	resp := postRecommendation(t, app,
		`{"preferences":{"priceRange":"under50","categories":["home"],"brands":[]},"browsing_history":["prod001"]}`)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	var out dto.RecommendationResponse
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	assert.Equal(t, 1, out.Count)
	require.Len(t, out.Recommendations, 1)
	assert.Equal(t, "prod003", out.Recommendations[0].Product.ID)
	assert.Equal(t, 8, out.Recommendations[0].ConfidenceScore)
	assert.Equal(t, "Stay hydrated.", out.Recommendations[0].Explanation)
	assert.NotEmpty(t, out.RequestID)
	assert.Contains(t, string(raw), `"confidence_score":8`)
}

func TestRecommend_RespuestaIlegibleDevuelve200ConError(t *testing.T) {
	app := buildApp(&scriptedLLM{reply: "no JSON here"}, staticCatalog{products: testProducts()}, "")

	resp := postRecommendation(t, app, `{"preferences":{"priceRange":"all"}}`)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), `"recommendations":[]`)
	assert.Contains(t, string(raw), `"error":`)
}

func TestRecommend_MapeoDeErrores(t *testing.T) {
	cases := []struct {
		name    string
		llm     *scriptedLLM
		catalog staticCatalog
		body    string
		status  int
		code    string
	}{
		{"cuerpo inválido", &scriptedLLM{}, staticCatalog{products: testProducts()}, `{"preferences":`, fiber.StatusBadRequest, "INVALID_BODY"},
		{"validación", &scriptedLLM{}, staticCatalog{products: testProducts()}, `{"browsing_history":[""]}`, fiber.StatusBadRequest, "VALIDATION"},
		{"proveedor caído", &scriptedLLM{err: errors.New("Gemini HTTP 500: boom")}, staticCatalog{products: testProducts()}, `{}`, fiber.StatusBadGateway, "LLM_UPSTREAM"},
		{"sin API key", &scriptedLLM{err: domain.ErrLLMNotConfigured}, staticCatalog{products: testProducts()}, `{}`, fiber.StatusServiceUnavailable, "AI_UNAVAILABLE"},
		{"timeout", &scriptedLLM{err: context.DeadlineExceeded}, staticCatalog{products: testProducts()}, `{}`, fiber.StatusGatewayTimeout, "TIMEOUT"},
		{"catálogo caído", &scriptedLLM{}, staticCatalog{err: errors.New("db down")}, `{}`, fiber.StatusServiceUnavailable, "CATALOG_UNAVAILABLE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := buildApp(tc.llm, tc.catalog, "")

			resp := postRecommendation(t, app, tc.body)

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, decodeError(t, resp).Code)
		})
	}
}

func TestRecommend_RequiereTokenSiHaySecret(t *testing.T) {
	app := buildApp(&scriptedLLM{reply: "[]"}, staticCatalog{products: testProducts()}, testJWTSecret)

	resp := postRecommendation(t, app, `{}`)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// ── Catálogo y operación ─────────────────────────────────────────────────────

func TestProducts_ListYGetByID(t *testing.T) {
	app := buildApp(&scriptedLLM{}, staticCatalog{products: testProducts()}, "")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/products?category=HOME&limit=10", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list dto.ProductListResponse
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, "prod003", list.Items[0].ID)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/products/prod002", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/products/nope", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
}

func TestHealthYMetrics(t *testing.T) {
	app := buildApp(&scriptedLLM{}, staticCatalog{}, testJWTSecret)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "health es público aunque haya JWT")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "go_goroutines")
}
