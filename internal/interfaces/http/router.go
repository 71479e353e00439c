package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Recomendador-api/internal/application/usecase"
	"github.com/jhoicas/Recomendador-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName          string
	RecommendationUC *usecase.RecommendationUseCase
	ProductUC        *usecase.ProductUseCase
	JWTSecret        string
	Log              *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Operación (público)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Rutas de negocio (Bearer Token si JWT_SECRET está definido)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	recommendationHandler := NewRecommendationHandler(deps.RecommendationUC, deps.Log)
	api.Post("/recommendations", recommendationHandler.Recommend)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
}
