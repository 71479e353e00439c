package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Recomendador-api/internal/application/ports"
	"github.com/jhoicas/Recomendador-api/internal/application/usecase"
	infraai "github.com/jhoicas/Recomendador-api/internal/infrastructure/ai"
	"github.com/jhoicas/Recomendador-api/internal/infrastructure/catalog"
	"github.com/jhoicas/Recomendador-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Recomendador-api/internal/interfaces/http"
	"github.com/jhoicas/Recomendador-api/pkg/config"
	"github.com/jhoicas/Recomendador-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("ai_provider", cfg.AI.Provider).
		Str("catalog_source", cfg.Catalog.Source).
		Bool("auth", cfg.JWT.Enabled()).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Fuente del catálogo: archivo JSON (por defecto) o PostgreSQL.
	var catalogSrc ports.CatalogSource
	switch cfg.Catalog.Source {
	case config.CatalogSourcePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		catalogSrc = postgres.NewProductRepository(pool)
	default:
		fileSrc, err := catalog.NewJSONFile(cfg.Catalog.FilePath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Catalog.FilePath).Msg("cargar catálogo")
		}
		catalogSrc = fileSrc
	}

	// La API key se valida en cada llamada: sin clave el servicio arranca y responde 503.
	llm, err := infraai.NewLLMService(cfg.AI, log)
	if err != nil {
		log.Fatal().Err(err).Msg("proveedor LLM")
	}

	tagTimeout := cfg.AI.Timeout() / 2
	expander := usecase.NewLLMTagExpander(llm, log, cfg.AI.TagMaxTokens, tagTimeout)
	recommendationUC := usecase.NewRecommendationUseCase(llm, catalogSrc, expander, usecase.RecommendationConfig{
		MaxCandidates:      cfg.Recommend.MaxCandidates,
		PromptCatalogLimit: cfg.Recommend.PromptCatalogLimit,
		MaxTokens:          cfg.AI.MaxTokens,
		Temperature:        float32(cfg.AI.Temperature),
		Timeout:            cfg.AI.Timeout(),
	}, log)
	productUC := usecase.NewProductUseCase(catalogSrc)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: writeTimeout(tagTimeout, cfg.AI.Timeout()),
		IdleTimeout:  time.Second * 60,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Recomendador API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:          cfg.App.Name,
		RecommendationUC: recommendationUC,
		ProductUC:        productUC,
		JWTSecret:        cfg.JWT.Secret,
		Log:              log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// writeTimeout cubre el peor caso de una petición: búsqueda de etiquetas + llamada principal,
// más margen para cargar el catálogo y serializar.
func writeTimeout(tagTimeout, callTimeout time.Duration) time.Duration {
	return tagTimeout + callTimeout + 10*time.Second
}
