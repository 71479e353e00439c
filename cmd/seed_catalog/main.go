// seed_catalog carga un catálogo JSON (arreglo de productos) en la tabla products de PostgreSQL.
// Crea la tabla si no existe y hace upsert por id dentro de una sola transacción.
//
// Uso: go run ./cmd/seed_catalog [-encoding latin1] [ruta/products.json]
// Por defecto lee data/products.json. La conexión se toma de DATABASE_URL o DB_HOST, DB_PORT, etc.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Recomendador-api/internal/domain/repository"
	"github.com/jhoicas/Recomendador-api/internal/infrastructure/catalog"
	"github.com/jhoicas/Recomendador-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Recomendador-api/pkg/config"
	"github.com/jhoicas/Recomendador-api/pkg/logger"
)

func main() {
	encoding := flag.String("encoding", "utf8", "codificación del archivo: utf8 | latin1 | windows1252")
	flag.Parse()

	path := "data/products.json"
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	raw, err := readCatalog(path, *encoding)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("leer catálogo")
	}
	products, err := catalog.Decode(raw)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("catálogo inválido")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, postgres.Schema); err != nil {
		log.Fatal().Err(err).Msg("crear tabla products")
	}

	err = postgres.NewTxRunner(pool).Run(ctx, func(productRepo repository.ProductRepository) error {
		for _, p := range products {
			if err := productRepo.Upsert(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("cargar productos")
	}
	log.Info().Int("products", len(products)).Str("path", path).Msg("catálogo cargado")
}

// readCatalog lee el archivo convirtiéndolo a UTF-8 si viene en una codificación de un byte.
func readCatalog(path, encoding string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(encoding) {
	case "", "utf8", "utf-8":
	case "latin1", "iso-8859-1":
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	case "windows1252", "cp1252":
		r = transform.NewReader(f, charmap.Windows1252.NewDecoder())
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", encoding)
	}
	return io.ReadAll(r)
}
