package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Recomendador-api/internal/application/ports"
	"github.com/jhoicas/Recomendador-api/internal/domain/entity"
	"github.com/jhoicas/Recomendador-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository = (*ProductRepo)(nil)
	_ ports.CatalogSource          = (*ProductRepo)(nil)
)

// Schema tabla products esperada por ProductRepo. seed_catalog la crea si no existe.
const Schema = `
CREATE TABLE IF NOT EXISTS products (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	category   TEXT NOT NULL DEFAULT '',
	price      NUMERIC(12,2) NOT NULL CHECK (price >= 0),
	brand      TEXT NOT NULL DEFAULT '',
	tags       TEXT[] NOT NULL DEFAULT '{}',
	rating     DOUBLE PRECISION NOT NULL DEFAULT 0,
	inventory  INTEGER NOT NULL DEFAULT 0,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const productColumns = `id, name, category, price, brand, tags, rating, inventory`

// ProductRepo catálogo de productos sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// ListProducts devuelve el catálogo completo ordenado por id (orden estable para el filtro).
func (r *ProductRepo) ListProducts(ctx context.Context) ([]entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	list := make([]entity.Product, 0, 64)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Upsert inserta o actualiza un producto por id.
func (r *ProductRepo) Upsert(ctx context.Context, p entity.Product) error {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (id, name, category, price, brand, tags, rating, inventory, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, category = EXCLUDED.category, price = EXCLUDED.price,
			brand = EXCLUDED.brand, tags = EXCLUDED.tags, rating = EXCLUDED.rating,
			inventory = EXCLUDED.inventory, updated_at = now()`,
		p.ID, p.Name, p.Category, p.Price, p.Brand, tags, p.Rating, p.Inventory,
	)
	if err != nil {
		return fmt.Errorf("upsert product %s: %w", p.ID, err)
	}
	return nil
}

func scanProduct(row pgx.Row) (entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Brand, &p.Tags, &p.Rating, &p.Inventory)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, err
}
