package repository

import (
	"context"

	"github.com/jhoicas/Recomendador-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia del catálogo (DIP).
// El servicio de recomendación solo lee; Upsert lo usa la carga inicial (seed_catalog).
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	Upsert(ctx context.Context, product entity.Product) error
}
