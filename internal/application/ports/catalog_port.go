package ports

import (
	"context"

	"github.com/jhoicas/Recomendador-api/internal/domain/entity"
)

// CatalogSource colaborador externo que entrega el catálogo completo como lista plana.
// El recomendador nunca modifica ni persiste lo que recibe.
type CatalogSource interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
}
