package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Recomendador-api/internal/application/dto"
	"github.com/jhoicas/Recomendador-api/internal/application/ports"
	"github.com/jhoicas/Recomendador-api/internal/domain"
	"github.com/jhoicas/Recomendador-api/internal/domain/entity"
)

// ProductUseCase consultas de solo lectura sobre el catálogo.
type ProductUseCase struct {
	catalog ports.CatalogSource
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(catalog ports.CatalogSource) *ProductUseCase {
	return &ProductUseCase{catalog: catalog}
}

// List lista productos del catálogo, opcionalmente filtrados por categoría, con paginación.
func (uc *ProductUseCase) List(ctx context.Context, category string, limit, offset int) (*dto.ProductListResponse, error) {
	all, err := uc.catalog.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar catálogo: %w: %w", domain.ErrCatalogUnavailable, err)
	}
	filtered := make([]entity.Product, 0, len(all))
	for _, p := range all {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		filtered = append(filtered, p)
	}

	total := len(filtered)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return &dto.ProductListResponse{
		Items: filtered[offset:end],
		Total: total,
	}, nil
}

// GetByID obtiene un producto por ID. Devuelve domain.ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	all, err := uc.catalog.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtener producto: %w: %w", domain.ErrCatalogUnavailable, err)
	}
	for _, p := range all {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}
