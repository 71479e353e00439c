// Package catalog fuentes de catálogo que no dependen de base de datos.
package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/goccy/go-json"

	"github.com/jhoicas/Recomendador-api/internal/application/ports"
	"github.com/jhoicas/Recomendador-api/internal/domain/entity"
)

var _ ports.CatalogSource = (*JSONFile)(nil)

// JSONFile catálogo leído de un archivo JSON (arreglo de productos).
// Se carga una vez y se sirve desde memoria; Reload vuelve a leer el archivo.
type JSONFile struct {
	path string

	mu       sync.RWMutex
	products []entity.Product
}

// NewJSONFile lee y valida el archivo. Falla si no existe o si algún producto es inválido.
func NewJSONFile(path string) (*JSONFile, error) {
	c := &JSONFile{path: path}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload vuelve a leer el archivo; si falla se conserva el catálogo anterior.
func (c *JSONFile) Reload() error {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("catalog: leer %s: %w", c.path, err)
	}
	products, err := Decode(raw)
	if err != nil {
		return fmt.Errorf("catalog: %s: %w", c.path, err)
	}
	c.mu.Lock()
	c.products = products
	c.mu.Unlock()
	return nil
}

// ListProducts devuelve una copia del catálogo en el orden del archivo.
func (c *JSONFile) ListProducts(context.Context) ([]entity.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]entity.Product, len(c.products))
	copy(out, c.products)
	return out, nil
}

// Decode parsea un arreglo JSON de productos y valida lo mínimo: id y nombre presentes,
// ids únicos y precio no negativo.
func Decode(raw []byte) ([]entity.Product, error) {
	var products []entity.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("JSON inválido: %w", err)
	}
	seen := make(map[string]struct{}, len(products))
	for i := range products {
		p := &products[i]
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" || strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("producto %d: id y name son obligatorios", i)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("producto %d: id duplicado %q", i, p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("producto %s: precio negativo", p.ID)
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
	}
	return products, nil
}
