package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo tal como lo entrega la fuente externa.
// Este sistema nunca lo modifica ni lo persiste; solo lo lee para filtrar y recomendar.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"` // precio de venta, no negativo
	Brand     string          `json:"brand"`
	Tags      []string        `json:"tags"`
	Rating    float64         `json:"rating"`
	Inventory int             `json:"inventory"`
}

