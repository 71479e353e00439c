// Package recommend contiene la lógica pura del recomendador: bandas de precio, filtrado de
// candidatos, construcción del prompt y parseo de la respuesta del modelo.
// No conoce HTTP ni proveedores de LLM; la expansión de etiquetas llega como TagExpander.
package recommend

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Bandas de precio reconocidas. Cualquier otra banda (o vacía) no impone tope.
const (
	PriceBandUnder25  = "under25"
	PriceBandUnder50  = "under50"
	PriceBandUnder100 = "under100"
	PriceBandUnder200 = "under200"
	PriceBandUnder500 = "under500"
	PriceBandAll      = "all"
)

var priceCaps = map[string]decimal.Decimal{
	PriceBandUnder25:  decimal.NewFromInt(25),
	PriceBandUnder50:  decimal.NewFromInt(50),
	PriceBandUnder100: decimal.NewFromInt(100),
	PriceBandUnder200: decimal.NewFromInt(200),
	PriceBandUnder500: decimal.NewFromInt(500),
}

// PriceLimit tope de precio inclusivo. El valor cero no impone tope.
type PriceLimit struct {
	max     decimal.Decimal
	bounded bool
}

// NoPriceLimit acepta cualquier precio.
var NoPriceLimit = PriceLimit{}

// MaxPrice construye un tope explícito.
func MaxPrice(ceiling decimal.Decimal) PriceLimit {
	return PriceLimit{max: ceiling, bounded: true}
}

// LimitForBand traduce una banda a su tope. "all" y bandas desconocidas no imponen tope.
func LimitForBand(band string) PriceLimit {
	ceiling, ok := priceCaps[strings.ToLower(strings.TrimSpace(band))]
	if !ok {
		return NoPriceLimit
	}
	return MaxPrice(ceiling)
}

// Max devuelve el tope y si existe.
func (l PriceLimit) Max() (decimal.Decimal, bool) {
	return l.max, l.bounded
}

// Allows indica si price no supera el tope.
func (l PriceLimit) Allows(price decimal.Decimal) bool {
	if !l.bounded {
		return true
	}
	return price.LessThanOrEqual(l.max)
}
