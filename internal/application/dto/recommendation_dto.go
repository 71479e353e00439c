package dto

import "github.com/jhoicas/Recomendador-api/internal/domain/entity"

// PreferencesRequest preferencias declaradas por el usuario.
type PreferencesRequest struct {
	PriceRange string   `json:"priceRange" validate:"omitempty,max=32"`
	Categories []string `json:"categories" validate:"omitempty,max=50,dive,max=100"`
	Brands     []string `json:"brands" validate:"omitempty,max=50,dive,max=100"`
}

// RecommendationRequest entrada de POST /api/recommendations.
// BrowsingHistory son ids de producto en el orden en que el usuario los vio.
type RecommendationRequest struct {
	Preferences     PreferencesRequest `json:"preferences"`
	BrowsingHistory []string           `json:"browsing_history" validate:"omitempty,max=100,dive,required,max=100"`
}

// ToEntity convierte las preferencias al modelo de dominio.
func (p PreferencesRequest) ToEntity() entity.UserPreferences {
	return entity.UserPreferences{
		PriceRange: p.PriceRange,
		Categories: p.Categories,
		Brands:     p.Brands,
	}
}

// RecommendationResponse salida de una recomendación.
// Si el modelo devolvió texto ilegible, Recommendations va vacío y Error lleva el motivo.
type RecommendationResponse struct {
	RequestID       string                  `json:"request_id"`
	Recommendations []entity.Recommendation `json:"recommendations"`
	Count           int                     `json:"count"`
	Error           string                  `json:"error,omitempty"`
}

// ProductListResponse listado del catálogo.
type ProductListResponse struct {
	Items []entity.Product `json:"items"`
	Total int              `json:"total"`
}
