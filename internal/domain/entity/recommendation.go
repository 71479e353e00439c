package entity

// UserPreferences preferencias declaradas por el usuario en cada llamada (no se persisten).
type UserPreferences struct {
	PriceRange string   `json:"priceRange"` // banda de precio: "under50", "all", ...
	Categories []string `json:"categories"`
	Brands     []string `json:"brands"`
}

// Recommendation producto recomendado por el modelo, ya resuelto contra el catálogo.
// ConfidenceScore va de 1 a 10 según la instrucción del prompt; no se fuerza el rango.
type Recommendation struct {
	Product         Product `json:"product"`
	Explanation     string  `json:"explanation"`
	ConfidenceScore int     `json:"confidence_score"`
}
