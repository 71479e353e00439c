package recommend

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/jhoicas/Recomendador-api/internal/domain/entity"
	"github.com/jhoicas/Recomendador-api/pkg/llmjson"
)

// DefaultScore confianza asignada cuando el modelo omite "score".
const DefaultScore = 5

// ParseResult resultado del parseo de la respuesta del modelo.
// Si Err no está vacío, Recommendations es una lista vacía (nunca nil).
// Dropped guarda los product_id que no existen en el catálogo, para registrarlos.
type ParseResult struct {
	Recommendations []entity.Recommendation
	Dropped         []string
	Err             string
}

// Count número de recomendaciones válidas.
func (r ParseResult) Count() int {
	return len(r.Recommendations)
}

// Failed indica que la respuesta no se pudo interpretar.
func (r ParseResult) Failed() bool {
	return r.Err != ""
}

func parseFailure(msg string) ParseResult {
	return ParseResult{Recommendations: []entity.Recommendation{}, Dropped: []string{}, Err: msg}
}

// ParseResponse extrae recomendaciones del texto libre del modelo.
//
// Toma el fragmento entre el primer '[' y el último ']' como array JSON, de modo que tolera prosa o
// bloques markdown alrededor. Cada entrada se resuelve contra catalog por id exacto; las que no
// existen se descartan (nunca se inventan productos). Nunca entra en pánico ni devuelve error:
// cualquier fallo se expresa en ParseResult.Err.
func ParseResponse(raw string, catalog []entity.Product) ParseResult {
	arr, ok := llmjson.ExtractArray(raw)
	if !ok {
		return parseFailure("no se pudieron extraer recomendaciones de la respuesta del LLM")
	}

	var entries []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(arr), &entries); err != nil {
		return parseFailure(fmt.Sprintf("error al parsear recomendaciones: %v", err))
	}

	byID := make(map[string]entity.Product, len(catalog))
	for _, p := range catalog {
		if _, exists := byID[p.ID]; !exists {
			byID[p.ID] = p
		}
	}

	result := ParseResult{
		Recommendations: make([]entity.Recommendation, 0, len(entries)),
		Dropped:         []string{},
	}
	for _, e := range entries {
		id := stringField(e["product_id"])
		product, found := byID[id]
		if !found {
			result.Dropped = append(result.Dropped, id)
			continue
		}
		result.Recommendations = append(result.Recommendations, entity.Recommendation{
			Product:         product,
			Explanation:     stringField(e["explanation"]),
			ConfidenceScore: scoreField(e["score"]),
		})
	}
	return result
}

// stringField devuelve el string JSON o "" si falta o no es string.
func stringField(raw json.RawMessage) string {
	if isAbsent(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// scoreField interpreta "score" con la mejor voluntad: número (se trunca a entero) o string numérico.
// Cualquier otra cosa cae en DefaultScore. No se fuerza el rango 1–10.
func scoreField(raw json.RawMessage) int {
	if isAbsent(raw) {
		return DefaultScore
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return scoreFromFloat(f)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return scoreFromFloat(f)
		}
	}
	return DefaultScore
}

// scoreFromFloat trunca f; fuera del rango de int (o NaN/Inf) devuelve DefaultScore.
func scoreFromFloat(f float64) int {
	if math.IsNaN(f) || f < math.MinInt || f >= math.MaxInt {
		return DefaultScore
	}
	return int(f)
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
