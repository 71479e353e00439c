// Package llmjson extrae estructuras JSON del texto libre que devuelven los modelos.
//
// Los modelos suelen envolver el JSON en prosa o en bloques markdown (```json ... ```);
// estas funciones no validan el contenido, solo recortan el fragmento candidato para
// que el llamador lo deserialice y maneje el error.
package llmjson

import "strings"

// ExtractArray devuelve el texto entre el primer '[' y el último ']' (ambos incluidos).
// ok es false si no existe un par de corchetes en ese orden.
func ExtractArray(text string) (string, bool) {
	return extractBetween(text, '[', ']')
}

// ExtractObject devuelve el texto entre la primera '{' y la última '}' (ambas incluidas).
func ExtractObject(text string) (string, bool) {
	return extractBetween(text, '{', '}')
}

func extractBetween(text string, open, close byte) (string, bool) {
	start := strings.IndexByte(text, open)
	if start == -1 {
		return "", false
	}
	end := strings.LastIndexByte(text, close)
	if end < start {
		return "", false
	}
	return text[start : end+1], true
}

// StripFences elimina un bloque de código markdown (```json … ``` o ``` … ```) y devuelve
// su contenido. Si no hay bloque, devuelve el texto sin espacios en los extremos.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	idx := strings.Index(text, "```")
	if idx == -1 {
		return text
	}
	// Quitar la línea de apertura (```json o ```)
	after := text[idx+3:]
	if nl := strings.Index(after, "\n"); nl != -1 {
		after = after[nl+1:]
	}
	if end := strings.LastIndex(after, "```"); end != -1 {
		after = after[:end]
	}
	return strings.TrimSpace(after)
}
