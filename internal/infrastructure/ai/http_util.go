package ai

import "strings"

const maxErrorBody = 512

// truncateBody recorta el cuerpo de una respuesta de error para adjuntarlo al mensaje.
func truncateBody(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}

// redactKey oculta la API key si aparece en un mensaje (p. ej. la query ?key= de Gemini).
func redactKey(msg, key string) string {
	if key == "" {
		return msg
	}
	return strings.ReplaceAll(msg, key, "***")
}
