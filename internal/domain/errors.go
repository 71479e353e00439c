package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrCatalogUnavailable = errors.New("catálogo no disponible")
	ErrLLMNotConfigured   = errors.New("servicio LLM no configurado")
	ErrLLMUpstream        = errors.New("error del proveedor LLM")
)
