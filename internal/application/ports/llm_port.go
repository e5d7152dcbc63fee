package ports

import "context"

// LLMService puerto de salida hacia un proveedor de modelos de lenguaje.
// Cualquier adaptador (Anthropic, Gemini, mock) debe implementar esta interfaz.
type LLMService interface {
	// Summarize envía el prompt y devuelve el texto generado (Markdown).
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	Summarize(ctx context.Context, prompt string) (string, error)
}

// LLMFactory construye el adaptador de un proveedor con la API key vigente.
// La key puede cambiar en caliente (settings), por eso no se fija al arrancar.
type LLMFactory interface {
	New(provider, apiKey string) (LLMService, error)
}
