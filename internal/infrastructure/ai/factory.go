package ai

import (
	"fmt"

	"github.com/jhoicas/ventas-analytics/internal/application/ports"
	"github.com/jhoicas/ventas-analytics/internal/domain"
)

var _ ports.LLMFactory = (*Factory)(nil)

// Factory crea adaptadores por proveedor con la key vigente en cada llamada.
type Factory struct {
	AnthropicModel string
	GeminiModel    string
}

// NewFactory construye la fábrica con los modelos configurados.
func NewFactory(anthropicModel, geminiModel string) *Factory {
	return &Factory{AnthropicModel: anthropicModel, GeminiModel: geminiModel}
}

// New devuelve el adaptador del proveedor ("anthropic" | "gemini").
func (f *Factory) New(provider, apiKey string) (ports.LLMService, error) {
	switch provider {
	case "anthropic":
		return NewAnthropicService(apiKey, f.AnthropicModel), nil
	case "gemini":
		return NewGeminiService(apiKey, f.GeminiModel), nil
	default:
		return nil, fmt.Errorf("%w: proveedor de IA %q desconocido", domain.ErrInvalidInput, provider)
	}
}
