package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/ventas-analytics/internal/application/analytics"
	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/application/ports"
	"github.com/jhoicas/ventas-analytics/internal/domain"
)

// Proveedores de IA soportados.
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// AIConfig proveedor por defecto, keys de respaldo (config) y timeout por llamada.
type AIConfig struct {
	DefaultProvider string
	FallbackKeys    map[string]string
	Timeout         time.Duration
}

// AIUseCase genera el resumen en lenguaje natural de la selección del tablero.
type AIUseCase struct {
	dashboard *analytics.DashboardUseCase
	settings  *SettingsUseCase
	factory   ports.LLMFactory
	cfg       AIConfig
}

// NewAIUseCase construye el caso de uso.
func NewAIUseCase(dashboard *analytics.DashboardUseCase, settings *SettingsUseCase, factory ports.LLMFactory, cfg AIConfig) *AIUseCase {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.DefaultProvider == "" {
		cfg.DefaultProvider = ProviderGemini
	}
	return &AIUseCase{dashboard: dashboard, settings: settings, factory: factory, cfg: cfg}
}

// Summarize filtra, arma el prompt y delega al proveedor elegido.
// La key guardada en settings (<provider>_api_key) tiene prioridad sobre la de config.
func (uc *AIUseCase) Summarize(ctx context.Context, req dto.AISummaryRequest) (*dto.AISummaryResponse, error) {
	provider := strings.ToLower(strings.TrimSpace(req.Provider))
	if provider == "" {
		provider = uc.cfg.DefaultProvider
	}
	if provider != ProviderAnthropic && provider != ProviderGemini {
		return nil, fmt.Errorf("%w: proveedor %q no soportado", domain.ErrInvalidInput, provider)
	}

	rows, filter, err := uc.dashboard.Rows(ctx, req.Filter)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no hay datos para la selección", domain.ErrNotFound)
	}

	apiKey, err := uc.apiKey(ctx, provider)
	if err != nil {
		return nil, err
	}
	llm, err := uc.factory.New(provider, apiKey)
	if err != nil {
		return nil, err
	}

	scope := filter.Describe()
	prompt := BuildSummaryPrompt(rows, scope)

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()

	text, err := llm.Summarize(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("resumen IA: %w", err)
	}
	return &dto.AISummaryResponse{
		Provider: provider,
		Context:  scope,
		Records:  len(rows),
		Summary:  text,
	}, nil
}

func (uc *AIUseCase) apiKey(ctx context.Context, provider string) (string, error) {
	if uc.settings != nil {
		v, ok, err := uc.settings.Resolve(ctx, APIKeySetting(provider))
		if err != nil {
			return "", fmt.Errorf("leer api key: %w", err)
		}
		if ok && v != "" {
			return v, nil
		}
	}
	if v := uc.cfg.FallbackKeys[provider]; v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w: falta %s", domain.ErrAINotConfigured, APIKeySetting(provider))
}
