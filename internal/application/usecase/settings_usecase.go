package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/domain"
	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
)

var settingKeyRe = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]{0,63}$`)

// SettingsUseCase lectura y escritura de ajustes clave/valor (API keys de IA, etc.).
type SettingsUseCase struct {
	repo repository.SettingRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// APIKeySetting nombre del ajuste que guarda la API key de un proveedor.
func APIKeySetting(provider string) string {
	return strings.ToLower(provider) + "_api_key"
}

func normalizeKey(key string) (string, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if !settingKeyRe.MatchString(key) {
		return "", fmt.Errorf("%w: clave de ajuste inválida", domain.ErrInvalidInput)
	}
	return key, nil
}

// Get devuelve el ajuste con el valor enmascarado si es un secreto.
func (uc *SettingsUseCase) Get(ctx context.Context, key string) (*dto.SettingDTO, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return nil, err
	}
	v, ok, err := uc.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	if isSecret(key) {
		return &dto.SettingDTO{Key: key, Value: MaskSecret(v), Masked: true}, nil
	}
	return &dto.SettingDTO{Key: key, Value: v}, nil
}

// Resolve valor sin enmascarar para uso interno.
func (uc *SettingsUseCase) Resolve(ctx context.Context, key string) (string, bool, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return "", false, err
	}
	return uc.repo.Get(ctx, key)
}

// Save guarda el valor recortado; último en escribir gana.
func (uc *SettingsUseCase) Save(ctx context.Context, key, value string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	return uc.repo.Save(ctx, key, strings.TrimSpace(value))
}

// Delete elimina el ajuste.
func (uc *SettingsUseCase) Delete(ctx context.Context, key string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, key)
}

func isSecret(key string) bool {
	return strings.HasSuffix(key, "_api_key") ||
		strings.Contains(key, "secret") ||
		strings.Contains(key, "password")
}

// MaskSecret deja visibles los 4 primeros y 4 últimos caracteres.
func MaskSecret(v string) string {
	r := []rune(v)
	if len(r) <= 8 {
		return strings.Repeat("*", len(r))
	}
	return string(r[:4]) + "..." + string(r[len(r)-4:])
}
