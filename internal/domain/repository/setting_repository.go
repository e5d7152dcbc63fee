package repository

import "context"

// SettingRepository almacén clave/valor independiente de ventas y clientes.
type SettingRepository interface {
	// Get devuelve found=false si la clave no existe.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Save(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
