// Package store elige el backend de persistencia (SQLite embebido o PostgreSQL) según config.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/postgres"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/sqlite"
	"github.com/jhoicas/ventas-analytics/pkg/config"
)

// Store repositorios de un mismo backend, ya migrado.
type Store struct {
	Driver    string
	Customers repository.CustomerRepository
	Sales     repository.SalesRepository
	Settings  repository.SettingRepository
	close     func()
}

// Close libera la conexión o el pool.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open abre el backend configurado y aplica las migraciones.
func Open(ctx context.Context, cfg config.DBConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:    cfg.Driver,
			Customers: postgres.NewCustomerRepository(pool),
			Sales:     postgres.NewSalesRepository(pool),
			Settings:  postgres.NewSettingRepository(pool),
			close:     pool.Close,
		}, nil
	case config.DriverSQLite, "":
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:    config.DriverSQLite,
			Customers: sqlite.NewCustomerRepository(db),
			Sales:     sqlite.NewSalesRepository(db),
			Settings:  sqlite.NewSettingRepository(db),
			close:     func() { _ = db.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("store: driver %q no soportado", cfg.Driver)
	}
}
