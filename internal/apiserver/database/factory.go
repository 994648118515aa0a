package database

import (
	"fmt"

	"github.com/arachchispices/spicestore/internal/common/config"
)

// NewStore builds a Store for the configured database type.
func NewStore(cfg *config.DatabaseConfig) (Store, error) {
	switch cfg.Type {
	case "", "memory":
		return NewMemory(), nil
	case "sqlite":
		return NewSQLite(cfg)
	case "mysql":
		return NewMySQL(cfg)
	case "postgres":
		return NewPostgres(cfg)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
}
