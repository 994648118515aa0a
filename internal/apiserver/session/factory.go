package session

import (
	"fmt"

	"github.com/arachchispices/spicestore/internal/common/config"
)

// NewStore builds a session store for the configured type.
func NewStore(cfg *config.SessionConfig) (Store, error) {
	switch cfg.Type {
	case "", "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(&cfg.Redis)
	default:
		return nil, fmt.Errorf("unsupported session store type: %s", cfg.Type)
	}
}
