package sessionstore

import (
	"fmt"

	appsession "github.com/timbermart/backend/internal/application/session"
	"github.com/timbermart/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Factory creates session stores based on configuration
type Factory struct {
	redisConfig   config.RedisConfig
	sessionConfig config.SessionConfig
	logger        *zap.Logger
	allowFallback bool
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithMemoryFallback controls whether to fall back to the in-memory store
// when Redis is unavailable. Default is true.
func WithMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowFallback = allow
	}
}

// NewFactory creates a new session store factory
func NewFactory(redisCfg config.RedisConfig, sessionCfg config.SessionConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:   redisCfg,
		sessionConfig: sessionCfg,
		logger:        zap.NewNop(),
		allowFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateStore creates a session store per the configured backend. With the
// redis backend it tries Redis first and falls back to memory when allowed;
// carts in a fallback store are lost on restart.
func (f *Factory) CreateStore() (appsession.SessionStore, error) {
	switch f.sessionConfig.Backend {
	case "memory":
		f.logger.Info("Using in-memory session store")
		return NewMemorySessionStore(f.sessionConfig.TTL), nil

	case "redis":
		store, err := NewRedisSessionStore(f.redisConfig, f.sessionConfig.TTL)
		if err == nil {
			f.logger.Info("Using Redis session store",
				zap.String("addr", f.redisConfig.Addr()),
				zap.Duration("ttl", f.sessionConfig.TTL))
			return store, nil
		}

		if !f.allowFallback {
			return nil, fmt.Errorf("failed to create Redis session store: %w", err)
		}

		f.logger.Warn("Redis unavailable, falling back to in-memory session store",
			zap.Error(err))
		return NewMemorySessionStore(f.sessionConfig.TTL), nil

	default:
		return nil, fmt.Errorf("unknown session backend %q", f.sessionConfig.Backend)
	}
}
