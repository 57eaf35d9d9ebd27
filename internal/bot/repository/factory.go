package repository

import (
	"log/slog"

	"github.com/devsolaris/natursur-bot/internal/bot/repository/memory"
	redisrepo "github.com/devsolaris/natursur-bot/internal/bot/repository/redis"
	"github.com/devsolaris/natursur-bot/internal/bot/service"
	"github.com/devsolaris/natursur-bot/internal/config"
	"github.com/devsolaris/natursur-bot/internal/domain/errors"
)

type Factory struct {
	config *config.Config
	logger *slog.Logger
}

func NewFactory(config *config.Config, logger *slog.Logger) *Factory {
	return &Factory{
		config: config,
		logger: logger,
	}
}

func (f *Factory) CreateSessionRepository() (service.SessionRepository, error) {
	switch f.config.SessionStore {
	case config.MemorySessionStore:
		f.logger.Info("Almacén de sesiones en memoria")
		return memory.NewSessionRepository(), nil
	case config.RedisSessionStore:
		f.logger.Info("Almacén de sesiones en Redis")
		return redisrepo.NewSessionRepository(
			f.config.RedisURL,
			f.config.RedisPassword,
			f.config.RedisDB,
			f.config.RedisSessionTTL,
			f.logger,
		)
	default:
		return nil, &errors.ErrUnknownSessionStore{Store: string(f.config.SessionStore)}
	}
}
