package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/devsolaris/natursur-bot/internal/domain/models"
)

// SessionRepository guarda las sesiones en Redis con TTL, de modo que un
// carrito a medias sobrevive a un reinicio del bot.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewSessionRepository(redisURL, password string, db int, ttl time.Duration, logger *slog.Logger) (*SessionRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("error al conectar con Redis: %w", err)
	}

	logger.Info("Conexión con Redis establecida correctamente")

	return &SessionRepository{
		client: client,
		ttl:    ttl,
		logger: logger,
	}, nil
}

func sessionKey(chatID int64) string {
	return fmt.Sprintf("session:%d", chatID)
}

func (r *SessionRepository) Get(ctx context.Context, chatID int64) (*models.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(chatID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}

		return nil, fmt.Errorf("error al leer la sesión de Redis: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("error al deserializar la sesión: %w", err)
	}

	return &session, nil
}

func (r *SessionRepository) Put(ctx context.Context, chatID int64, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("error al serializar la sesión: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(chatID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("error al guardar la sesión en Redis: %w", err)
	}

	return nil
}

func (r *SessionRepository) Remove(ctx context.Context, chatID int64) error {
	if err := r.client.Del(ctx, sessionKey(chatID)).Err(); err != nil {
		return fmt.Errorf("error al eliminar la sesión de Redis: %w", err)
	}

	return nil
}

func (r *SessionRepository) Close() error {
	return r.client.Close()
}
