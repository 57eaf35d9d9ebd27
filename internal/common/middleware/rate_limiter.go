package middleware

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type chatRateLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
	notified bool
}

// ChatRateLimiter limita los mensajes aceptados por chat, para que un usuario
// no pueda inundar el bot.
type ChatRateLimiter struct {
	chats      map[int64]*chatRateLimiter
	mu         sync.Mutex
	rate       rate.Limit
	burst      int
	expiration time.Duration
	logger     *slog.Logger

	ctx context.Context
}

func NewChatRateLimiter(
	ctx context.Context,
	messagesPerWindow int,
	window time.Duration,
	logger *slog.Logger,
) *ChatRateLimiter {
	r := rate.Limit(float64(messagesPerWindow) / window.Seconds())

	m := &ChatRateLimiter{
		chats:      make(map[int64]*chatRateLimiter),
		rate:       r,
		burst:      messagesPerWindow,
		expiration: 1 * time.Hour,
		logger:     logger,
		ctx:        ctx,
	}

	go m.cleanupChats()

	return m
}

// Allow informa si el chat puede enviar otro mensaje. notifyOnce es true solo
// la primera vez que se supera el límite, para avisar al usuario una vez y no
// responder a cada mensaje descartado.
func (m *ChatRateLimiter) Allow(chatID int64) (allowed, notifyOnce bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	chat, exists := m.chats[chatID]
	if !exists {
		chat = &chatRateLimiter{
			limiter: rate.NewLimiter(m.rate, m.burst),
		}
		m.chats[chatID] = chat
	}

	chat.lastSeen = time.Now()

	if chat.limiter.Allow() {
		chat.notified = false
		return true, false
	}

	if !chat.notified {
		chat.notified = true
		return false, true
	}

	return false, false
}

func (m *ChatRateLimiter) cleanupChats() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			for chatID, chat := range m.chats {
				if time.Since(chat.lastSeen) > m.expiration {
					delete(m.chats, chatID)
				}
			}
			m.mu.Unlock()
		case <-m.ctx.Done():
			m.logger.Debug("Limpieza del limitador de mensajes detenida")
			return
		}
	}
}
