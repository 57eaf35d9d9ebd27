package middleware_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/devsolaris/natursur-bot/internal/common/middleware"
)

func newTestLimiter(t *testing.T, messagesPerWindow int, window time.Duration) *middleware.ChatRateLimiter {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	return middleware.NewChatRateLimiter(ctx, messagesPerWindow, window, logger)
}

func TestChatRateLimiter_AllowsUpToBurst(t *testing.T) {
	limiter := newTestLimiter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, notifyOnce := limiter.Allow(123456)
		assert.True(t, allowed, "mensaje %d", i+1)
		assert.False(t, notifyOnce)
	}
}

func TestChatRateLimiter_NotifiesOnceWhenExceeded(t *testing.T) {
	limiter := newTestLimiter(t, 1, time.Minute)

	allowed, _ := limiter.Allow(123456)
	assert.True(t, allowed)

	allowed, notifyOnce := limiter.Allow(123456)
	assert.False(t, allowed)
	assert.True(t, notifyOnce)

	// Los descartes siguientes no avisan otra vez.
	allowed, notifyOnce = limiter.Allow(123456)
	assert.False(t, allowed)
	assert.False(t, notifyOnce)
}

func TestChatRateLimiter_ChatsAreIndependent(t *testing.T) {
	limiter := newTestLimiter(t, 1, time.Minute)

	allowed, _ := limiter.Allow(1)
	assert.True(t, allowed)

	allowed, _ = limiter.Allow(1)
	assert.False(t, allowed)

	allowed, _ = limiter.Allow(2)
	assert.True(t, allowed)
}
