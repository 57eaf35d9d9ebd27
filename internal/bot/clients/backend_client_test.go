package clients_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devsolaris/natursur-bot/internal/bot/clients"
	"github.com/devsolaris/natursur-bot/internal/config"
	domainerrors "github.com/devsolaris/natursur-bot/internal/domain/errors"
	"github.com/devsolaris/natursur-bot/internal/domain/models"
)

func newBackendConfig(baseURL string) *config.Config {
	return &config.Config{
		BackendBaseURL:             baseURL,
		BackendAPIToken:            "token-secreto",
		ExternalRequestTimeout:     2 * time.Second,
		RetryCount:                 0,
		RetryBackoff:               10 * time.Millisecond,
		RetryableStatusCodes:       []int{500, 502, 503, 504},
		CBSlidingWindowSize:        100,
		CBMinimumRequiredCalls:     100,
		CBFailureRateThreshold:     100,
		CBPermittedCallsInHalfOpen: 1,
		CBWaitDurationInOpenState:  1 * time.Second,
	}
}

func TestBackendClient_SubmitOrder(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	var (
		gotPath  string
		gotAuth  string
		gotBody  []byte
		gotCType string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotCType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := clients.NewBackendClient(newBackendConfig(server.URL), logger)

	order := &models.Order{
		UserID:   654321,
		Username: "mariapg",
		FullName: "María Pérez",
		Items: []models.OrderItem{
			{Product: "Batido F1 Herbalife", ProductID: "f1", Cantidad: 2},
		},
		Timestamp: "2026-03-14 18:30:00",
	}

	err := client.SubmitOrder(context.Background(), order)

	require.NoError(t, err)
	assert.Equal(t, "/api/orders", gotPath)
	assert.Equal(t, "Bearer token-secreto", gotAuth)
	assert.Contains(t, gotCType, "application/json")

	var payload map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &payload))

	assert.EqualValues(t, 654321, payload["userId"])
	assert.Equal(t, "mariapg", payload["username"])
	assert.Equal(t, "María Pérez", payload["fullName"])
	assert.Equal(t, "2026-03-14 18:30:00", payload["timestamp"])

	items, ok := payload["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)

	item, ok := items[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Batido F1 Herbalife", item["product"])
	assert.Equal(t, "f1", item["productId"])
	assert.EqualValues(t, 2, item["cantidad"])
}

func TestBackendClient_SubmitOrderServerError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := clients.NewBackendClient(newBackendConfig(server.URL), logger)

	err := client.SubmitOrder(context.Background(), &models.Order{UserID: 1})

	require.Error(t, err)

	var httpErr *domainerrors.HTTPError

	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
}
