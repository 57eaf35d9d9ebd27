package clients

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-resty/resty/v2"

	"github.com/devsolaris/natursur-bot/internal/common/httputil"
	"github.com/devsolaris/natursur-bot/internal/config"
	domainerrors "github.com/devsolaris/natursur-bot/internal/domain/errors"
	"github.com/devsolaris/natursur-bot/internal/domain/models"
)

// BackendClient envía los pedidos confirmados al API de pedidos mediante
// POST /api/orders con token bearer.
type BackendClient struct {
	client   *resty.Client
	baseURL  string
	apiToken string
	logger   *slog.Logger
}

func NewBackendClient(cfg *config.Config, logger *slog.Logger) *BackendClient {
	client := httputil.CreateResilientHTTPClient(cfg, logger, "order_backend")

	return &BackendClient{
		client:   client,
		baseURL:  cfg.BackendBaseURL,
		apiToken: cfg.BackendAPIToken,
		logger:   logger,
	}
}

func (c *BackendClient) SubmitOrder(ctx context.Context, order *models.Order) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(c.apiToken).
		SetBody(order).
		Post(c.baseURL + "/api/orders")
	if err != nil {
		return fmt.Errorf("error al llamar al backend de pedidos: %w", err)
	}

	if resp.IsError() {
		return &domainerrors.HTTPError{StatusCode: resp.StatusCode()}
	}

	c.logger.Info("Pedido aceptado por el backend",
		"userID", order.UserID,
		"items", len(order.Items),
		"status", resp.StatusCode(),
	)

	return nil
}
