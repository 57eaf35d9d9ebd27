package notify

import (
	"context"
	"log/slog"

	"github.com/devsolaris/natursur-bot/internal/domain/models"
)

// FallbackOrderNotifier intenta el transporte primario y, si falla, entrega el
// pedido por el secundario.
type FallbackOrderNotifier struct {
	primary   OrderNotifier
	secondary OrderNotifier
	logger    *slog.Logger
}

func NewFallbackOrderNotifier(primary, secondary OrderNotifier, logger *slog.Logger) *FallbackOrderNotifier {
	return &FallbackOrderNotifier{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

func (n *FallbackOrderNotifier) SubmitOrder(ctx context.Context, order *models.Order) error {
	err := n.primary.SubmitOrder(ctx, order)
	if err == nil {
		return nil
	}

	n.logger.Warn("El transporte primario de pedidos falló, usando el secundario",
		"error", err,
		"userID", order.UserID,
	)

	if fbErr := n.secondary.SubmitOrder(ctx, order); fbErr != nil {
		n.logger.Error("El transporte secundario de pedidos también falló",
			"error", fbErr,
			"userID", order.UserID,
		)

		return fbErr
	}

	return nil
}
