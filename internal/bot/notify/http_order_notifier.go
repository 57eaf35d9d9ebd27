package notify

import (
	"context"

	"github.com/devsolaris/natursur-bot/internal/domain/models"
)

type OrderBackend interface {
	SubmitOrder(ctx context.Context, order *models.Order) error
}

type HTTPOrderNotifier struct {
	backend OrderBackend
}

func NewHTTPOrderNotifier(backend OrderBackend) *HTTPOrderNotifier {
	return &HTTPOrderNotifier{backend: backend}
}

func (n *HTTPOrderNotifier) SubmitOrder(ctx context.Context, order *models.Order) error {
	return n.backend.SubmitOrder(ctx, order)
}
