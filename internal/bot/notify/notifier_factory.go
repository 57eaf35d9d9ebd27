package notify

import (
	"context"
	"log/slog"
	"strings"

	"github.com/devsolaris/natursur-bot/internal/bot/clients"
	"github.com/devsolaris/natursur-bot/internal/config"
	domainerrors "github.com/devsolaris/natursur-bot/internal/domain/errors"
	"github.com/devsolaris/natursur-bot/internal/domain/models"
)

// OrderNotifier entrega un pedido confirmado al colaborador externo que
// corresponda según la configuración.
type OrderNotifier interface {
	SubmitOrder(ctx context.Context, order *models.Order) error
}

type NotifierType string

const (
	HTTPNotifier  NotifierType = "HTTP"
	KafkaNotifier NotifierType = "KAFKA"
)

type NotifierFactory struct {
	config *config.Config
	logger *slog.Logger
}

func NewNotifierFactory(config *config.Config, logger *slog.Logger) *NotifierFactory {
	return &NotifierFactory{
		config: config,
		logger: logger,
	}
}

func (f *NotifierFactory) CreateNotifier() (OrderNotifier, error) {
	primary, err := f.create(NotifierType(strings.ToUpper(f.config.OrderTransport)))
	if err != nil {
		return nil, err
	}

	if !f.config.FallbackEnabled {
		return primary, nil
	}

	secondary, err := f.create(NotifierType(strings.ToUpper(f.config.FallbackTransport)))
	if err != nil {
		return nil, err
	}

	f.logger.Info("Notificador de pedidos con fallback",
		"primary", f.config.OrderTransport,
		"secondary", f.config.FallbackTransport,
	)

	return NewFallbackOrderNotifier(primary, secondary, f.logger), nil
}

func (f *NotifierFactory) create(notifierType NotifierType) (OrderNotifier, error) {
	f.logger.Info("Creando notificador de pedidos",
		"type", notifierType,
	)

	switch notifierType {
	case HTTPNotifier:
		return NewHTTPOrderNotifier(clients.NewBackendClient(f.config, f.logger)), nil
	case KafkaNotifier:
		brokers := strings.Split(f.config.KafkaBrokers, ",")
		return NewKafkaOrderNotifier(brokers, f.config.TopicOrders, f.config.TopicOrdersDLQ, f.logger), nil
	default:
		return nil, &domainerrors.ErrUnknownNotifier{Transport: string(notifierType)}
	}
}
