package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/devsolaris/natursur-bot/internal/bot/domain"
	"github.com/devsolaris/natursur-bot/internal/config"
	"github.com/devsolaris/natursur-bot/internal/domain/models"
)

type OrderLogReader interface {
	ReadSince(cutoff time.Time) ([]models.Order, error)
}

// DigestService envía al administrador, una vez al día, el resumen de ventas
// de las últimas 24 horas según el registro local de pedidos.
type DigestService struct {
	config         *config.Config
	telegramClient domain.TelegramClientAPI
	orderLog       OrderLogReader
	logger         *slog.Logger
	scheduler      *gocron.Scheduler
}

func NewDigestService(
	config *config.Config,
	telegramClient domain.TelegramClientAPI,
	orderLog OrderLogReader,
	logger *slog.Logger,
) *DigestService {
	return &DigestService{
		config:         config,
		telegramClient: telegramClient,
		orderLog:       orderLog,
		logger:         logger,
		scheduler:      gocron.NewScheduler(time.Local),
	}
}

func (s *DigestService) Start(ctx context.Context) {
	s.logger.Info("Arrancando el planificador del resumen diario",
		"deliveryTime", s.config.DigestDeliveryTime,
	)

	_, err := s.scheduler.Every(1).Minute().Do(func() {
		now := time.Now()
		if fmt.Sprintf("%02d:%02d", now.Hour(), now.Minute()) != s.config.DigestDeliveryTime {
			return
		}

		if err := s.SendDigest(ctx, now); err != nil {
			s.logger.Error("Error al enviar el resumen diario",
				"error", err,
			)
		}
	})

	if err != nil {
		s.logger.Error("Error al configurar el planificador del resumen diario",
			"error", err,
		)

		return
	}

	s.scheduler.StartAsync()
}

func (s *DigestService) Stop() {
	s.logger.Info("Deteniendo el planificador del resumen diario")
	s.scheduler.Stop()
}

func (s *DigestService) SendDigest(ctx context.Context, now time.Time) error {
	orders, err := s.orderLog.ReadSince(now.Add(-24 * time.Hour))
	if err != nil {
		return err
	}

	if len(orders) == 0 {
		s.logger.Info("Sin pedidos en las últimas 24 horas, no se envía resumen")
		return nil
	}

	return s.telegramClient.SendMessage(ctx, s.config.AdminChatID, FormatDigest(orders))
}

// FormatDigest agrega los pedidos por producto y construye el texto del
// resumen diario.
func FormatDigest(orders []models.Order) string {
	units := make(map[string]int)

	var names []string

	for _, order := range orders {
		for _, item := range order.Items {
			if _, seen := units[item.Product]; !seen {
				names = append(names, item.Product)
			}

			units[item.Product] += item.Cantidad
		}
	}

	sort.Strings(names)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📈 *Resumen de ventas (últimas 24 h)*\n\n🧾 Pedidos: %d\n", len(orders)))

	for _, name := range names {
		sb.WriteString(fmt.Sprintf("• %s: %d unidad(es)\n", name, units[name]))
	}

	return strings.TrimRight(sb.String(), "\n")
}
