package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/devsolaris/natursur-bot/internal/domain/models"
)

// messageWriter es la parte de kafka.Writer que usa el notificador.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaOrderNotifier struct {
	producer    messageWriter
	dlqProducer messageWriter
	logger      *slog.Logger
	orderTopic  string
	dlqTopic    string
}

func NewKafkaOrderNotifier(brokers []string, orderTopic, dlqTopic string, logger *slog.Logger) *KafkaOrderNotifier {
	producer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        orderTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		Logger:       kafka.LoggerFunc(logger.Debug),
		ErrorLogger:  kafka.LoggerFunc(logger.Error),
	}

	dlqProducer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        dlqTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		Logger:       kafka.LoggerFunc(logger.Debug),
		ErrorLogger:  kafka.LoggerFunc(logger.Error),
	}

	return &KafkaOrderNotifier{
		producer:    producer,
		dlqProducer: dlqProducer,
		logger:      logger,
		orderTopic:  orderTopic,
		dlqTopic:    dlqTopic,
	}
}

func (n *KafkaOrderNotifier) SubmitOrder(ctx context.Context, order *models.Order) error {
	n.logger.Info("Publicando pedido en Kafka",
		"userID", order.UserID,
		"items", len(order.Items),
		"topic", n.orderTopic,
	)

	value, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("error al serializar el pedido: %w", err)
	}

	err = n.producer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(fmt.Sprintf("%d", order.UserID)),
		Value: value,
		Time:  time.Now(),
	})

	if err != nil {
		n.logger.Error("Error al publicar el pedido en Kafka",
			"error", err,
		)

		// El pedido rechazado se conserva en la DLQ para revisarlo a mano.
		if dlqErr := n.SendToDLQ(ctx, value, err.Error()); dlqErr != nil {
			n.logger.Error("No se pudo conservar el pedido en la DLQ",
				"error", dlqErr,
			)
		}

		return fmt.Errorf("error al publicar el pedido en Kafka: %w", err)
	}

	n.logger.Info("Pedido publicado en Kafka correctamente")

	return nil
}

func (n *KafkaOrderNotifier) SendToDLQ(ctx context.Context, message []byte, errMsg string) error {
	n.logger.Info("Enviando mensaje a la DLQ",
		"error", errMsg,
		"topic", n.dlqTopic,
	)

	err := n.dlqProducer.WriteMessages(ctx, kafka.Message{
		Key:   []byte("error"),
		Value: message,
		Headers: []kafka.Header{
			{Key: "error", Value: []byte(errMsg)},
			{Key: "timestamp", Value: []byte(time.Now().Format(time.RFC3339))},
		},
		Time: time.Now(),
	})

	if err != nil {
		n.logger.Error("Error al enviar el mensaje a la DLQ",
			"error", err,
		)

		return fmt.Errorf("error al enviar el mensaje a la DLQ: %w", err)
	}

	return nil
}

func (n *KafkaOrderNotifier) Close() error {
	if err := n.producer.Close(); err != nil {
		return err
	}

	return n.dlqProducer.Close()
}
