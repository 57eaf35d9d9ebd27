package telegram

import (
	"context"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/devsolaris/natursur-bot/internal/bot/domain"
	"github.com/devsolaris/natursur-bot/internal/common/metrics"
	"github.com/devsolaris/natursur-bot/internal/common/middleware"
	"github.com/devsolaris/natursur-bot/internal/domain/models"
)

type BotService interface {
	ProcessCommand(ctx context.Context, command *models.Command) (string, error)

	ProcessMessage(ctx context.Context, chatID int64, userID int64, text, username, fullName string) (string, error)

	ProcessCallback(ctx context.Context, callback *models.Callback) (string, error)
}

// Poller consume las actualizaciones de Telegram y las procesa una a una, en
// orden de llegada, de modo que los eventos de un mismo chat nunca se
// reordenan.
type Poller struct {
	telegramClient domain.TelegramClientAPI
	botService     BotService
	rateLimiter    *middleware.ChatRateLimiter
	logger         *slog.Logger
	updatesChan    tgbotapi.UpdatesChannel
	stopChan       chan struct{}
}

func NewPoller(
	telegramClient domain.TelegramClientAPI,
	botService BotService,
	rateLimiter *middleware.ChatRateLimiter,
	logger *slog.Logger,
) *Poller {
	return &Poller{
		telegramClient: telegramClient,
		botService:     botService,
		rateLimiter:    rateLimiter,
		logger:         logger,
		stopChan:       make(chan struct{}),
	}
}

func (p *Poller) Start() {
	p.logger.Info("Arrancando el poller de Telegram")

	bot := p.telegramClient.GetBot()
	if bot == nil {
		p.logger.Error("No se pudo acceder al API del bot")
		return
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	p.updatesChan = bot.GetUpdatesChan(u)

	go func() {
		for {
			select {
			case <-p.stopChan:
				p.logger.Info("Recibida la señal de parada del poller")
				return
			case update := <-p.updatesChan:
				p.processUpdate(&update)
			}
		}
	}()
}

func (p *Poller) Stop() {
	p.logger.Info("Deteniendo el poller de Telegram")
	close(p.stopChan)
}

func (p *Poller) processUpdate(update *tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		p.processCallback(update.CallbackQuery)
	case update.Message != nil:
		p.processMessage(update.Message)
	}
}

func (p *Poller) processMessage(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	userID := message.From.ID
	text := message.Text
	username := message.From.UserName
	fullName := fullNameOf(message.From)

	p.logger.Info("Mensaje recibido",
		"chat_id", chatID,
		"user_id", userID,
		"text", text,
		"username", username,
	)

	messageType := "message"
	if message.IsCommand() {
		messageType = "command"
	}

	metrics.RecordUserMessage(messageType)

	if !p.allow(chatID) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var response string

	var err error

	if message.IsCommand() {
		command := &models.Command{
			ChatID:   chatID,
			UserID:   userID,
			Text:     text,
			Username: username,
			FullName: fullName,
			Type:     getCommandType("/" + message.Command()),
		}

		response, err = p.botService.ProcessCommand(ctx, command)
	} else {
		response, err = p.botService.ProcessMessage(ctx, chatID, userID, text, username, fullName)
	}

	p.reply(chatID, response, err)
}

func (p *Poller) processCallback(query *tgbotapi.CallbackQuery) {
	chatID := query.Message.Chat.ID

	p.logger.Info("Callback recibido",
		"chat_id", chatID,
		"data", query.Data,
	)

	metrics.RecordUserMessage("callback")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := p.telegramClient.AnswerCallback(ctx, query.ID); err != nil {
		p.logger.Error("Error al responder el callback",
			"error", err,
			"chat_id", chatID,
		)
	}

	callback := &models.Callback{
		ChatID:   chatID,
		UserID:   query.From.ID,
		Username: query.From.UserName,
		FullName: fullNameOf(query.From),
		Data:     query.Data,
	}

	response, err := p.botService.ProcessCallback(ctx, callback)

	p.reply(chatID, response, err)
}

// reply envía la respuesta del servicio. Los fallos recuperables llegan con un
// mensaje para el usuario además del error; solo cuando no lo hay se envía el
// mensaje genérico. Ningún error tumba el bucle de procesado.
func (p *Poller) reply(chatID int64, response string, err error) {
	if err != nil {
		p.logger.Error("Error al procesar la actualización",
			"error", err,
			"chat_id", chatID,
		)

		if response == "" {
			response = "Ha ocurrido un error al procesar tu mensaje. Por favor, inténtalo más tarde."
		}
	}

	if response == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := p.telegramClient.SendMessage(ctx, chatID, response); err != nil {
		p.logger.Error("Error al enviar la respuesta",
			"error", err,
			"chat_id", chatID,
			"text", response,
		)
	}
}

func (p *Poller) allow(chatID int64) bool {
	if p.rateLimiter == nil {
		return true
	}

	allowed, notifyOnce := p.rateLimiter.Allow(chatID)
	if allowed {
		return true
	}

	metrics.RateLimitedMessages.Inc()

	if notifyOnce {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := p.telegramClient.SendMessage(ctx, chatID,
			"⏳ Estás enviando mensajes demasiado rápido. Espera un momento, por favor."); err != nil {
			p.logger.Error("Error al avisar del límite de mensajes",
				"error", err,
				"chat_id", chatID,
			)
		}
	}

	return false
}

func fullNameOf(user *tgbotapi.User) string {
	if user == nil {
		return ""
	}

	if user.LastName == "" {
		return user.FirstName
	}

	return user.FirstName + " " + user.LastName
}

func getCommandType(commandName string) models.CommandType {
	switch commandName {
	case "/start":
		return models.CommandStart
	case "/help":
		return models.CommandHelp
	case "/encuesta":
		return models.CommandEncuesta
	case "/productos":
		return models.CommandProductos
	default:
		return models.CommandUnknown
	}
}
