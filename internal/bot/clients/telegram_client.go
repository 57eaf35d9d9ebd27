package clients

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/devsolaris/natursur-bot/internal/bot/domain"
)

type TelegramClient struct {
	bot    *tgbotapi.BotAPI
	logger *slog.Logger
}

func NewTelegramClient(token string, logger *slog.Logger) domain.TelegramClientAPI {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		logger.Error("Error al crear el cliente de Telegram", "error", err)
	}

	return &TelegramClient{
		bot:    bot,
		logger: logger,
	}
}

// SetBaseURL fija la URL base del API de Telegram (se usa en tests).
func (c *TelegramClient) SetBaseURL(url string) {
	if c.bot != nil {
		c.bot.SetAPIEndpoint(url)
	}
}

func (c *TelegramClient) SendMessage(_ context.Context, chatID int64, text string) error {
	if c.bot == nil {
		return fmt.Errorf("el cliente de Telegram no está inicializado")
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	_, err := c.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("error al enviar el mensaje: %w", err)
	}

	return nil
}

func (c *TelegramClient) SendMessageWithKeyboard(_ context.Context, chatID int64, text string, buttons [][]domain.Button) error {
	if c.bot == nil {
		return fmt.Errorf("el cliente de Telegram no está inicializado")
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = buildKeyboard(buttons)

	_, err := c.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("error al enviar el mensaje con botones: %w", err)
	}

	return nil
}

func (c *TelegramClient) SendPhoto(_ context.Context, chatID int64, photoURL, caption string, buttons [][]domain.Button) error {
	if c.bot == nil {
		return fmt.Errorf("el cliente de Telegram no está inicializado")
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(photoURL))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeMarkdown

	if len(buttons) > 0 {
		photo.ReplyMarkup = buildKeyboard(buttons)
	}

	_, err := c.bot.Send(photo)
	if err != nil {
		return fmt.Errorf("error al enviar la foto: %w", err)
	}

	return nil
}

func (c *TelegramClient) AnswerCallback(_ context.Context, callbackID string) error {
	if c.bot == nil {
		return fmt.Errorf("el cliente de Telegram no está inicializado")
	}

	callback := tgbotapi.NewCallback(callbackID, "")

	_, err := c.bot.Request(callback)
	if err != nil {
		return fmt.Errorf("error al responder el callback: %w", err)
	}

	return nil
}

func (c *TelegramClient) SetMyCommands(_ context.Context, commands []domain.BotCommand) error {
	if c.bot == nil {
		return fmt.Errorf("el cliente de Telegram no está inicializado")
	}

	botAPICommands := make([]tgbotapi.BotCommand, 0, len(commands))
	for _, cmd := range commands {
		botAPICommands = append(botAPICommands, tgbotapi.BotCommand{
			Command:     cmd.Command,
			Description: cmd.Description,
		})
	}

	setCommandsConfig := tgbotapi.NewSetMyCommands(botAPICommands...)

	_, err := c.bot.Request(setCommandsConfig)
	if err != nil {
		return fmt.Errorf("error al registrar los comandos del bot: %w", err)
	}

	return nil
}

func (c *TelegramClient) GetBot() *tgbotapi.BotAPI {
	return c.bot
}

func buildKeyboard(buttons [][]domain.Button) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))

	for _, row := range buttons {
		keyboardRow := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
		}

		rows = append(rows, keyboardRow)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
