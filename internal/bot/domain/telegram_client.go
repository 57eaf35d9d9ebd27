package domain

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type BotCommand struct {
	Command     string
	Description string
}

// Button es un botón inline: texto visible y payload del callback.
type Button struct {
	Text string
	Data string
}

type TelegramClientAPI interface {
	SendMessage(ctx context.Context, chatID int64, text string) error

	SendMessageWithKeyboard(ctx context.Context, chatID int64, text string, buttons [][]Button) error

	SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, buttons [][]Button) error

	AnswerCallback(ctx context.Context, callbackID string) error

	SetMyCommands(ctx context.Context, commands []BotCommand) error

	GetBot() *tgbotapi.BotAPI
}
