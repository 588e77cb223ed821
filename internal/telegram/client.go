// Package telegram определяет минимальный набор возможностей чат-транспорта,
// который нужен ядру бота: отправить сообщение, отправить фото,
// отредактировать сообщение и ответить на callback.
package telegram

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Client интерфейс чат-транспорта.
// *bot.Bot реализует его напрямую; в тестах используется фейк.
type Client interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
}

var _ Client = (*bot.Bot)(nil)
