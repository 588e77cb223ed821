package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireAdmin проверяет, что сообщение пришло от администратора.
// Не-админам отвечает отказом без изменения состояния.
func (h *Handlers) requireAdmin(ctx context.Context, update *models.Update) bool {
	if update.Message == nil {
		return false
	}

	if !h.cfg.IsAdmin(update.Message.From.ID) {
		h.logger.Warn("Non-admin tried to use admin command",
			zap.Int64("telegram_id", update.Message.From.ID))
		h.sendMessage(ctx, update.Message.Chat.ID, "⛔ У вас нет прав для этой команды.")
		return false
	}

	return true
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, chatID int64, text string) {
	_, err := h.client.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// sendWithKeyboard отправляет сообщение с клавиатурой
func (h *Handlers) sendWithKeyboard(ctx context.Context, chatID int64, text string, markup models.ReplyMarkup) {
	_, err := h.client.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: markup,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
