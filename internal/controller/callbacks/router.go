package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/psychologist_bot/internal/config"
	"github.com/Freeeeeet/psychologist_bot/internal/controller/handlers"
	"github.com/Freeeeeet/psychologist_bot/internal/controller/state"
	"github.com/Freeeeeet/psychologist_bot/internal/model"
	"github.com/Freeeeeet/psychologist_bot/internal/telegram"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"

	tgmodels "github.com/go-telegram/bot/models"
)

// ScheduleService операции над слотами, нужные callback-обработчикам
type ScheduleService interface {
	DeleteSlot(ctx context.Context, id int64) error
}

// Handler обрабатывает нажатия inline кнопок
type Handler struct {
	cfg             *config.Config
	client          telegram.Client
	scheduleService ScheduleService
	stateManager    *state.Manager
	logger          *zap.Logger
}

// New создаёт обработчик callback запросов
func New(
	cfg *config.Config,
	client telegram.Client,
	scheduleService ScheduleService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		cfg:             cfg,
		client:          client,
		scheduleService: scheduleService,
		stateManager:    stateManager,
		logger:          logger,
	}
}

// HandleCallbackQuery маршрутизирует нажатия inline кнопок по callback data
func (h *Handler) HandleCallbackQuery(ctx context.Context, update *tgmodels.Update) {
	if update.CallbackQuery == nil {
		return
	}

	query := update.CallbackQuery

	// Убираем "часики" на кнопке сразу
	_, err := h.client.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: query.ID,
	})
	if err != nil {
		h.logger.Warn("Failed to answer callback query", zap.Error(err))
	}

	data := query.Data

	switch {
	case data == handlers.CallbackCancelBooking:
		h.handleCancelBooking(ctx, query)
	case strings.HasPrefix(data, handlers.CallbackBookSlotPrefix):
		h.handleSlotChoice(ctx, query, strings.TrimPrefix(data, handlers.CallbackBookSlotPrefix))
	case data == handlers.CallbackConsultPrimary:
		h.handleConsultationType(ctx, query, model.ConsultationPrimary)
	case data == handlers.CallbackConsultRepeat:
		h.handleConsultationType(ctx, query, model.ConsultationRepeat)
	case data == handlers.CallbackCancelDeletion:
		h.handleCancelDeletion(ctx, query)
	case strings.HasPrefix(data, handlers.CallbackDeleteSlotPrefix):
		h.handleSlotDeletion(ctx, query, strings.TrimPrefix(data, handlers.CallbackDeleteSlotPrefix))
	default:
		h.logger.Warn("Unknown callback data", zap.String("data", data))
	}
}

// editMessage редактирует сообщение с inline кнопками
func (h *Handler) editMessage(ctx context.Context, query *tgmodels.CallbackQuery, text string) {
	if query.Message.Message == nil {
		return
	}

	_, err := h.client.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    query.Message.Message.Chat.ID,
		MessageID: query.Message.Message.ID,
		Text:      text,
	})
	if err != nil {
		h.logger.Error("Failed to edit message", zap.Error(err))
	}
}

// editMessageWithKeyboard редактирует сообщение вместе с inline клавиатурой
func (h *Handler) editMessageWithKeyboard(ctx context.Context, query *tgmodels.CallbackQuery, text string, markup tgmodels.ReplyMarkup) {
	if query.Message.Message == nil {
		return
	}

	_, err := h.client.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      query.Message.Message.Chat.ID,
		MessageID:   query.Message.Message.ID,
		Text:        text,
		ReplyMarkup: markup,
	})
	if err != nil {
		h.logger.Error("Failed to edit message", zap.Error(err))
	}
}
