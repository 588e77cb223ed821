package callbacks

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Freeeeeet/psychologist_bot/internal/controller/handlers"
	"github.com/Freeeeeet/psychologist_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/psychologist_bot/internal/controller/state"
	"github.com/Freeeeeet/psychologist_bot/internal/formatting"
	"github.com/Freeeeeet/psychologist_bot/internal/model"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"

	tgmodels "github.com/go-telegram/bot/models"
)

// handleSlotChoice клиент выбрал слот из списка.
// Выбор проверяется против снимка слотов, закэшированного при входе в
// диалог: нажатие на кнопку из устаревшего сообщения не должно
// записать клиента на произвольный слот.
func (h *Handler) handleSlotChoice(ctx context.Context, query *tgmodels.CallbackQuery, rawID string) {
	telegramID := query.From.ID

	if h.stateManager.GetState(telegramID) != state.StateChoosingSlot {
		h.editMessage(ctx, query, "❌ Эта кнопка больше не активна. Начните запись заново.")
		return
	}

	slotID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		h.logger.Warn("Malformed slot callback", zap.String("raw_id", rawID))
		h.failBooking(ctx, query, telegramID)
		return
	}

	slot := h.snapshotSlot(telegramID, state.DataBookingSlots, slotID)
	if slot == nil {
		h.logger.Warn("Slot not in booking snapshot",
			zap.Int64("telegram_id", telegramID),
			zap.Int64("slot_id", slotID))
		h.failBooking(ctx, query, telegramID)
		return
	}

	h.stateManager.SetData(telegramID, state.DataSelectedSlot, slot)
	h.stateManager.SetState(telegramID, state.StateChoosingConsultationType)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button(model.ConsultationPrimary.Label(), handlers.CallbackConsultPrimary)).
		Row(keyboard.Button(model.ConsultationRepeat.Label(), handlers.CallbackConsultRepeat)).
		Row(keyboard.Button(handlers.ButtonCancel, handlers.CallbackCancelBooking))

	h.editMessageWithKeyboard(ctx, query,
		fmt.Sprintf("📅 Вы выбрали: %s\n\nКакая это будет консультация?",
			formatting.FormatDateTime(slot.StartTime)),
		kb.Build())
}

// handleConsultationType клиент выбрал тип консультации
func (h *Handler) handleConsultationType(ctx context.Context, query *tgmodels.CallbackQuery, consultationType model.ConsultationType) {
	telegramID := query.From.ID

	if h.stateManager.GetState(telegramID) != state.StateChoosingConsultationType {
		h.editMessage(ctx, query, "❌ Эта кнопка больше не активна. Начните запись заново.")
		return
	}

	h.stateManager.SetData(telegramID, state.DataConsultationType, consultationType)
	h.stateManager.SetState(telegramID, state.StateTypingName)

	h.editMessage(ctx, query,
		fmt.Sprintf("✅ Выбрано: %s", consultationType.Label()))

	h.sendWithCancelKeyboard(ctx, query.From.ID,
		"👤 Введите ваше имя и фамилию:")
}

// handleCancelBooking клиент отменил запись по inline кнопке
func (h *Handler) handleCancelBooking(ctx context.Context, query *tgmodels.CallbackQuery) {
	h.stateManager.ClearState(query.From.ID)
	h.editMessage(ctx, query, "❌ Запись отменена.")
}

// failBooking сбрасывает диалог после невалидного выбора слота
func (h *Handler) failBooking(ctx context.Context, query *tgmodels.CallbackQuery, telegramID int64) {
	h.stateManager.ClearState(telegramID)
	h.editMessage(ctx, query,
		"❌ Произошла ошибка. Пожалуйста, начните запись заново.")
}

// snapshotSlot ищет слот в закэшированном снимке сессии
func (h *Handler) snapshotSlot(telegramID int64, dataKey string, slotID int64) *model.Slot {
	v, ok := h.stateManager.GetData(telegramID, dataKey)
	if !ok {
		return nil
	}

	slots, ok := v.([]*model.Slot)
	if !ok {
		return nil
	}

	for _, slot := range slots {
		if slot.ID == slotID {
			return slot
		}
	}
	return nil
}

// sendWithCancelKeyboard отправляет новое сообщение с reply клавиатурой отмены
func (h *Handler) sendWithCancelKeyboard(ctx context.Context, chatID int64, text string) {
	_, err := h.client.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
		ReplyMarkup: &tgmodels.ReplyKeyboardMarkup{
			Keyboard: [][]tgmodels.KeyboardButton{
				{{Text: handlers.ButtonCancel}},
			},
			ResizeKeyboard: true,
		},
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}
