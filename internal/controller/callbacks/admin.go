package callbacks

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Freeeeeet/psychologist_bot/internal/controller/state"
	"github.com/Freeeeeet/psychologist_bot/internal/formatting"
	"github.com/Freeeeeet/psychologist_bot/internal/model"
	"go.uber.org/zap"

	tgmodels "github.com/go-telegram/bot/models"
)

// handleSlotDeletion админ выбрал слот для удаления.
// Слот мог быть забронирован после показа списка, поэтому конфликт
// из хранилища превращается в понятное сообщение, а не в ошибку.
func (h *Handler) handleSlotDeletion(ctx context.Context, query *tgmodels.CallbackQuery, rawID string) {
	telegramID := query.From.ID

	if !h.cfg.IsAdmin(telegramID) {
		h.logger.Warn("Non-admin pressed deletion button",
			zap.Int64("telegram_id", telegramID))
		return
	}

	if h.stateManager.GetState(telegramID) != state.StateDeletingSlot {
		h.editMessage(ctx, query, "❌ Эта кнопка больше не активна.")
		return
	}

	slotID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		h.logger.Warn("Malformed deletion callback", zap.String("raw_id", rawID))
		h.stateManager.ClearState(telegramID)
		h.editMessage(ctx, query, "❌ Произошла ошибка. Попробуйте ещё раз.")
		return
	}

	slot := h.snapshotSlot(telegramID, state.DataDeletionSlots, slotID)
	if slot == nil {
		h.stateManager.ClearState(telegramID)
		h.editMessage(ctx, query, "❌ Произошла ошибка. Попробуйте ещё раз.")
		return
	}

	err = h.scheduleService.DeleteSlot(ctx, slotID)
	h.stateManager.ClearState(telegramID)

	if err != nil {
		switch {
		case errors.Is(err, model.ErrSlotBooked):
			h.editMessage(ctx, query,
				"❌ Этот слот уже забронирован, удалить его нельзя.")
		case errors.Is(err, model.ErrSlotNotFound):
			h.editMessage(ctx, query,
				"❌ Слот не найден. Возможно, он уже удалён.")
		default:
			h.logger.Error("Failed to delete slot",
				zap.Int64("slot_id", slotID),
				zap.Error(err))
			h.editMessage(ctx, query,
				"❌ Произошла ошибка при удалении слота.")
		}
		return
	}

	h.editMessage(ctx, query,
		fmt.Sprintf("✅ Слот %s успешно удален!",
			formatting.FormatDateTime(slot.StartTime)))
}

// handleCancelDeletion админ отменил удаление
func (h *Handler) handleCancelDeletion(ctx context.Context, query *tgmodels.CallbackQuery) {
	h.stateManager.ClearState(query.From.ID)
	h.editMessage(ctx, query, "❌ Удаление отменено.")
}
