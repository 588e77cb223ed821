package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/psychologist_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/psychologist_bot/internal/controller/state"
	"github.com/Freeeeeet/psychologist_bot/internal/formatting"
	"github.com/Freeeeeet/psychologist_bot/internal/imaging"
	"github.com/Freeeeeet/psychologist_bot/internal/model"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"

	tgmodels "github.com/go-telegram/bot/models"
)

// Callback data для удаления слотов
const (
	CallbackDeleteSlotPrefix = "admin_del_slot_"
	CallbackCancelDeletion   = "cancel_deletion"
)

// startAddSlot начинает диалог добавления слота
func (h *Handlers) startAddSlot(ctx context.Context, update *tgmodels.Update) {
	if !h.requireAdmin(ctx, update) {
		return
	}

	h.stateManager.SetState(update.Message.From.ID, state.StateAddingSlot)

	h.sendWithKeyboard(ctx, update.Message.Chat.ID,
		"📅 Введите дату и время для нового слота в формате:\n"+
			"ГГГГ-ММ-ДД ЧЧ:ММ\n\n"+
			"Например: 2025-11-25 14:00",
		cancelKeyboard())
}

// handleAddSlotInput обрабатывает введённую дату нового слота.
// Неверный формат и прошедшие даты не завершают диалог —
// админ остаётся в том же состоянии и может попробовать ещё раз.
func (h *Handlers) handleAddSlotInput(ctx context.Context, update *tgmodels.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	input := strings.TrimSpace(update.Message.Text)

	startTime, err := formatting.ParseSlotTime(input)
	if err != nil {
		h.sendWithKeyboard(ctx, chatID,
			"❌ Неверный формат даты!\n"+
				"Пожалуйста, введите в формате ГГГГ-ММ-ДД ЧЧ:ММ",
			cancelKeyboard())
		return
	}

	if !startTime.After(time.Now()) {
		h.sendWithKeyboard(ctx, chatID,
			"❌ Нельзя добавлять прошедшие даты!",
			cancelKeyboard())
		return
	}

	slot, err := h.scheduleService.AddSlot(ctx, startTime)
	h.stateManager.ClearState(telegramID)

	if err != nil {
		if errors.Is(err, model.ErrSlotExists) {
			h.sendWithKeyboard(ctx, chatID,
				fmt.Sprintf("❌ Слот на %s уже существует!", input),
				mainMenuKeyboard(true))
			return
		}

		h.logger.Error("Failed to create slot", zap.Error(err))
		h.sendWithKeyboard(ctx, chatID,
			"❌ Произошла ошибка при создании слота.", mainMenuKeyboard(true))
		return
	}

	h.sendWithKeyboard(ctx, chatID,
		fmt.Sprintf("✅ Слот на %s успешно добавлен в расписание!",
			formatting.FormatDateTime(slot.StartTime)),
		mainMenuKeyboard(true))
}

// startDeleteSlot начинает диалог удаления слота.
// Выбор делается inline-кнопкой с id слота и проверяется против снимка —
// сопоставление по отформатированной подписи неоднозначно, если два
// слота отображаются одинаково.
func (h *Handlers) startDeleteSlot(ctx context.Context, update *tgmodels.Update) {
	if !h.requireAdmin(ctx, update) {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	slots, err := h.scheduleService.FreeFutureSlots(ctx)
	if err != nil {
		h.logger.Error("Failed to load slots for deletion", zap.Error(err))
		h.sendWithKeyboard(ctx, chatID,
			"❌ Произошла ошибка. Попробуйте позже.", mainMenuKeyboard(true))
		return
	}

	if len(slots) == 0 {
		h.sendWithKeyboard(ctx, chatID,
			"😔 Нет свободных слотов для удаления.", mainMenuKeyboard(true))
		return
	}

	h.stateManager.SetState(telegramID, state.StateDeletingSlot)
	h.stateManager.SetData(telegramID, state.DataDeletionSlots, slots)

	kb := keyboard.NewBuilder()
	for _, slot := range slots {
		kb.Row(keyboard.Button(
			formatting.FormatDateTime(slot.StartTime),
			fmt.Sprintf("%s%d", CallbackDeleteSlotPrefix, slot.ID),
		))
	}
	kb.Row(keyboard.Button(ButtonCancel, CallbackCancelDeletion))

	_, err = h.client.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "🗑️ Удаление слотов\n\n⚠️ Можно удалять только свободные слоты.",
		ReplyMarkup: kb.Build(),
	})
	if err != nil {
		h.logger.Error("Failed to send deletion list", zap.Error(err))
		h.stateManager.ClearState(telegramID)
	}
}

// showUpcomingAppointments показывает будущие записи
func (h *Handlers) showUpcomingAppointments(ctx context.Context, update *tgmodels.Update) {
	if !h.requireAdmin(ctx, update) {
		return
	}

	appointments, err := h.bookingService.Upcoming(ctx)
	if err != nil {
		h.logger.Error("Failed to load upcoming appointments", zap.Error(err))
		h.sendMessage(ctx, update.Message.Chat.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	if len(appointments) == 0 {
		h.sendWithKeyboard(ctx, update.Message.Chat.ID,
			"📋 Ближайшие записи\n\nНа данный момент нет предстоящих записей.",
			mainMenuKeyboard(true))
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 Ближайшие записи:\n\n")
	for _, a := range appointments {
		sb.WriteString(formatAppointment(a))
	}
	sb.WriteString(fmt.Sprintf("\n📊 Всего записей: %d", len(appointments)))

	h.sendWithKeyboard(ctx, update.Message.Chat.ID, sb.String(), mainMenuKeyboard(true))
}

// showMySlots показывает будущие слоты со статусами и карточку расписания
func (h *Handlers) showMySlots(ctx context.Context, update *tgmodels.Update) {
	if !h.requireAdmin(ctx, update) {
		return
	}

	chatID := update.Message.Chat.ID

	futureSlots, err := h.scheduleService.FutureSlots(ctx)
	if err != nil {
		h.logger.Error("Failed to load future slots", zap.Error(err))
		h.sendMessage(ctx, chatID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	if len(futureSlots) == 0 {
		h.sendWithKeyboard(ctx, chatID,
			"👀 Мои слоты\n\nНа данный момент нет активных слотов.",
			mainMenuKeyboard(true))
		return
	}

	var free, booked []string
	for _, slot := range futureSlots {
		line := "• " + formatting.FormatDateTime(slot.StartTime)
		if slot.IsBooked {
			booked = append(booked, line+" 🔴 (Занят)")
		} else {
			free = append(free, line+" 🟢 (Свободен)")
		}
	}

	var sb strings.Builder
	sb.WriteString("👀 Мои активные слоты:\n\n")
	if len(free) > 0 {
		sb.WriteString("🟢 Свободные слоты:\n" + strings.Join(free, "\n") + "\n\n")
	}
	if len(booked) > 0 {
		sb.WriteString("🔴 Занятые слоты:\n" + strings.Join(booked, "\n") + "\n\n")
	}
	sb.WriteString(fmt.Sprintf("📊 Итого: %d свободных, %d занятых", len(free), len(booked)))

	if archived := h.archivedSlotCount(ctx, len(futureSlots)); archived > 0 {
		sb.WriteString(fmt.Sprintf("\n\n📚 В архиве: %d прошедших слотов", archived))
	}

	card, err := imaging.RenderScheduleCard(futureSlots)
	if err != nil {
		h.logger.Warn("Failed to render schedule card", zap.Error(err))
		h.sendWithKeyboard(ctx, chatID, sb.String(), mainMenuKeyboard(true))
		return
	}

	_, err = h.client.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: chatID,
		Photo: &tgmodels.InputFileUpload{
			Filename: "schedule.png",
			Data:     bytes.NewReader(card),
		},
		Caption:     sb.String(),
		ReplyMarkup: mainMenuKeyboard(true),
	})
	if err != nil {
		h.logger.Warn("Failed to send schedule card", zap.Error(err))
		h.sendWithKeyboard(ctx, chatID, sb.String(), mainMenuKeyboard(true))
	}
}

// showArchive показывает прошедшие записи
func (h *Handlers) showArchive(ctx context.Context, update *tgmodels.Update) {
	if !h.requireAdmin(ctx, update) {
		return
	}

	appointments, err := h.bookingService.Past(ctx)
	if err != nil {
		h.logger.Error("Failed to load past appointments", zap.Error(err))
		h.sendMessage(ctx, update.Message.Chat.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	if len(appointments) == 0 {
		h.sendWithKeyboard(ctx, update.Message.Chat.ID,
			"📚 Архив записей\n\nАрхивных записей пока нет.",
			mainMenuKeyboard(true))
		return
	}

	var sb strings.Builder
	sb.WriteString("📚 Архив записей:\n\n")
	for _, a := range appointments {
		sb.WriteString(formatAppointment(a))
	}
	sb.WriteString(fmt.Sprintf("\n📊 Всего в архиве: %d записей", len(appointments)))

	h.sendWithKeyboard(ctx, update.Message.Chat.ID, sb.String(), mainMenuKeyboard(true))
}

// archivedSlotCount считает прошедшие слоты (всего минус будущие)
func (h *Handlers) archivedSlotCount(ctx context.Context, futureCount int) int {
	allSlots, err := h.scheduleService.AllSlots(ctx)
	if err != nil {
		h.logger.Warn("Failed to load slot archive", zap.Error(err))
		return 0
	}
	return len(allSlots) - futureCount
}

// formatAppointment одна запись в списке для админа
func formatAppointment(a *model.Appointment) string {
	return fmt.Sprintf(
		"👤 %s\n📅 %s\n📞 %s\n📝 %s\n🎯 %s\n――――――――――――――――――――\n",
		a.ClientName,
		formatting.FormatDateTime(a.Slot.StartTime),
		a.ClientContact,
		a.ClientRequest,
		a.ConsultationType.Label(),
	)
}
