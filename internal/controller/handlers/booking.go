package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Freeeeeet/psychologist_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/psychologist_bot/internal/controller/state"
	"github.com/Freeeeeet/psychologist_bot/internal/formatting"
	"github.com/Freeeeeet/psychologist_bot/internal/model"
	"github.com/Freeeeeet/psychologist_bot/internal/service"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"

	tgmodels "github.com/go-telegram/bot/models"
)

// Callback data для шагов записи
const (
	CallbackBookSlotPrefix = "book_slot_"
	CallbackCancelBooking  = "cancel_booking"
	CallbackConsultPrimary = "consult_primary"
	CallbackConsultRepeat  = "consult_repeat"
)

// startBooking начинает диалог записи на консультацию.
// Снимок свободных слотов кэшируется в сессии: выбор клиента проверяется
// против снимка, а не против живого хранилища.
func (h *Handlers) startBooking(ctx context.Context, update *tgmodels.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	slots, err := h.scheduleService.FreeFutureSlots(ctx)
	if err != nil {
		h.logger.Error("Failed to load free slots", zap.Error(err))
		h.sendWithKeyboard(ctx, chatID,
			"❌ Произошла ошибка. Попробуйте позже.", mainMenuKeyboard(false))
		return
	}

	if len(slots) == 0 {
		h.sendWithKeyboard(ctx, chatID,
			"😔 На данный момент нет свободных слотов для записи.",
			mainMenuKeyboard(false))
		return
	}

	h.stateManager.SetState(telegramID, state.StateChoosingSlot)
	h.stateManager.SetData(telegramID, state.DataBookingSlots, slots)

	kb := keyboard.NewBuilder()
	for _, slot := range slots {
		kb.Row(keyboard.Button(
			formatting.FormatDateTime(slot.StartTime),
			fmt.Sprintf("%s%d", CallbackBookSlotPrefix, slot.ID),
		))
	}
	kb.Row(keyboard.Button(ButtonCancel, CallbackCancelBooking))

	_, err = h.client.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "📅 Выберите удобное время для консультации:",
		ReplyMarkup: kb.Build(),
	})
	if err != nil {
		h.logger.Error("Failed to send slot list", zap.Error(err))
		h.stateManager.ClearState(telegramID)
	}
}

// handleBookingName обрабатывает ввод имени клиента
func (h *Handlers) handleBookingName(ctx context.Context, update *tgmodels.Update) {
	telegramID := update.Message.From.ID
	name := strings.TrimSpace(update.Message.Text)

	if utf8.RuneCountInString(name) < ClientNameMinLength {
		h.sendWithKeyboard(ctx, update.Message.Chat.ID,
			"❌ Имя слишком короткое. Пожалуйста, введите ваше имя и фамилию:",
			cancelKeyboard())
		return
	}

	h.stateManager.SetData(telegramID, state.DataClientName, name)
	h.stateManager.SetState(telegramID, state.StateTypingContact)

	h.sendWithKeyboard(ctx, update.Message.Chat.ID,
		"📞 Теперь введите ваш контакт для связи (телефон или email):",
		cancelKeyboard())
}

// handleBookingContact обрабатывает ввод контакта клиента
func (h *Handlers) handleBookingContact(ctx context.Context, update *tgmodels.Update) {
	telegramID := update.Message.From.ID
	contact := strings.TrimSpace(update.Message.Text)

	if utf8.RuneCountInString(contact) < ClientContactMinLength {
		h.sendWithKeyboard(ctx, update.Message.Chat.ID,
			"❌ Контакт слишком короткий. Пожалуйста, введите телефон или email:",
			cancelKeyboard())
		return
	}

	h.stateManager.SetData(telegramID, state.DataClientContact, contact)

	// Для первичной консультации собираем два дополнительных поля
	if h.consultationType(telegramID) == model.ConsultationPrimary {
		h.stateManager.SetState(telegramID, state.StateTypingTherapyExperience)
		h.sendWithKeyboard(ctx, update.Message.Chat.ID,
			"🧭 Был ли у вас раньше опыт терапии? Расскажите кратко:",
			cancelKeyboard())
		return
	}

	h.stateManager.SetState(telegramID, state.StateTypingRequest)
	h.sendRequestPrompt(ctx, update.Message.Chat.ID)
}

// handleBookingTherapyExperience обрабатывает ввод опыта терапии (первичная)
func (h *Handlers) handleBookingTherapyExperience(ctx context.Context, update *tgmodels.Update) {
	telegramID := update.Message.From.ID

	h.stateManager.SetData(telegramID, state.DataTherapyExp, strings.TrimSpace(update.Message.Text))
	h.stateManager.SetState(telegramID, state.StateTypingDisorders)

	h.sendWithKeyboard(ctx, update.Message.Chat.ID,
		"💭 Что вас беспокоит? Опишите кратко:",
		cancelKeyboard())
}

// handleBookingDisorders обрабатывает ввод жалоб (первичная)
func (h *Handlers) handleBookingDisorders(ctx context.Context, update *tgmodels.Update) {
	telegramID := update.Message.From.ID

	h.stateManager.SetData(telegramID, state.DataDisorders, strings.TrimSpace(update.Message.Text))
	h.stateManager.SetState(telegramID, state.StateTypingRequest)

	h.sendRequestPrompt(ctx, update.Message.Chat.ID)
}

func (h *Handlers) sendRequestPrompt(ctx context.Context, chatID int64) {
	h.sendWithKeyboard(ctx, chatID,
		"📝 Необязательно: опишите кратко ваш запрос или проблему.\n"+
			"Или просто напишите «Пропустить»:",
		cancelKeyboard())
}

// handleBookingRequest финальный шаг: собирает запрос и оформляет запись
func (h *Handlers) handleBookingRequest(ctx context.Context, update *tgmodels.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	request := strings.TrimSpace(update.Message.Text)
	if strings.EqualFold(request, skipToken) {
		request = requestPlaceholder
	}

	slot, okSlot := h.selectedSlot(telegramID)
	nameData, okName := h.stateManager.GetData(telegramID, state.DataClientName)
	contactData, okContact := h.stateManager.GetData(telegramID, state.DataClientContact)

	if !okSlot || !okName || !okContact {
		h.logger.Error("Booking session data incomplete",
			zap.Int64("telegram_id", telegramID))
		h.stateManager.ClearState(telegramID)
		h.sendWithKeyboard(ctx, chatID,
			"❌ Произошла ошибка. Не все данные заполнены. Начните запись заново.",
			mainMenuKeyboard(false))
		return
	}

	consultationType := h.consultationType(telegramID)
	if consultationType == model.ConsultationPrimary {
		request = h.composePrimaryRequest(telegramID, request)
	}

	appointment, err := h.bookingService.Book(ctx, service.BookingRequest{
		SlotID:           slot.ID,
		ClientChatID:     telegramID,
		ClientName:       nameData.(string),
		ClientContact:    contactData.(string),
		ClientRequest:    request,
		ConsultationType: consultationType,
	})

	h.stateManager.ClearState(telegramID)

	if err != nil {
		h.logger.Error("Booking failed",
			zap.Int64("slot_id", slot.ID),
			zap.Error(err))

		text := "❌ Произошла ошибка при записи. Попробуйте позже."
		if errors.Is(err, model.ErrSlotBooked) || errors.Is(err, model.ErrSlotNotFound) {
			text = "😔 Увы, это время уже занято. Пожалуйста, выберите другой слот."
		}
		h.sendWithKeyboard(ctx, chatID, text, mainMenuKeyboard(false))
		return
	}

	confirmation := fmt.Sprintf(
		"🎉 Запись успешно оформлена!\n\n"+
			"📅 Время: %s\n"+
			"👤 Имя: %s\n"+
			"📞 Контакт: %s\n"+
			"📝 Запрос: %s\n\n"+
			"🔔 Вы получите напоминание за 24 часа до консультации.",
		formatting.FormatDateTime(appointment.Slot.StartTime),
		appointment.ClientName,
		appointment.ClientContact,
		appointment.ClientRequest,
	)

	h.sendWithKeyboard(ctx, chatID, confirmation, mainMenuKeyboard(false))
}

// composePrimaryRequest дополняет запрос полями первичной консультации
func (h *Handlers) composePrimaryRequest(telegramID int64, request string) string {
	experience := "—"
	if v, ok := h.stateManager.GetData(telegramID, state.DataTherapyExp); ok {
		experience = v.(string)
	}

	disorders := "—"
	if v, ok := h.stateManager.GetData(telegramID, state.DataDisorders); ok {
		disorders = v.(string)
	}

	return fmt.Sprintf("%s\n— Опыт терапии: %s\n— Что беспокоит: %s",
		request, experience, disorders)
}

func (h *Handlers) consultationType(telegramID int64) model.ConsultationType {
	if v, ok := h.stateManager.GetData(telegramID, state.DataConsultationType); ok {
		if t, ok := v.(model.ConsultationType); ok {
			return t
		}
	}
	return model.ConsultationRepeat
}

func (h *Handlers) selectedSlot(telegramID int64) (*model.Slot, bool) {
	v, ok := h.stateManager.GetData(telegramID, state.DataSelectedSlot)
	if !ok {
		return nil, false
	}
	slot, ok := v.(*model.Slot)
	return slot, ok
}
