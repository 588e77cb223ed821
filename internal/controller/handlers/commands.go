package handlers

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/Freeeeeet/psychologist_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const adminWelcomeText = "👋 Добро пожаловать в панель администратора!\n\n" +
	"Здесь вы можете управлять расписанием и просматривать записи клиентов.\n\n" +
	"Доступные функции:\n" +
	"• ➕ Добавить слот — создать новые слоты для записи\n" +
	"• 🗑️ Удалить слот — удалить свободные слоты\n" +
	"• 📋 Ближайшие записи — просмотреть все записи клиентов\n" +
	"• 👀 Мои слоты — посмотреть все слоты со статусами\n" +
	"• 📚 Архив записей — прошедшие консультации"

const clientWelcomeText = "Добрый день! 👋\n\n" +
	"Меня зовут Александр. Я психолог с 10-летним опытом работы.\n\n" +
	"Я специализируюсь на:\n" +
	"• Работе с тревогой и стрессом\n" +
	"• Поиске жизненного баланса\n" +
	"• Преодолении кризисных ситуаций\n" +
	"• Развитии эмоционального интеллекта\n\n" +
	"Я постараюсь помочь вам найти внутреннюю гармонию и ресурсы для решения ваших задач.\n\n" +
	"Для записи на консультацию нажмите кнопку ниже 👇"

// HandleStart обрабатывает команду /start: приветствие зависит от роли,
// клиентам прикладывается фото психолога (если файл на месте)
func (h *Handlers) HandleStart(ctx context.Context, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	isAdmin := h.cfg.IsAdmin(update.Message.From.ID)

	h.logger.Info("Start command",
		zap.Int64("telegram_id", update.Message.From.ID),
		zap.Bool("is_admin", isAdmin))

	if isAdmin {
		h.sendWithKeyboard(ctx, chatID, adminWelcomeText, mainMenuKeyboard(true))
		return
	}

	photo, err := os.ReadFile(h.cfg.GreetingPhoto)
	if err != nil {
		// Фото — опциональное украшение, без него просто текст
		h.sendWithKeyboard(ctx, chatID, clientWelcomeText, mainMenuKeyboard(false))
		return
	}

	_, err = h.client.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: chatID,
		Photo: &models.InputFileUpload{
			Filename: filepath.Base(h.cfg.GreetingPhoto),
			Data:     bytes.NewReader(photo),
		},
		Caption:     clientWelcomeText,
		ReplyMarkup: mainMenuKeyboard(false),
	})
	if err != nil {
		h.logger.Warn("Failed to send greeting photo", zap.Error(err))
		h.sendWithKeyboard(ctx, chatID, clientWelcomeText, mainMenuKeyboard(false))
	}
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.sendMessage(ctx, update.Message.Chat.ID, "📋 Используйте кнопки меню для навигации.\n\n"+
		"/start — главное меню\n"+
		"/cancel — отменить текущую операцию")
}

// HandleCancel обрабатывает команду /cancel — отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID

	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.sendMessage(ctx, update.Message.Chat.ID, "❌ Нет активных операций для отмены.")
		return
	}

	h.cancelDialog(ctx, update)
}

// HandleTextMessage маршрутизирует текстовые сообщения: сначала по таблице
// намерений меню, затем по текущему состоянию диалога пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Команды обрабатываются другими handlers
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	text := update.Message.Text

	switch intentForText(text) {
	case IntentBookConsultation:
		h.startBooking(ctx, update)
		return
	case IntentAddSlot:
		h.startAddSlot(ctx, update)
		return
	case IntentDeleteSlot:
		h.startDeleteSlot(ctx, update)
		return
	case IntentUpcoming:
		h.showUpcomingAppointments(ctx, update)
		return
	case IntentMySlots:
		h.showMySlots(ctx, update)
		return
	case IntentArchive:
		h.showArchive(ctx, update)
		return
	case IntentCancel:
		h.cancelDialog(ctx, update)
		return
	}

	// Свободный текст — шаг активного диалога
	switch h.stateManager.GetState(telegramID) {
	case state.StateAddingSlot:
		h.handleAddSlotInput(ctx, update)
	case state.StateTypingName:
		h.handleBookingName(ctx, update)
	case state.StateTypingContact:
		h.handleBookingContact(ctx, update)
	case state.StateTypingTherapyExperience:
		h.handleBookingTherapyExperience(ctx, update)
	case state.StateTypingDisorders:
		h.handleBookingDisorders(ctx, update)
	case state.StateTypingRequest:
		h.handleBookingRequest(ctx, update)
	case state.StateChoosingSlot, state.StateChoosingConsultationType, state.StateDeletingSlot:
		// Эти шаги ждут нажатия inline-кнопки, текст игнорируем
	case state.StateNone:
		// Нет активного диалога
	default:
		h.logger.Warn("Unknown state",
			zap.String("state", string(h.stateManager.GetState(telegramID))))
	}
}

// cancelDialog завершает любой активный диалог и возвращает главное меню
func (h *Handlers) cancelDialog(ctx context.Context, update *models.Update) {
	telegramID := update.Message.From.ID
	isAdmin := h.cfg.IsAdmin(telegramID)

	h.stateManager.ClearState(telegramID)

	h.sendWithKeyboard(ctx, update.Message.Chat.ID,
		"❌ Действие отменено.", mainMenuKeyboard(isAdmin))
}
