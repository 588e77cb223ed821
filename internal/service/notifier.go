package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/psychologist_bot/internal/formatting"
	"github.com/Freeeeeet/psychologist_bot/internal/model"
	"github.com/Freeeeeet/psychologist_bot/internal/telegram"
	"github.com/go-telegram/bot"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// Параметры повторных попыток отправки
const (
	sendMaxRetries  = 2
	sendBackoffBase = 500 * time.Millisecond
)

// Notifier отправляет уведомления через Telegram: админам о новых записях,
// клиентам — напоминания о консультациях
type Notifier struct {
	client   telegram.Client
	adminIDs []int64
	logger   *zap.Logger
}

func NewNotifier(client telegram.Client, adminIDs []int64, logger *zap.Logger) *Notifier {
	return &Notifier{
		client:   client,
		adminIDs: adminIDs,
		logger:   logger,
	}
}

// NotifyNewAppointment рассылает всем админам уведомление о новой записи.
// Сбой отправки одному админу не мешает остальным.
func (n *Notifier) NotifyNewAppointment(ctx context.Context, appointment *model.Appointment) error {
	text := fmt.Sprintf(
		"🎉 Новая запись на консультацию!\n\n"+
			"👤 Клиент: %s\n"+
			"📅 Время: %s\n"+
			"📞 Контакт: %s\n"+
			"🎯 Тип: %s\n"+
			"📝 Запрос: %s\n\n"+
			"🆔 Номер записи: %s",
		appointment.ClientName,
		formatting.FormatDateTime(appointment.Slot.StartTime),
		appointment.ClientContact,
		appointment.ConsultationType.Label(),
		appointment.ClientRequest,
		appointment.PublicID,
	)

	var lastErr error
	for _, adminID := range n.adminIDs {
		if err := n.send(ctx, adminID, text); err != nil {
			n.logger.Warn("Failed to notify admin",
				zap.Int64("admin_id", adminID),
				zap.Error(err))
			lastErr = err
		}
	}

	return lastErr
}

// SendReminder отправляет клиенту напоминание о завтрашней консультации
func (n *Notifier) SendReminder(ctx context.Context, reminder *model.Reminder) error {
	text := fmt.Sprintf(
		"🔔 Напоминание о консультации\n\n"+
			"Привет, %s!\n\n"+
			"Напоминаем, что завтра в %s у вас запланирована консультация.\n\n"+
			"Пожалуйста, подготовьтесь к сессии.",
		reminder.ClientName,
		formatting.FormatDateTime(reminder.AppointmentTime),
	)

	return n.send(ctx, reminder.ClientChatID, text)
}

// send отправляет сообщение с повторными попытками при сбоях транспорта
func (n *Notifier) send(ctx context.Context, chatID int64, text string) error {
	backoff := retry.WithMaxRetries(sendMaxRetries, retry.NewExponential(sendBackoffBase))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		_, err := n.client.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   text,
		})
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}
