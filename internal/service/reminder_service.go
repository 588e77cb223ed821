package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/psychologist_bot/internal/model"
	"go.uber.org/zap"
)

// ReminderLeadTime за сколько до консультации отправляется напоминание
const ReminderLeadTime = 24 * time.Hour

// ReminderStore хранилище напоминаний
type ReminderStore interface {
	Create(ctx context.Context, reminder *model.Reminder) error
	ListDue(ctx context.Context, now time.Time) ([]*model.Reminder, error)
	MarkSent(ctx context.Context, id int64) error
}

// ReminderSender доставляет напоминание клиенту через чат-транспорт
type ReminderSender interface {
	SendReminder(ctx context.Context, reminder *model.Reminder) error
}

// ReminderService очередь отложенных напоминаний о консультациях
type ReminderService struct {
	store  ReminderStore
	sender ReminderSender
	logger *zap.Logger
}

func NewReminderService(store ReminderStore, sender ReminderSender, logger *zap.Logger) *ReminderService {
	return &ReminderService{
		store:  store,
		sender: sender,
		logger: logger,
	}
}

// Enqueue ставит напоминание в очередь на время консультации минус 24 часа.
// Время отправки намеренно не проверяется на будущее: слот, занятый менее
// чем за сутки, даёт уже просроченное напоминание, и его доставит
// ближайший проход Sweep.
func (s *ReminderService) Enqueue(ctx context.Context, clientChatID int64, clientName string, appointmentTime time.Time) error {
	reminder := &model.Reminder{
		ClientChatID:    clientChatID,
		ClientName:      clientName,
		AppointmentTime: appointmentTime,
		FireAt:          appointmentTime.Add(-ReminderLeadTime),
	}

	if err := s.store.Create(ctx, reminder); err != nil {
		return fmt.Errorf("enqueue reminder: %w", err)
	}

	s.logger.Info("Reminder enqueued",
		zap.Int64("reminder_id", reminder.ID),
		zap.Int64("client_chat_id", clientChatID),
		zap.Time("fire_at", reminder.FireAt),
	)

	return nil
}

// Sweep отправляет все напоминания, время которых наступило.
// Каждое напоминание обрабатывается независимо: сбой доставки одного
// не блокирует пометку остальных. Неотправленное остаётся в очереди
// до следующего прохода.
func (s *ReminderService) Sweep(ctx context.Context, now time.Time) (int, error) {
	due, err := s.store.ListDue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("list due reminders: %w", err)
	}

	sent := 0
	for _, reminder := range due {
		if err := s.sender.SendReminder(ctx, reminder); err != nil {
			s.logger.Warn("Failed to deliver reminder",
				zap.Int64("reminder_id", reminder.ID),
				zap.Int64("client_chat_id", reminder.ClientChatID),
				zap.Error(err))
			continue
		}

		if err := s.store.MarkSent(ctx, reminder.ID); err != nil {
			// Напоминание уже доставлено — при сбое пометки возможен повтор
			// на следующем проходе (at-least-once, допустимо для информационных сообщений)
			s.logger.Error("Failed to mark reminder as sent",
				zap.Int64("reminder_id", reminder.ID),
				zap.Error(err))
			continue
		}

		sent++
	}

	return sent, nil
}
