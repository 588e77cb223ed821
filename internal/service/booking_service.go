package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/psychologist_bot/internal/model"
	"go.uber.org/zap"
)

// PastAppointmentsLimit сколько прошедших записей показывать в архиве
const PastAppointmentsLimit = 20

// AppointmentStore хранилище записей на консультацию
type AppointmentStore interface {
	BookSlot(ctx context.Context, appointment *model.Appointment) error
	ListUpcoming(ctx context.Context, now time.Time) ([]*model.Appointment, error)
	ListPast(ctx context.Context, now time.Time, limit int) ([]*model.Appointment, error)
}

// AdminNotifier рассылает админам уведомления о новых записях
type AdminNotifier interface {
	NotifyNewAppointment(ctx context.Context, appointment *model.Appointment) error
}

// ReminderEnqueuer ставит напоминание клиенту в очередь
type ReminderEnqueuer interface {
	Enqueue(ctx context.Context, clientChatID int64, clientName string, appointmentTime time.Time) error
}

// BookingRequest данные для оформления записи, собранные диалогом
type BookingRequest struct {
	SlotID           int64
	ClientChatID     int64
	ClientName       string
	ClientContact    string
	ClientRequest    string
	ConsultationType model.ConsultationType
}

// BookingService оформляет записи на консультацию
type BookingService struct {
	appointments AppointmentStore
	notifier     AdminNotifier
	reminders    ReminderEnqueuer
	logger       *zap.Logger
}

func NewBookingService(
	appointments AppointmentStore,
	notifier AdminNotifier,
	reminders ReminderEnqueuer,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		appointments: appointments,
		notifier:     notifier,
		reminders:    reminders,
		logger:       logger,
	}
}

// Book атомарно бронирует слот и создаёт запись.
// Из двух одновременных попыток на один слот выигрывает ровно одна,
// вторая получает model.ErrSlotBooked.
// После успешного коммита уведомление админам и постановка напоминания
// выполняются best-effort: их сбой логируется, но запись не откатывается.
func (s *BookingService) Book(ctx context.Context, req BookingRequest) (*model.Appointment, error) {
	appointment := &model.Appointment{
		ClientName:       req.ClientName,
		ClientContact:    req.ClientContact,
		ClientRequest:    req.ClientRequest,
		ConsultationType: req.ConsultationType,
		SlotID:           req.SlotID,
	}

	if err := s.appointments.BookSlot(ctx, appointment); err != nil {
		return nil, err
	}

	s.logger.Info("Appointment booked",
		zap.Int64("appointment_id", appointment.ID),
		zap.String("public_id", appointment.PublicID.String()),
		zap.Int64("slot_id", appointment.SlotID),
		zap.Time("start_time", appointment.Slot.StartTime),
		zap.String("consultation_type", string(appointment.ConsultationType)),
	)

	if err := s.notifier.NotifyNewAppointment(ctx, appointment); err != nil {
		s.logger.Warn("Failed to notify admins about new appointment",
			zap.Int64("appointment_id", appointment.ID),
			zap.Error(err))
	}

	err := s.reminders.Enqueue(ctx, req.ClientChatID, req.ClientName, appointment.Slot.StartTime)
	if err != nil {
		s.logger.Warn("Failed to enqueue reminder",
			zap.Int64("appointment_id", appointment.ID),
			zap.Error(err))
	}

	return appointment, nil
}

// Upcoming будущие записи с данными слотов
func (s *BookingService) Upcoming(ctx context.Context) ([]*model.Appointment, error) {
	return s.appointments.ListUpcoming(ctx, time.Now())
}

// Past архив прошедших записей, новые сверху
func (s *BookingService) Past(ctx context.Context) ([]*model.Appointment, error) {
	return s.appointments.ListPast(ctx, time.Now(), PastAppointmentsLimit)
}
