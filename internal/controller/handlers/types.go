package handlers

import (
	"context"
	"time"

	"github.com/Freeeeeet/psychologist_bot/internal/config"
	"github.com/Freeeeeet/psychologist_bot/internal/controller/state"
	"github.com/Freeeeeet/psychologist_bot/internal/model"
	"github.com/Freeeeeet/psychologist_bot/internal/service"
	"github.com/Freeeeeet/psychologist_bot/internal/telegram"
	"go.uber.org/zap"
)

// ScheduleService операции над инвентарём слотов
type ScheduleService interface {
	AddSlot(ctx context.Context, startTime time.Time) (*model.Slot, error)
	DeleteSlot(ctx context.Context, id int64) error
	FreeFutureSlots(ctx context.Context) ([]*model.Slot, error)
	FutureSlots(ctx context.Context) ([]*model.Slot, error)
	AllSlots(ctx context.Context) ([]*model.Slot, error)
}

// BookingService оформление и просмотр записей
type BookingService interface {
	Book(ctx context.Context, req service.BookingRequest) (*model.Appointment, error)
	Upcoming(ctx context.Context) ([]*model.Appointment, error)
	Past(ctx context.Context) ([]*model.Appointment, error)
}

// Handlers содержит все зависимости для обработки сообщений
type Handlers struct {
	cfg             *config.Config
	client          telegram.Client
	scheduleService ScheduleService
	bookingService  BookingService
	stateManager    *state.Manager
	logger          *zap.Logger
}

// New создаёт новый обработчик команд и диалогов
func New(
	cfg *config.Config,
	client telegram.Client,
	scheduleService ScheduleService,
	bookingService BookingService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		cfg:             cfg,
		client:          client,
		scheduleService: scheduleService,
		bookingService:  bookingService,
		stateManager:    stateManager,
		logger:          logger,
	}
}
