package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/psychologist_bot/internal/model"
	"go.uber.org/zap"
)

// SlotStore хранилище слотов расписания
type SlotStore interface {
	Create(ctx context.Context, startTime time.Time) (*model.Slot, error)
	GetByID(ctx context.Context, id int64) (*model.Slot, error)
	ListFree(ctx context.Context) ([]*model.Slot, error)
	ListFreeFuture(ctx context.Context, now time.Time) ([]*model.Slot, error)
	ListAll(ctx context.Context) ([]*model.Slot, error)
	ListFuture(ctx context.Context, now time.Time) ([]*model.Slot, error)
	Delete(ctx context.Context, id int64) error
}

// ScheduleService управляет инвентарём слотов (админские операции)
type ScheduleService struct {
	slots  SlotStore
	logger *zap.Logger
}

func NewScheduleService(slots SlotStore, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		slots:  slots,
		logger: logger,
	}
}

// AddSlot создаёт новый свободный слот.
// Возвращает model.ErrSlotExists если слот на это время уже есть.
func (s *ScheduleService) AddSlot(ctx context.Context, startTime time.Time) (*model.Slot, error) {
	slot, err := s.slots.Create(ctx, startTime)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Slot created",
		zap.Int64("slot_id", slot.ID),
		zap.Time("start_time", slot.StartTime),
	)

	return slot, nil
}

// DeleteSlot удаляет свободный слот.
// Занятые слоты удалить нельзя — вернётся model.ErrSlotBooked.
func (s *ScheduleService) DeleteSlot(ctx context.Context, id int64) error {
	if err := s.slots.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Slot deleted", zap.Int64("slot_id", id))
	return nil
}

// FreeSlots все свободные слоты, включая прошедшие
func (s *ScheduleService) FreeSlots(ctx context.Context) ([]*model.Slot, error) {
	return s.slots.ListFree(ctx)
}

// FreeFutureSlots свободные слоты в будущем — то, что можно забронировать или удалить
func (s *ScheduleService) FreeFutureSlots(ctx context.Context) ([]*model.Slot, error) {
	return s.slots.ListFreeFuture(ctx, time.Now())
}

// FutureSlots будущие слоты со статусами — для админского обзора
func (s *ScheduleService) FutureSlots(ctx context.Context) ([]*model.Slot, error) {
	return s.slots.ListFuture(ctx, time.Now())
}

// AllSlots все слоты, включая архивные
func (s *ScheduleService) AllSlots(ctx context.Context) ([]*model.Slot, error) {
	return s.slots.ListAll(ctx)
}
