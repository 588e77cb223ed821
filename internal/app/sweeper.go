package app

import (
	"context"
	"time"

	"github.com/Freeeeeet/psychologist_bot/internal/service"
	"go.uber.org/zap"
)

// Интервал проверки напоминаний и задержка первого прохода
const (
	sweepInterval   = 5 * time.Minute
	sweepStartDelay = 10 * time.Second
)

// Sweeper управляет фоновой рассылкой напоминаний
type Sweeper struct {
	reminderService *service.ReminderService
	logger          *zap.Logger
	stopChan        chan struct{}
}

// NewSweeper создаёт новый планировщик рассылки
func NewSweeper(reminderService *service.ReminderService, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		reminderService: reminderService,
		logger:          logger,
		stopChan:        make(chan struct{}),
	}
}

// Start запускает периодическую проверку напоминаний
func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("Starting reminder sweeper",
		zap.Duration("interval", sweepInterval))

	go s.run(ctx)
}

// Stop останавливает фоновую задачу
func (s *Sweeper) Stop() {
	s.logger.Info("Stopping reminder sweeper")
	close(s.stopChan)
}

func (s *Sweeper) run(ctx context.Context) {
	// Первый проход вскоре после старта — могли накопиться
	// просроченные напоминания, пока бот был выключен
	select {
	case <-time.After(sweepStartDelay):
		s.sweep(ctx)
	case <-s.stopChan:
		return
	case <-ctx.Done():
		return
	}

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopChan:
			s.logger.Info("Reminder sweep task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Reminder sweep task cancelled")
			return
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	sent, err := s.reminderService.Sweep(ctx, time.Now())
	if err != nil {
		s.logger.Error("Reminder sweep failed", zap.Error(err))
		return
	}

	if sent > 0 {
		s.logger.Info("Reminder sweep completed", zap.Int("sent", sent))
	}
}
