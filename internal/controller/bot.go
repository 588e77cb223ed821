package controller

import (
	"context"

	"github.com/Freeeeeet/psychologist_bot/internal/config"
	"github.com/Freeeeeet/psychologist_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/psychologist_bot/internal/controller/handlers"
	"github.com/Freeeeeet/psychologist_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	cfg *config.Config,
	scheduleService handlers.ScheduleService,
	bookingService handlers.BookingService,
	logger *zap.Logger,
) *BotController {
	// Менеджер состояний общий для текстовых и callback обработчиков
	stateManager := state.NewManager()

	cmdHandlers := handlers.New(
		cfg,
		botInstance,
		scheduleService,
		bookingService,
		stateManager,
		logger,
	)

	callbackHandler := callbacks.New(
		cfg,
		botInstance,
		scheduleService,
		stateManager,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Команды
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, adapt(c.handlers.HandleStart))
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, adapt(c.handlers.HandleHelp))
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, adapt(c.handlers.HandleCancel))

	// Кнопки меню и шаги диалогов
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, adapt(c.handlers.HandleTextMessage))

	// Нажатия на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, adapt(c.callbackHandler.HandleCallbackQuery))

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Главное меню"},
		{Command: "help", Description: "❓ Справка"},
		{Command: "cancel", Description: "❌ Отменить текущую операцию"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}

// adapt приводит обработчик к сигнатуре bot.HandlerFunc.
// Обработчики зависят от минимального интерфейса клиента, а не от *bot.Bot,
// поэтому аргумент b здесь не нужен.
func adapt(h func(ctx context.Context, update *models.Update)) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		h(ctx, update)
	}
}
