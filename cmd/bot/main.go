package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"go.uber.org/zap"

	"github.com/Freeeeeet/consultation_bot/internal/app"
	"github.com/Freeeeeet/consultation_bot/internal/bookingclient"
	"github.com/Freeeeeet/consultation_bot/internal/config"
	"github.com/Freeeeeet/consultation_bot/internal/controller"
	"github.com/Freeeeeet/consultation_bot/internal/controller/state"
)

func main() {
	cfg := config.Load()
	if err := cfg.ValidateBot(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, "bot")
	defer logger.Sync()

	logger.Info("Starting consultation bot",
		zap.String("environment", cfg.Environment),
		zap.String("booking_api", cfg.BookingAPIURL),
		zap.Duration("submit_timeout", cfg.BookingSubmitTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	submitter := bookingclient.New(cfg.BookingAPIURL, logger, bookingclient.WithTimeout(cfg.BookingSubmitTimeout))
	stateManager := state.NewManager(logger)

	janitor := app.NewJanitor(stateManager, cfg.WizardSessionTTL, cfg.JanitorInterval, logger)
	janitor.Start(ctx)

	botController := controller.NewBotController(b, stateManager, submitter, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Warn("Bot commands menu not set", zap.Error(err))
	}

	if err := botController.Start(ctx); err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
	}

	janitor.Stop()
	// дожидаемся фоновых отправок, чтобы пользователь получил результат
	stateManager.Wait()
	logger.Info("Bot stopped")
}
