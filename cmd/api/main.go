package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Freeeeeet/consultation_bot/internal/api"
	"github.com/Freeeeeet/consultation_bot/internal/app"
	"github.com/Freeeeeet/consultation_bot/internal/config"
	"github.com/Freeeeeet/consultation_bot/internal/notify"
	"github.com/Freeeeeet/consultation_bot/internal/observability/metrics"
	"github.com/Freeeeeet/consultation_bot/internal/repository"
	"github.com/Freeeeeet/consultation_bot/internal/service"
	"github.com/Freeeeeet/consultation_bot/migrations"
)

func main() {
	cfg := config.Load()
	if err := cfg.ValidateAPI(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, "api")
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("API stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}

	migrator, err := app.NewMigrator(pool, migrations.FS, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		_ = migrator.Close()
		return err
	}
	_ = migrator.Close()

	var dedupe service.Deduper = service.NopDeduper{}
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return err
		}
		client := redis.NewClient(opts)
		defer client.Close()
		dedupe = service.NewRedisDeduper(client, cfg.DedupeWindow)
		logger.Info("Redis dedupe enabled", zap.Duration("window", cfg.DedupeWindow))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	mailer := notify.Observed(notify.NewEmailSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger), m.ObserveEmail)

	bookings := service.NewBookingService(
		repository.NewBookingRepository(pool),
		dedupe,
		mailer,
		loc,
		logger,
		service.WithNotifyTo(cfg.NotifyEmail),
	)
	leads := service.NewLeadService(repository.NewLeadRepository(pool), dedupe, mailer, cfg.NotifyEmail, logger)

	handler := api.NewHandler(bookings, leads, pool.Ping, m, logger)
	router := api.NewRouter(api.RouterConfig{
		Handler:        handler,
		Logger:         logger,
		Metrics:        m,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		CORSOrigins:    cfg.CORSAllowedOrigins,
		RateLimiter:    api.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr), zap.String("timezone", loc.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
