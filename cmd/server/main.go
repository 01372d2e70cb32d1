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

	"go.uber.org/zap"

	"github.com/veloria-studio/session-booking-backend/internal/app"
	"github.com/veloria-studio/session-booking-backend/internal/booking"
	"github.com/veloria-studio/session-booking-backend/internal/config"
	"github.com/veloria-studio/session-booking-backend/internal/db"
)

// completionSweepInterval is how often confirmed bookings whose time has
// passed get marked completed.
const completionSweepInterval = 10 * time.Minute

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.IsProduction)
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("failed to connect to db", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("failed to init migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	migrator.Close()

	container, err := app.NewContainer(app.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		DBPool:       pool,
		StoragePath:  cfg.StoragePath,
		JWTSecret:    cfg.JWTSecret,
		JWTTTL:       cfg.JWTAccessTokenTTL,
		BcryptCost:   cfg.BcryptCost,
		Policy: booking.Policy{
			HorizonDays:  cfg.BookingHorizonDays,
			HourStart:    cfg.BookingHourStart,
			HourEnd:      cfg.BookingHourEnd,
			CancelCutoff: cfg.CancelCutoff,
		},
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("failed to init application", zap.Error(err))
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	go func() {
		logger.Info("server running", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	go runCompletionSweep(ctx, container.BookingService, logger)

	// Wait for Ctrl+C
	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited gracefully")
}

// runCompletionSweep periodically transitions elapsed confirmed bookings to
// completed so session history does not depend on manual updates.
func runCompletionSweep(ctx context.Context, svc booking.Service, logger *zap.Logger) {
	ticker := time.NewTicker(completionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := svc.CompleteElapsed(ctx)
			if err != nil {
				logger.Warn("completion sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Info("bookings completed", zap.Int("count", n))
			}
		}
	}
}
