// cmd/fulfillment-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"ticketbot/internal/common/aws"
	"ticketbot/internal/common/config"
	"ticketbot/internal/common/database"
	"ticketbot/internal/common/logger"
	"ticketbot/internal/common/observability"
	"ticketbot/internal/dialog"
	"ticketbot/internal/handlers/bookticket"
	"ticketbot/internal/handlers/help"
	"ticketbot/internal/handlers/listtheaters"
	"ticketbot/internal/notify"
	"ticketbot/internal/store/catalog"
	"ticketbot/internal/store/orders"
	"ticketbot/internal/transport/httpapi"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting fulfillment server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		zapLog.Fatal("timezone load failed", zap.Error(err), zap.String("timezone", cfg.App.Timezone))
	}

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init SNS ---
	snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
	if err != nil {
		zapLog.Fatal("sns client init failed", zap.Error(err))
	}
	zapLog.Info("SNS client initialized")

	// --- Wire stores, notifier, handlers ---
	catalogStore := catalog.New(
		pg.DB, rdb.Client,
		cfg.Catalog.MovieTable,
		time.Duration(cfg.Catalog.CacheTTL)*time.Second,
		log,
	)
	orderStore := orders.New(pg.DB, cfg.Catalog.OrderTable, log)
	smsSender := notify.NewSMSSender(snsClient, cfg.Notifications.SMS.Enabled, log)

	dispatcher := dialog.NewDispatcher(log,
		bookticket.New(catalogStore, orderStore, smsSender, loc, log),
		listtheaters.New(catalogStore, loc, log),
		help.New(),
	)

	server := httpapi.NewServer(dispatcher, log, obs,
		time.Duration(cfg.Server.RequestTimeout)*time.Millisecond)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.Int("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zapLog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http shutdown failed", zap.Error(err))
	}
	zapLog.Info("Shutdown complete")
}
