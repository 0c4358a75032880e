package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tradejournal/internal/adapters/alphavantage"
	"tradejournal/internal/adapters/storage"
	"tradejournal/internal/app"
	"tradejournal/internal/config"
	"tradejournal/internal/logger"
	"tradejournal/internal/trace"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("TRADEJOURNAL_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: cfg.LogOutput})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("api stopped", zap.Error(err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if cfg.Tracing {
		if err := trace.Init(os.Stderr); err != nil {
			return fmt.Errorf("tracing: %w", err)
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = trace.Shutdown(sctx)
		}()
	}

	storeInfo, err := storage.NewTradeStore(cfg.Storage)
	if err != nil {
		return fmt.Errorf("invalid storage: %w", err)
	}
	failures := logger.NewFailureLog(cfg.DiagnosticLog)
	defer failures.Close()

	opts := []app.Option{
		app.WithLogger(log),
		app.WithFailureLog(failures),
		app.WithAggregateMode(cfg.Mode()),
	}
	if cfg.AlphaVantageAPIKey != "" {
		opts = append(opts, app.WithQuotes(alphavantage.New(cfg.AlphaVantageAPIKey)))
	}
	svc := app.NewJournalService(storeInfo.Store, opts...)
	defer svc.Close()

	if _, err := svc.Load(ctx); err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.APIAddr,
		Handler:           newMux(svc, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("api listening",
			zap.String("addr", cfg.APIAddr),
			zap.String("backend", storeInfo.Backend),
			zap.String("location", storeInfo.Location))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("api shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(sctx)
	})
	return g.Wait()
}
