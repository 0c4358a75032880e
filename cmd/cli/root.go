package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tradejournal/internal/adapters/alphavantage"
	"tradejournal/internal/adapters/storage"
	"tradejournal/internal/app"
	"tradejournal/internal/config"
	"tradejournal/internal/logger"
	"tradejournal/internal/trace"
)

type rootOptions struct {
	configPath string
	storage    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "tradejournal",
		Short: "Record closed trades and review daily profit and loss",
		Long: `tradejournal keeps a journal of closed stock trades.

Each trade is saved with today's date, its ticker, entry and exit price and
the formatted result. Days are colored green or red on the calendar by
their net result.

Examples:
  tradejournal add --ticker AAPL --entry 100 --exit 105.50
  tradejournal calendar --month 2026-10
  tradejournal ui`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default ./tradejournal.yaml)")
	root.PersistentFlags().StringVarP(&opts.storage, "storage", "s", "", "trade store, e.g. csv:trades.csv, gzip:trades.csv.gz, sqlite:trades.sqlite")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		newAddCmd(opts),
		newListCmd(opts),
		newCalendarCmd(opts),
		newSkippedCmd(opts),
		newSummaryCmd(opts),
		newReportCmd(opts),
		newUICmd(opts),
		newConfigCmd(opts),
	)
	return root
}

// journalEnv is a loaded journal together with the resources behind it.
type journalEnv struct {
	cfg      *config.Config
	log      *zap.Logger
	svc      *app.JournalService
	failures *logger.FailureLog
	store    *storage.StoreWithInfo
	loaded   app.LoadReport
	tracing  bool
}

// openJournal loads configuration, builds the store and service and reads
// every persisted trade. Interactive sessions keep the log off the terminal.
func openJournal(ctx context.Context, opts *rootOptions, interactive bool) (*journalEnv, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.storage != "" {
		cfg.Storage = opts.storage
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	logOutput := cfg.LogOutput
	if interactive && (logOutput == "" || logOutput == "stderr" || logOutput == "stdout") {
		logOutput = "none"
	}
	log, err := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: logOutput})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	env := &journalEnv{cfg: cfg, log: log}
	if cfg.Tracing && !interactive {
		if err := trace.Init(os.Stderr); err != nil {
			return nil, fmt.Errorf("tracing: %w", err)
		}
		env.tracing = true
	}

	info, err := storage.NewTradeStore(cfg.Storage)
	if err != nil {
		return nil, err
	}
	env.store = info
	env.failures = logger.NewFailureLog(cfg.DiagnosticLog)

	svcOpts := []app.Option{
		app.WithLogger(log),
		app.WithFailureLog(env.failures),
		app.WithAggregateMode(cfg.Mode()),
	}
	if cfg.AlphaVantageAPIKey != "" {
		svcOpts = append(svcOpts, app.WithQuotes(alphavantage.New(cfg.AlphaVantageAPIKey)))
	}
	env.svc = app.NewJournalService(info.Store, svcOpts...)

	log.Debug("trade store opened",
		zap.String("backend", info.Backend),
		zap.String("location", info.Location))

	env.loaded, err = env.svc.Load(ctx)
	if err != nil {
		_ = env.Close()
		return nil, err
	}
	return env, nil
}

func (e *journalEnv) Close() error {
	var errs []error
	if e.svc != nil {
		errs = append(errs, e.svc.Close())
	}
	if e.failures != nil {
		errs = append(errs, e.failures.Close())
	}
	if e.tracing {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		errs = append(errs, trace.Shutdown(ctx))
		cancel()
	}
	_ = e.log.Sync()
	return errors.Join(errs...)
}

// withJournal runs fn against an opened journal and closes it afterwards.
func withJournal(cmd *cobra.Command, opts *rootOptions, interactive bool, fn func(env *journalEnv) error) (err error) {
	env, err := openJournal(cmd.Context(), opts, interactive)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := env.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(env)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
