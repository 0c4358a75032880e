package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects level, encoding and destination of the application log.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // console or json
	Output string // stderr, stdout, or a file path
}

// New builds the application logger. An Output of "none" returns a no-op
// logger, which the TUI uses so log lines do not tear the screen.
func New(opts Options) (*zap.Logger, error) {
	if strings.EqualFold(opts.Output, "none") {
		return zap.NewNop(), nil
	}

	level, err := zapcore.ParseLevel(orDefault(opts.Level, "info"))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	var cfg zap.Config
	switch strings.ToLower(orDefault(opts.Format, "console")) {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console":
		cfg = zap.NewDevelopmentConfig()
		cfg.Development = false
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		if opts.Output != "" && opts.Output != "stderr" && opts.Output != "stdout" {
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		}
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	out := orDefault(opts.Output, "stderr")
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{out}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true

	return cfg.Build()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
