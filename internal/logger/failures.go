package logger

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tradejournal/internal/domain/journal"
	"tradejournal/internal/ports"
)

// lazyFile is an append-only sink that creates its file on the first write.
type lazyFile struct {
	path string
	mu   sync.Mutex
	f    *os.File
}

func (l *lazyFile) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.f == nil {
		if dir := filepath.Dir(l.path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return 0, err
			}
		}
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return 0, err
		}
		l.f = f
	}
	return l.f.Write(p)
}

func (l *lazyFile) Sync() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.f == nil {
		return nil
	}
	return l.f.Sync()
}

func (l *lazyFile) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}

// FailureLog is the plain-text diagnostic file of trades that could not be
// written, one line per failure.
type FailureLog struct {
	sink *lazyFile
	log  *zap.Logger
}

var _ ports.FailureLog = (*FailureLog)(nil)

func NewFailureLog(path string) *FailureLog {
	sink := &lazyFile{path: path}
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	})
	core := zapcore.NewCore(enc, sink, zapcore.ErrorLevel)
	return &FailureLog{sink: sink, log: zap.New(core)}
}

func (l *FailureLog) Path() string { return l.sink.path }

func (l *FailureLog) RecordWriteFailure(t journal.Trade, err error) {
	l.log.Error("failed to save trade",
		zap.String("date", t.Day()),
		zap.String("ticker", t.Ticker),
		zap.String("entry", t.Entry.StringFixed(2)),
		zap.String("exit", t.Exit.StringFixed(2)),
		zap.Error(err))
	_ = l.log.Sync()
}

func (l *FailureLog) Close() error {
	_ = l.log.Sync()
	return l.sink.Close()
}
