package storage

import (
	"errors"
	"fmt"
	"strings"

	"tradejournal/internal/ports"
)

const (
	BackendCSV    = "csv"
	BackendFile   = "file"
	BackendGzip   = "gzip"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"

	DefaultCSVPath    = "trades.csv"
	DefaultGzipPath   = "trades.csv.gz"
	DefaultSQLitePath = "trades.sqlite"
)

var ErrUnsupportedBackend = errors.New("unsupported trade store backend")

// NewTradeStore returns a store for the provided backend spec.
// Examples:
//   - "csv:trades.csv"
//   - "gzip:/var/lib/journal/trades.csv.gz"
//   - "sqlite:trades.sqlite"
//   - "memory"
//
// If no backend is specified, the argument is treated as a CSV file path.
func NewTradeStore(spec string) (*StoreWithInfo, error) {
	backend, arg := parseSpec(spec)

	switch backend {
	case BackendMemory:
		return &StoreWithInfo{Backend: BackendMemory, Store: NewMemoryTradeStore()}, nil
	case BackendCSV, BackendFile:
		return &StoreWithInfo{Backend: BackendCSV, Location: orDefault(arg, DefaultCSVPath), Store: NewCSVTradeStore(orDefault(arg, DefaultCSVPath))}, nil
	case BackendGzip:
		return &StoreWithInfo{Backend: BackendGzip, Location: orDefault(arg, DefaultGzipPath), Store: NewGzipTradeStore(orDefault(arg, DefaultGzipPath))}, nil
	case BackendSQLite:
		path := orDefault(arg, DefaultSQLitePath)
		store, err := NewSQLiteTradeStore(path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store %s: %w", path, err)
		}
		return &StoreWithInfo{Backend: BackendSQLite, Location: path, Store: store}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, backend)
	}
}

type StoreWithInfo struct {
	Backend  string
	Location string
	Store    ports.TradeStore
}

func parseSpec(spec string) (backend, arg string) {
	if spec == "" {
		return BackendCSV, DefaultCSVPath
	}

	if !strings.Contains(spec, ":") {
		backend = strings.ToLower(spec)
		switch backend {
		case BackendMemory, BackendCSV, BackendFile, BackendGzip, BackendSQLite:
			return backend, ""
		default:
			// A bare path selects the CSV backend.
			return BackendCSV, spec
		}
	}

	parts := strings.SplitN(spec, ":", 2)
	backend = strings.ToLower(parts[0])
	arg = parts[1]
	return backend, arg
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
