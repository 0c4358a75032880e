package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"tradejournal/internal/domain/journal"
	"tradejournal/internal/ports"
)

// CSVTradeStore keeps trades in a headerless CSV file that is only ever
// appended to.
type CSVTradeStore struct {
	path string
	mu   sync.Mutex
}

var _ ports.TradeStore = (*CSVTradeStore)(nil)

func NewCSVTradeStore(path string) *CSVTradeStore {
	return &CSVTradeStore{path: path}
}

func (s *CSVTradeStore) Path() string { return s.path }

func (s *CSVTradeStore) Load(ctx context.Context) (journal.LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return journal.LoadResult{}, nil
	}
	if err != nil {
		return journal.LoadResult{}, err
	}
	defer f.Close()

	return decodeRows(f)
}

func (s *CSVTradeStore) Append(ctx context.Context, t journal.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := openAppend(s.path)
	if err != nil {
		return err
	}
	if err := encodeRow(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *CSVTradeStore) Close() error { return nil }

func openAppend(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}
