package storage

import (
	"compress/gzip"
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"tradejournal/internal/domain/journal"
	"tradejournal/internal/ports"
)

// GzipTradeStore keeps the same rows as CSVTradeStore in a gzip file. Every
// append adds a new gzip member, so earlier bytes are never rewritten and
// readers see one continuous CSV stream.
type GzipTradeStore struct {
	path string
	mu   sync.Mutex
}

var _ ports.TradeStore = (*GzipTradeStore)(nil)

func NewGzipTradeStore(path string) *GzipTradeStore {
	return &GzipTradeStore{path: path}
}

func (s *GzipTradeStore) Load(ctx context.Context) (journal.LoadResult, error) {
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

	zr, err := gzip.NewReader(f)
	if errors.Is(err, io.EOF) {
		return journal.LoadResult{}, nil
	}
	if err != nil {
		return journal.LoadResult{}, err
	}
	defer zr.Close()

	return decodeRows(zr)
}

func (s *GzipTradeStore) Append(ctx context.Context, t journal.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := openAppend(s.path)
	if err != nil {
		return err
	}
	zw := gzip.NewWriter(f)
	if err := encodeRow(zw, t); err != nil {
		zw.Close()
		f.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *GzipTradeStore) Close() error { return nil }
