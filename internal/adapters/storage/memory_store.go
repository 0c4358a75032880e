package storage

import (
	"context"
	"sync"

	"tradejournal/internal/domain/journal"
	"tradejournal/internal/ports"
)

// MemoryTradeStore keeps raw rows in-memory. Useful for tests or ephemeral runs.
type MemoryTradeStore struct {
	mu   sync.Mutex
	rows [][]string
}

var _ ports.TradeStore = (*MemoryTradeStore)(nil)

func NewMemoryTradeStore() *MemoryTradeStore {
	return &MemoryTradeStore{}
}

// Seed appends raw rows as if they had been read from a file. Rows are not
// validated until Load.
func (s *MemoryTradeStore) Seed(rows ...[]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range rows {
		s.rows = append(s.rows, append([]string(nil), r...))
	}
}

func (s *MemoryTradeStore) Rows() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([][]string, len(s.rows))
	for i, r := range s.rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}

func (s *MemoryTradeStore) Load(ctx context.Context) (journal.LoadResult, error) {
	var res journal.LoadResult
	for i, r := range s.Rows() {
		res.Add(i+1, r)
	}
	return res, nil
}

func (s *MemoryTradeStore) Append(ctx context.Context, t journal.Trade) error {
	s.Seed(t.Record())
	return nil
}

func (s *MemoryTradeStore) Close() error { return nil }
