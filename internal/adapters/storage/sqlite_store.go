package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"

	"tradejournal/internal/domain/journal"
	"tradejournal/internal/ports"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	trade_date TEXT NOT NULL,
	ticker TEXT NOT NULL,
	entry_price TEXT NOT NULL,
	exit_price TEXT NOT NULL,
	result_text TEXT NOT NULL
);`

// SQLiteTradeStore keeps trades in a single SQLite table. Columns are stored
// as the same text the CSV file holds, so rows go through the same
// validation on load. IDs are ULIDs and order rows by insertion.
type SQLiteTradeStore struct {
	db *sql.DB
	mu sync.Mutex
}

var _ ports.TradeStore = (*SQLiteTradeStore)(nil)

func NewSQLiteTradeStore(path string) (*SQLiteTradeStore, error) {
	if err := ensureSQLiteDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteTradeStore{db: db}, nil
}

func (s *SQLiteTradeStore) Load(ctx context.Context) (journal.LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res journal.LoadResult
	rows, err := s.db.QueryContext(ctx,
		"SELECT trade_date, ticker, entry_price, exit_price, result_text FROM trades ORDER BY id")
	if err != nil {
		return res, err
	}
	defer rows.Close()

	line := 0
	for rows.Next() {
		fields := make([]string, journal.RecordFields)
		if err := rows.Scan(&fields[0], &fields[1], &fields[2], &fields[3], &fields[4]); err != nil {
			return res, err
		}
		line++
		res.Add(line, fields)
	}
	return res, rows.Err()
}

func (s *SQLiteTradeStore) Append(ctx context.Context, t journal.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := t.Record()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO trades (id, trade_date, ticker, entry_price, exit_price, result_text) VALUES (?, ?, ?, ?, ?, ?)",
		ulid.Make().String(), rec[0], rec[1], rec[2], rec[3], rec[4])
	return err
}

func (s *SQLiteTradeStore) Close() error {
	return s.db.Close()
}

func ensureSQLiteDir(path string) error {
	if path == "" || path == ":memory:" {
		return nil
	}

	path = strings.TrimPrefix(path, "file:")
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
