package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradejournal/internal/domain/journal"
)

func TestNew(t *testing.T) {
	log, err := New(Options{Level: "debug", Format: "json", Output: filepath.Join(t.TempDir(), "app.log")})
	require.NoError(t, err)
	log.Info("hello")

	_, err = New(Options{Level: "loud"})
	assert.Error(t, err)

	_, err = New(Options{Format: "xml"})
	assert.Error(t, err)

	nop, err := New(Options{Output: "none"})
	require.NoError(t, err)
	assert.NotNil(t, nop)
}

func TestFailureLogCreatedOnFirstFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "journal-errors.log")
	fl := NewFailureLog(path)
	defer fl.Close()

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "file must not exist before a failure")

	tr := journal.NewTrade(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), "aapl",
		decimal.RequireFromString("100"), decimal.RequireFromString("105.5"))
	fl.RecordWriteFailure(tr, errors.New("disk full"))
	fl.RecordWriteFailure(tr, errors.New("disk still full"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "failed to save trade")
	assert.Contains(t, lines[0], "AAPL")
	assert.Contains(t, lines[0], "disk full")
	assert.Contains(t, lines[1], "disk still full")
}
