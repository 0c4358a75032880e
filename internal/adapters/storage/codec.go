package storage

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"tradejournal/internal/domain/journal"
)

var errUnterminatedQuote = errors.New("unterminated quoted field")

// decodeRows reads headerless trade rows, one per line. Malformed rows are
// skipped; only errors from the underlying reader abort the pass.
func decodeRows(r io.Reader) (journal.LoadResult, error) {
	var res journal.LoadResult

	br := bufio.NewReader(r)
	for line := 1; ; line++ {
		text, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return res, err
		}
		text = strings.TrimRight(text, "\r\n")
		if text != "" {
			fields, perr := splitRecord(text)
			if perr != nil {
				res.Skip(line, fields, perr.Error())
			} else {
				res.Add(line, fields)
			}
		}
		if err != nil {
			return res, nil
		}
	}
}

// splitRecord parses one CSV line. Stray quotes that encoding/csv rejects
// are read leniently: text after a closing quote joins the field and a quote
// inside an unquoted field is literal, so `"NV"DA` reads as NVDA.
func splitRecord(line string) ([]string, error) {
	cr := csv.NewReader(strings.NewReader(line))
	cr.FieldsPerRecord = -1
	fields, err := cr.Read()
	if err == nil {
		return fields, nil
	}
	if errors.Is(err, csv.ErrQuote) || errors.Is(err, csv.ErrBareQuote) {
		return splitLenient(line)
	}
	return fields, err
}

func splitLenient(line string) ([]string, error) {
	const (
		startField = iota
		inField
		inQuoted
		quoteInQuoted
	)

	var (
		fields []string
		field  strings.Builder
		state  = startField
	)
	for _, c := range line {
		switch state {
		case startField, inField:
			switch {
			case c == ',':
				fields = append(fields, field.String())
				field.Reset()
				state = startField
			case c == '"' && state == startField:
				state = inQuoted
			default:
				field.WriteRune(c)
				state = inField
			}
		case inQuoted:
			if c == '"' {
				state = quoteInQuoted
			} else {
				field.WriteRune(c)
			}
		case quoteInQuoted:
			switch c {
			case '"':
				field.WriteRune(c)
				state = inQuoted
			case ',':
				fields = append(fields, field.String())
				field.Reset()
				state = startField
			default:
				field.WriteRune(c)
				state = inField
			}
		}
	}
	fields = append(fields, field.String())
	if state == inQuoted {
		return fields, errUnterminatedQuote
	}
	return fields, nil
}

func encodeRow(w io.Writer, t journal.Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Record()); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
