// Package csvlog implements the append-only CSV log that backs lead
// storage. The format is fixed: a header row written exactly once, then one
// comma-delimited row per record. Designated fields are always wrapped in
// double quotes with embedded quotes doubled, so read-back reconstructs the
// original value exactly. Records never contain line breaks; callers must
// strip them before appending.
package csvlog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
)

// ErrFieldCount is returned by Append when the value count does not match
// the header.
var ErrFieldCount = errors.New("csvlog: field count does not match header")

// Log is a single append-only CSV file. Appends are serialized through a
// mutex and each row is written with one Write call, so concurrent readers
// never observe a torn row.
type Log struct {
	mu     sync.Mutex
	path   string
	header []string
	quoted []bool
}

// New creates a log for path. header names the columns; quoted marks the
// columns that are always quote-wrapped on write. The file itself is
// created lazily on first append.
func New(path string, header []string, quoted []bool) (*Log, error) {
	if len(header) == 0 {
		return nil, errors.New("csvlog: header must not be empty")
	}
	if len(quoted) != len(header) {
		return nil, errors.New("csvlog: quoted mask must match header length")
	}
	return &Log{path: path, header: header, quoted: quoted}, nil
}

// Path returns the location of the backing file.
func (l *Log) Path() string {
	return l.path
}

// Append writes one record as a single row. On the very first append the
// header row is written before the record.
func (l *Log) Append(values []string) error {
	if len(values) != len(l.header) {
		return fmt.Errorf("%w: got %d, want %d", ErrFieldCount, len(values), len(l.header))
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("csvlog: open %s: %w", l.path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return fmt.Errorf("csvlog: stat %s: %w", l.path, err)
	}

	var row strings.Builder
	if st.Size() == 0 {
		row.WriteString(strings.Join(l.header, ","))
		row.WriteByte('\n')
	}
	row.WriteString(EncodeRow(values, l.quoted))
	row.WriteByte('\n')

	if _, err := f.WriteString(row.String()); err != nil {
		return fmt.Errorf("csvlog: append to %s: %w", l.path, err)
	}
	return nil
}

// ReadAll parses the log and returns every record in file order, oldest
// first. Rows whose field count does not match the header are skipped
// rather than treated as fatal. A missing file reads as an empty log.
func (l *Log) ReadAll() ([][]string, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csvlog: read %s: %w", l.path, err)
	}

	var records [][]string
	seenHeader := false
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !seenHeader {
			seenHeader = true
			continue
		}
		fields := DecodeRow(line)
		if len(fields) != len(l.header) {
			continue
		}
		records = append(records, fields)
	}
	return records, nil
}
