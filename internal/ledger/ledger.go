// Package ledger persists the ranked list of finished games as CSV.
package ledger

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Header is the first line of every ledger file.
const Header = "Name, Time (seconds)"

var (
	// ErrEmptyName is returned when a name is blank after trimming.
	ErrEmptyName = errors.New("name must not be empty")
	// ErrNegativeTime is returned for times below zero.
	ErrNegativeTime = errors.New("time must be >= 0")
)

// Entry is one ranked record.
type Entry struct {
	Name    string
	Seconds float64
}

// ReadError reports a ledger file that could not be parsed.
type ReadError struct {
	Path string
	Line int
	Err  error
}

func (e *ReadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("read ledger %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("read ledger %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a ledger file that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write ledger %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Ledger is a CSV-backed score table. It assumes a single writer.
type Ledger struct {
	path string
}

// Open returns a ledger stored at path. The file is created on first Load.
func Open(path string) *Ledger {
	return &Ledger{path: path}
}

// Path returns the backing file path.
func (l *Ledger) Path() string {
	return l.path
}

// Load reads all entries sorted by time. A missing file yields an empty
// ledger and is created with only the header.
func (l *Ledger) Load() ([]Entry, error) {
	file, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := l.Save(nil); err != nil {
				return nil, err
			}
			return []Entry{}, nil
		}
		return nil, &ReadError{Path: l.path, Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only ledger.
			_ = cerr
		}
	}()

	entries, err := decode(file)
	if err != nil {
		var re *ReadError
		if errors.As(err, &re) {
			re.Path = l.path
			return nil, re
		}
		return nil, &ReadError{Path: l.path, Err: err}
	}
	SortEntries(entries)
	return entries, nil
}

// Save replaces the ledger with entries sorted by time. The file is written
// to a temporary sibling and renamed into place.
func (l *Ledger) Save(entries []Entry) error {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	SortEntries(sorted)

	var buf bytes.Buffer
	if err := encode(&buf, sorted); err != nil {
		return &WriteError{Path: l.path, Err: err}
	}
	if err := writeAtomic(l.path, buf.Bytes()); err != nil {
		return &WriteError{Path: l.path, Err: err}
	}
	return nil
}

// Append adds a record and persists the ledger. It returns the new ranking.
func (l *Ledger) Append(name string, seconds float64) ([]Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if seconds < 0 {
		return nil, ErrNegativeTime
	}
	entries, err := l.Load()
	if err != nil {
		return nil, err
	}
	entries = append(entries, Entry{Name: name, Seconds: seconds})
	SortEntries(entries)
	if err := l.Save(entries); err != nil {
		return entries, err
	}
	return entries, nil
}

// Top returns the n fastest entries.
func (l *Ledger) Top(n int) ([]Entry, error) {
	entries, err := l.Load()
	if err != nil {
		return nil, err
	}
	return TopN(entries, n), nil
}

// SortEntries orders entries by ascending time, keeping insertion order for ties.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Seconds < entries[j].Seconds
	})
}

// TopN returns the first n entries of a sorted copy.
func TopN(entries []Entry, n int) []Entry {
	if n <= 0 || len(entries) == 0 {
		return []Entry{}
	}
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	SortEntries(sorted)
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// Rank returns the 1-based position seconds takes in a sorted ledger that
// already contains it. Ties rank after earlier equal times.
func Rank(entries []Entry, seconds float64) int {
	rank := 0
	for _, e := range entries {
		if e.Seconds <= seconds {
			rank++
		}
	}
	if rank == 0 {
		return 1
	}
	return rank
}

func decode(r io.Reader) ([]Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	entries := []Entry{}
	first := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &ReadError{Line: pe.Line, Err: pe.Err}
			}
			return nil, err
		}
		line, _ := reader.FieldPos(0)
		if first {
			first = false
			if isHeader(record) {
				continue
			}
			return nil, &ReadError{Line: line, Err: fmt.Errorf("missing header")}
		}
		name := strings.TrimSpace(record[0])
		if name == "" {
			return nil, &ReadError{Line: line, Err: ErrEmptyName}
		}
		seconds, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return nil, &ReadError{Line: line, Err: fmt.Errorf("invalid time %q", record[1])}
		}
		if seconds < 0 {
			return nil, &ReadError{Line: line, Err: ErrNegativeTime}
		}
		entries = append(entries, Entry{Name: name, Seconds: seconds})
	}
	return entries, nil
}

func isHeader(record []string) bool {
	return strings.EqualFold(strings.TrimSpace(record[0]), "Name") &&
		strings.EqualFold(strings.TrimSpace(record[1]), "Time (seconds)")
}

func encode(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, Header); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%s, %s\n", quoteField(e.Name), FormatSeconds(e.Seconds)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// FormatSeconds renders a time with two decimals.
func FormatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 2, 64)
}

func quoteField(field string) string {
	if !strings.ContainsAny(field, ",\"\r\n") && strings.TrimSpace(field) == field {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create ledger dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "ledger-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp ledger: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync ledger: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close ledger: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace ledger: %w", err)
	}
	return nil
}
