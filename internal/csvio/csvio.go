// Package csvio reads and writes the UTF-8 CSV tables exchanged between
// pipeline stages. Written tables start with a byte order mark so
// spreadsheet tools detect the encoding; readers accept tables with or
// without one.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Writer writes CSV records behind a UTF-8 byte order mark.
// Close must be called to flush the last bytes.
type Writer struct {
	*csv.Writer
	tw *transform.Writer
}

// NewWriter returns a Writer on w.
func NewWriter(w io.Writer) *Writer {
	tw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	return &Writer{Writer: csv.NewWriter(tw), tw: tw}
}

// Close flushes buffered records. It does not close the underlying writer.
func (w *Writer) Close() error {
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := w.tw.Close(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteTable writes header followed by rows.
func WriteTable(w io.Writer, header []string, rows [][]string) error {
	cw := NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return cw.Close()
}

// NewReader returns a csv.Reader that skips a leading byte order mark.
func NewReader(r io.Reader) *csv.Reader {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return csv.NewReader(transform.NewReader(r, dec))
}

// Table is a parsed CSV file with columns addressable by name.
type Table struct {
	Header []string
	Rows   [][]string
	index  map[string]int
}

// ReadTable reads a CSV file with a header row.
func ReadTable(r io.Reader) (*Table, error) {
	records, err := NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read csv: missing header row")
	}
	t := &Table{Header: records[0], Rows: records[1:], index: make(map[string]int, len(records[0]))}
	for i, name := range t.Header {
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}
	return t, nil
}

// Column returns the position of the named column.
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// FormatFloat renders f the way the analysis tables always have: shortest
// representation, with a trailing ".0" on integral values. NaN renders as an
// empty cell.
func FormatFloat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !math.IsInf(f, 0) && f == math.Trunc(f) {
		s += ".0"
	}
	return s
}
