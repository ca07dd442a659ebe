package csvio

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const bom = "\xef\xbb\xbf"

func TestWriteTable_PrefixesBOM(t *testing.T) {
	var buf bytes.Buffer

	err := WriteTable(&buf, []string{"word", "count"}, [][]string{{"짱", "3"}, {"밈", "3"}})
	if err != nil {
		t.Fatalf("WriteTable: %v", err)
	}

	want := bom + "word,count\n짱,3\n밈,3\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteTable output = %q, want %q", got, want)
	}
}

func TestWriteTable_LargeOutputIsComplete(t *testing.T) {
	// Enough multi-byte rows to cross the csv and transform buffer sizes,
	// so a rune is split across internal flushes at least once.
	rows := make([][]string, 5000)
	for i := range rows {
		rows[i] = []string{strings.Repeat("밈", i%7+1), "1"}
	}

	var buf bytes.Buffer
	if err := WriteTable(&buf, []string{"word", "count"}, rows); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}

	tbl, err := ReadTable(&buf)
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}

	if diff := cmp.Diff(rows, tbl.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestReadTable_WithAndWithoutBOM(t *testing.T) {
	for _, prefix := range []string{"", bom} {
		tbl, err := ReadTable(strings.NewReader(prefix + "word,count\n굿,1\n"))
		if err != nil {
			t.Fatalf("ReadTable: %v", err)
		}

		if diff := cmp.Diff([]string{"word", "count"}, tbl.Header); diff != "" {
			t.Errorf("header mismatch (-want +got):\n%s", diff)
		}

		i, ok := tbl.Column("word")
		if !ok || i != 0 {
			t.Errorf("Column(word) = %d, %v; want 0, true", i, ok)
		}

		if _, ok := tbl.Column("caption"); ok {
			t.Error("Column(caption) found in a table without it")
		}
	}
}

func TestReadTable_Empty(t *testing.T) {
	if _, err := ReadTable(strings.NewReader("")); err == nil {
		t.Error("ReadTable(empty) = nil error; want missing header")
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1.0"},
		{0, "0.0"},
		{-2, "-2.0"},
		{1.5, "1.5"},
		{2.0 / 3.0, "0.6666666666666666"},
		{-10.25, "-10.25"},
		{math.NaN(), ""},
	}

	for _, tt := range tests {
		if got := FormatFloat(tt.in); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
