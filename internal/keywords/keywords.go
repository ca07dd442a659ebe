// Package keywords counts recombined words across a caption corpus.
package keywords

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/example/memetrend/internal/csvio"
	"github.com/example/memetrend/internal/hangul"
	"github.com/example/memetrend/internal/tokenizer"
)

// Header is the keyword table header. Downstream charts read the columns by
// position.
var Header = []string{"word", "count"}

// Entry is one row of the frequency table.
type Entry struct {
	Word  string
	Count int
}

type counter struct {
	count int
	seq   int // first-seen order
}

// Table accumulates word counts. Entries are ordered by count, descending,
// with ties kept in first-seen order. A Table is not safe for concurrent use.
type Table struct {
	counts map[string]*counter
	words  []string // in first-seen order
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{counts: make(map[string]*counter)}
}

// Add counts one occurrence of word.
func (t *Table) Add(word string) {
	c, ok := t.counts[word]
	if !ok {
		c = &counter{seq: len(t.words)}
		t.counts[word] = c
		t.words = append(t.words, word)
	}
	c.count++
}

// AddTokens recombines and counts every token of one caption. A corrupt
// token aborts the caption before any of its words are counted.
func (t *Table) AddTokens(tokens []tokenizer.Token) error {
	words, err := tokenizer.RecombineAll(tokens)
	if err != nil {
		return err
	}
	for _, w := range words {
		t.Add(w)
	}
	return nil
}

// Len returns the number of distinct words.
func (t *Table) Len() int { return len(t.words) }

// Count returns how often word was added.
func (t *Table) Count(word string) int {
	if c, ok := t.counts[word]; ok {
		return c.count
	}
	return 0
}

// Entries returns the table sorted by count, descending; equal counts keep
// first-seen order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.words))
	for i, w := range t.words {
		out[i] = Entry{Word: w, Count: t.counts[w].count}
	}
	slices.SortStableFunc(out, func(a, b Entry) int {
		return b.Count - a.Count
	})
	return out
}

// Build counts every caption's tokens in corpus order. Errors name the
// caption (from 1) and the token within it.
func Build(corpus [][]tokenizer.Token) (*Table, error) {
	t := NewTable()
	for i, tokens := range corpus {
		if err := t.AddTokens(tokens); err != nil {
			return nil, fmt.Errorf("caption %d: %w", i+1, err)
		}
	}
	return t, nil
}

// Write writes entries as the word,count table.
func Write(w io.Writer, entries []Entry) error {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Word, strconv.Itoa(e.Count)}
	}
	return csvio.WriteTable(w, Header, rows)
}

// FormatTable writes the first n entries as an aligned text table.
// n <= 0 writes every entry.
func FormatTable(entries []Entry, n int, w io.Writer) {
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}

	width := 4
	for _, e := range entries {
		width = max(width, displayWidth(e.Word))
	}

	sb := &strings.Builder{}
	fmt.Fprintf(sb, "%-5s  %s  %8s\n", "Rank", pad("Word", width), "Count")
	fmt.Fprintln(sb, strings.Repeat("-", 5+2+width+2+8))
	for i, e := range entries {
		fmt.Fprintf(sb, "%-5d  %s  %8d\n", i+1, pad(e.Word, width), e.Count)
	}

	fmt.Fprint(w, sb.String())
}

// displayWidth counts Hangul and Jamo as two terminal columns.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch {
		case hangul.IsSyllable(r), r >= 0x3131 && r <= 0x318E, r >= 0x1100 && r <= 0x115F:
			n += 2
		default:
			n++
		}
	}
	return n
}

func pad(s string, width int) string {
	if d := width - displayWidth(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}
