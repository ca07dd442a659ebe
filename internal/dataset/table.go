package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/example/memetrend/internal/csvio"
	"github.com/example/memetrend/internal/tokenizer"
)

// ErrNoCaptionTokens is returned when a posts table lacks the caption_tokens column.
var ErrNoCaptionTokens = errors.New("posts table has no caption_tokens column")

// Columns is the header of the preprocessed posts table.
var Columns = []string{"username", "upload_time", "likes", "year", "month", "day", "weekday", "caption_tokens"}

// Record is one row of the preprocessed posts table.
type Record struct {
	Username   string
	UploadTime time.Time
	Likes      string
	Tokens     []tokenizer.Token
}

// Options configures Preprocess.
type Options struct {
	Tokenizer tokenizer.Tokenizer
	Workers   int
	Logger    *slog.Logger
}

// Stats summarizes a Preprocess run.
type Stats struct {
	Posts   int // posts read
	Kept    int // rows written
	NoLikes int // dropped: hidden like counter
	BadTime int // dropped: unparseable upload_time
	Tokens  int // tokens across kept rows
}

// Preprocess drops posts without a like counter or a readable timestamp and
// encodes every remaining caption.
func Preprocess(ctx context.Context, posts []Post, opts Options) ([]Record, Stats, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	tok := opts.Tokenizer
	if tok == nil {
		tok = tokenizer.NewEncoder()
	}

	stats := Stats{Posts: len(posts)}
	records := make([]Record, 0, len(posts))
	captions := make([]string, 0, len(posts))
	for i, p := range posts {
		if !p.Likes.Valid {
			stats.NoLikes++
			continue
		}
		ts, err := ParseTime(p.UploadTime)
		if err != nil {
			stats.BadTime++
			log.Warn("dropping post", "index", i, "username", p.Username, "error", err)
			continue
		}
		records = append(records, Record{Username: p.Username, UploadTime: ts, Likes: p.Likes.Raw})
		captions = append(captions, p.Caption)
	}

	encoded, err := tokenizer.EncodeAll(ctx, tok, captions, opts.Workers)
	if err != nil {
		return nil, stats, fmt.Errorf("encode captions: %w", err)
	}
	for i := range records {
		records[i].Tokens = encoded[i]
		stats.Tokens += len(encoded[i])
	}
	stats.Kept = len(records)

	return records, stats, nil
}

// WriteRecords writes the preprocessed posts table.
func WriteRecords(w io.Writer, records []Record) error {
	rows := make([][]string, len(records))
	for i, rec := range records {
		tokens, err := tokenizer.FormatTokens(rec.Tokens)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		t := rec.UploadTime
		rows[i] = []string{
			rec.Username,
			t.Format(time.RFC3339),
			rec.Likes,
			strconv.Itoa(t.Year()),
			strconv.Itoa(int(t.Month())),
			strconv.Itoa(t.Day()),
			t.Weekday().String(),
			tokens,
		}
	}
	return csvio.WriteTable(w, Columns, rows)
}

// ReadRecords reads a preprocessed posts table. Row numbers in errors count
// data rows from 1.
func ReadRecords(r io.Reader) ([]Record, error) {
	tbl, err := csvio.ReadTable(r)
	if err != nil {
		return nil, err
	}
	tokCol, ok := tbl.Column("caption_tokens")
	if !ok {
		return nil, ErrNoCaptionTokens
	}
	timeCol, ok := tbl.Column("upload_time")
	if !ok {
		return nil, errors.New("posts table has no upload_time column")
	}
	userCol, hasUser := tbl.Column("username")
	likesCol, hasLikes := tbl.Column("likes")

	records := make([]Record, len(tbl.Rows))
	for i, row := range tbl.Rows {
		tokens, err := tokenizer.ParseTokens(row[tokCol])
		if err != nil {
			return nil, fmt.Errorf("row %d: caption_tokens: %w", i+1, err)
		}
		ts, err := ParseTime(row[timeCol])
		if err != nil {
			return nil, fmt.Errorf("row %d: upload_time: %w", i+1, err)
		}
		rec := Record{UploadTime: ts, Tokens: tokens}
		if hasUser {
			rec.Username = row[userCol]
		}
		if hasLikes {
			rec.Likes = row[likesCol]
		}
		records[i] = rec
	}
	return records, nil
}
