// Package engagement turns scraped like counters into weekly and per-weekday
// like statistics.
package engagement

import (
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/example/memetrend/internal/csvio"
	"github.com/example/memetrend/internal/dataset"
	"github.com/example/memetrend/internal/tokenizer"
)

// ErrInvalidCount is wrapped by ParseCount failures.
var ErrInvalidCount = errors.New("invalid count")

var suffixes = map[byte]float64{
	'K': 1e3,
	'M': 1e6,
	'B': 1e9,
}

// ParseCount converts a displayed counter ("1.2K", "3M", "1,234", "87") to an
// integer. Suffixed values are truncated toward zero.
func ParseCount(s string) (int64, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	v = strings.ReplaceAll(v, ",", "")
	if v == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidCount)
	}

	if mult, ok := suffixes[v[len(v)-1]]; ok {
		f, err := strconv.ParseFloat(v[:len(v)-1], 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidCount, s)
		}
		return int64(f * mult), nil
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCount, s)
	}
	return n, nil
}

// Row is a preprocessed post with its like counter parsed.
type Row struct {
	dataset.Record
	LikeCount int64
}

// Clean parses every record's like counter. Errors count rows from 1.
func Clean(records []dataset.Record) ([]Row, error) {
	rows := make([]Row, len(records))
	for i, rec := range records {
		n, err := ParseCount(rec.Likes)
		if err != nil {
			return nil, fmt.Errorf("row %d: likes: %w", i+1, err)
		}
		rows[i] = Row{Record: rec, LikeCount: n}
	}
	return rows, nil
}

// weekdayLabels are the one-character Korean weekday names, Monday first.
var weekdayLabels = [7]string{"월", "화", "수", "목", "금", "토", "일"}

// mondayIndex maps a time.Weekday to 0 (Monday) .. 6 (Sunday).
func mondayIndex(d time.Weekday) int { return (int(d) + 6) % 7 }

// WeekdayLabel returns the one-character Korean name of d.
func WeekdayLabel(d time.Weekday) string { return weekdayLabels[mondayIndex(d)] }

// WeekStart returns midnight of the Monday starting t's week, in t's location.
func WeekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -mondayIndex(t.Weekday()))
}

// WeekTotal is the like sum for one week.
type WeekTotal struct {
	Week  time.Time
	Likes int64
}

// WeeklyLikes sums likes per Monday-based week, oldest week first. Weeks
// without posts are omitted. Weeks are bucketed by the calendar date of their
// Monday in each post's own zone and reported as midnight UTC of that date.
func WeeklyLikes(rows []Row) []WeekTotal {
	sums := make(map[time.Time]int64)
	for _, r := range rows {
		y, m, d := WeekStart(r.UploadTime).Date()
		sums[time.Date(y, m, d, 0, 0, 0, 0, time.UTC)] += r.LikeCount
	}
	out := make([]WeekTotal, 0, len(sums))
	for wk, n := range sums {
		out = append(out, WeekTotal{Week: wk, Likes: n})
	}
	slices.SortFunc(out, func(a, b WeekTotal) int { return a.Week.Compare(b.Week) })
	return out
}

// WeekdayAverage is the mean like count for one weekday.
type WeekdayAverage struct {
	Label string
	Posts int
	Avg   float64 // NaN when Posts is 0
}

// WeekdayAverages returns the mean likes for each weekday, Monday first.
func WeekdayAverages(rows []Row) []WeekdayAverage {
	var sums [7]float64
	var posts [7]int
	for _, r := range rows {
		i := mondayIndex(r.UploadTime.Weekday())
		sums[i] += float64(r.LikeCount)
		posts[i]++
	}
	out := make([]WeekdayAverage, 7)
	for i := range out {
		avg := math.NaN()
		if posts[i] > 0 {
			avg = sums[i] / float64(posts[i])
		}
		out[i] = WeekdayAverage{Label: weekdayLabels[i], Posts: posts[i], Avg: avg}
	}
	return out
}

// CleanedColumns is the header of the cleaned likes table.
var CleanedColumns = append(slices.Clone(dataset.Columns), "weekday_kr", "week")

// WriteCleaned writes the preprocessed rows with numeric likes, the Korean
// weekday and the week start appended.
func WriteCleaned(w io.Writer, rows []Row) error {
	out := make([][]string, len(rows))
	for i, r := range rows {
		tokens, err := tokenizer.FormatTokens(r.Tokens)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		t := r.UploadTime
		out[i] = []string{
			r.Username,
			t.Format(time.RFC3339),
			strconv.FormatInt(r.LikeCount, 10),
			strconv.Itoa(t.Year()),
			strconv.Itoa(int(t.Month())),
			strconv.Itoa(t.Day()),
			t.Weekday().String(),
			tokens,
			WeekdayLabel(t.Weekday()),
			WeekStart(t).Format(time.DateOnly),
		}
	}
	return csvio.WriteTable(w, CleanedColumns, out)
}

// WriteWeekly writes the week,likes table.
func WriteWeekly(w io.Writer, totals []WeekTotal) error {
	rows := make([][]string, len(totals))
	for i, t := range totals {
		rows[i] = []string{t.Week.Format(time.DateOnly), strconv.FormatInt(t.Likes, 10)}
	}
	return csvio.WriteTable(w, []string{"week", "likes"}, rows)
}

// WriteWeekday writes the weekday_kr,avg_likes table; weekdays without posts
// get an empty average.
func WriteWeekday(w io.Writer, avgs []WeekdayAverage) error {
	rows := make([][]string, len(avgs))
	for i, a := range avgs {
		rows[i] = []string{a.Label, csvio.FormatFloat(a.Avg)}
	}
	return csvio.WriteTable(w, []string{"weekday_kr", "avg_likes"}, rows)
}
