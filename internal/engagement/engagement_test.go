package engagement

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/example/memetrend/internal/dataset"
	"github.com/example/memetrend/internal/tokenizer"
	"github.com/google/go-cmp/cmp"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"87", 87},
		{" 87 ", 87},
		{"1,234", 1234},
		{"1.2K", 1200},
		{"1.2k", 1200},
		{"3M", 3_000_000},
		{"2.5m", 2_500_000},
		{"1B", 1_000_000_000},
		{"1.1K", 1100},
		{"0", 0},
	}

	for _, tt := range tests {
		got, err := ParseCount(tt.in)
		if err != nil {
			t.Errorf("ParseCount(%q): %v", tt.in, err)
			continue
		}

		if got != tt.want {
			t.Errorf("ParseCount(%q) = %d; want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseCount_Invalid(t *testing.T) {
	for _, in := range []string{"", "  ", "K", "abc", "1.5", "1.2X", "NaNK"} {
		if _, err := ParseCount(in); !errors.Is(err, ErrInvalidCount) {
			t.Errorf("ParseCount(%q) error = %v; want ErrInvalidCount", in, err)
		}
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		// 2024-11-04 is a Monday.
		{time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC), time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 11, 6, 15, 30, 0, 0, time.UTC), time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 11, 10, 23, 59, 0, 0, time.UTC), time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 11, 11, 0, 0, 1, 0, time.UTC), time.Date(2024, 11, 11, 0, 0, 0, 0, time.UTC)},
		{time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC), time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		if got := WeekStart(tt.in); !got.Equal(tt.want) {
			t.Errorf("WeekStart(%v) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func row(day int, likes int64) Row {
	return Row{
		Record:    dataset.Record{UploadTime: time.Date(2024, 11, day, 12, 0, 0, 0, time.UTC)},
		LikeCount: likes,
	}
}

func TestWeeklyLikes(t *testing.T) {
	rows := []Row{row(12, 5), row(4, 10), row(10, 20), row(11, 1)}

	want := []WeekTotal{
		{Week: time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC), Likes: 30},
		{Week: time.Date(2024, 11, 11, 0, 0, 0, 0, time.UTC), Likes: 6},
	}
	if diff := cmp.Diff(want, WeeklyLikes(rows)); diff != "" {
		t.Errorf("WeeklyLikes mismatch (-want +got):\n%s", diff)
	}

	if got := WeeklyLikes(nil); len(got) != 0 {
		t.Errorf("WeeklyLikes(nil) = %v", got)
	}
}

func TestWeeklyLikes_HalfHourOffset(t *testing.T) {
	// Each parse of a non-whole-hour offset yields its own zone value.
	var rows []Row
	for _, ts := range []string{"2024-03-05T10:00:00+05:30", "2024-03-06T10:00:00+05:30", "2024-03-11T01:00:00+05:30"} {
		at, err := dataset.ParseTime(ts)
		if err != nil {
			t.Fatalf("ParseTime(%q): %v", ts, err)
		}
		rows = append(rows, Row{Record: dataset.Record{UploadTime: at}, LikeCount: 5})
	}

	want := []WeekTotal{
		{Week: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), Likes: 10},
		{Week: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), Likes: 5},
	}
	if diff := cmp.Diff(want, WeeklyLikes(rows)); diff != "" {
		t.Errorf("WeeklyLikes mismatch (-want +got):\n%s", diff)
	}
}

func TestWeeklyLikes_ReadBackTable(t *testing.T) {
	in := "upload_time,likes,caption_tokens\n" +
		"2024-03-05T10:00:00+05:30,5,[]\n" +
		"2024-03-06T10:00:00+05:30,1.2K,[]\n"

	records, err := dataset.ReadRecords(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}

	rows, err := Clean(records)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteWeekly(&buf, WeeklyLikes(rows)); err != nil {
		t.Fatalf("WriteWeekly: %v", err)
	}

	if got, want := buf.String(), "\xef\xbb\xbfweek,likes\n2024-03-04,1205\n"; got != want {
		t.Errorf("WriteWeekly = %q; want %q", got, want)
	}
}

func TestWeekdayAverages(t *testing.T) {
	// Mondays: 4th and 11th; Sunday: 10th.
	got := WeekdayAverages([]Row{row(4, 10), row(11, 21), row(10, 7)})
	if len(got) != 7 {
		t.Fatalf("len = %d; want 7", len(got))
	}

	if got[0].Label != "월" || got[0].Posts != 2 || got[0].Avg != 15.5 {
		t.Errorf("Monday = %+v; want 월, 2 posts, 15.5", got[0])
	}

	if got[6].Label != "일" || got[6].Avg != 7 {
		t.Errorf("Sunday = %+v; want 일, 7", got[6])
	}

	if !math.IsNaN(got[2].Avg) || got[2].Posts != 0 {
		t.Errorf("Wednesday = %+v; want no posts, NaN", got[2])
	}
}

func TestClean(t *testing.T) {
	rows, err := Clean([]dataset.Record{{Likes: "1.2K"}, {Likes: "3"}})
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}

	if rows[0].LikeCount != 1200 || rows[1].LikeCount != 3 {
		t.Errorf("LikeCounts = %d, %d", rows[0].LikeCount, rows[1].LikeCount)
	}

	_, err = Clean([]dataset.Record{{Likes: "1"}, {Likes: "lots"}})
	if !errors.Is(err, ErrInvalidCount) || !strings.Contains(err.Error(), "row 2") {
		t.Errorf("Clean error = %v; want ErrInvalidCount naming row 2", err)
	}
}

func TestWriters(t *testing.T) {
	rows := []Row{row(4, 10), row(10, 20)}
	rows[0].Username = "a"
	rows[0].Likes = "10"
	rows[0].Tokens = tokenizer.Encode("밈")

	var weekly bytes.Buffer
	if err := WriteWeekly(&weekly, WeeklyLikes(rows)); err != nil {
		t.Fatalf("WriteWeekly: %v", err)
	}

	if got, want := weekly.String(), "\xef\xbb\xbfweek,likes\n2024-11-04,30\n"; got != want {
		t.Errorf("WriteWeekly = %q; want %q", got, want)
	}

	var weekday bytes.Buffer
	if err := WriteWeekday(&weekday, WeekdayAverages(rows)); err != nil {
		t.Fatalf("WriteWeekday: %v", err)
	}

	wantWeekday := "\xef\xbb\xbfweekday_kr,avg_likes\n월,10.0\n화,\n수,\n목,\n금,\n토,\n일,20.0\n"
	if got := weekday.String(); got != wantWeekday {
		t.Errorf("WriteWeekday = %q; want %q", got, wantWeekday)
	}

	var cleaned bytes.Buffer
	if err := WriteCleaned(&cleaned, rows); err != nil {
		t.Fatalf("WriteCleaned: %v", err)
	}

	lines := strings.Split(strings.TrimPrefix(cleaned.String(), "\xef\xbb\xbf"), "\n")
	if lines[0] != "username,upload_time,likes,year,month,day,weekday,caption_tokens,weekday_kr,week" {
		t.Errorf("cleaned header = %q", lines[0])
	}

	if !strings.HasSuffix(lines[1], ",월,2024-11-04") || !strings.HasPrefix(lines[1], "a,2024-11-04T12:00:00Z,10,") {
		t.Errorf("cleaned row = %q", lines[1])
	}
}
