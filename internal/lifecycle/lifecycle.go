// Package lifecycle derives a meme's daily posting curve and labels each day
// with a lifecycle phase.
package lifecycle

import (
	"io"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/example/memetrend/internal/csvio"
)

// Phase is a lifecycle phase label.
type Phase string

const (
	Growth  Phase = "성장기"
	Decline Phase = "쇠퇴기"
	Plateau Phase = "정체기"
)

// Options holds the smoothing windows and phase thresholds.
type Options struct {
	MovingAvgWindow  int
	DeltaWindow      int
	GrowthThreshold  float64
	DeclineThreshold float64
}

// DefaultOptions returns the windows and thresholds the published reports use.
func DefaultOptions() Options {
	return Options{
		MovingAvgWindow:  7,
		DeltaWindow:      3,
		GrowthThreshold:  -10.5,
		DeclineThreshold: -10.3,
	}
}

// Day is one row of the lifecycle table.
type Day struct {
	Date       time.Time // midnight UTC of the calendar date
	Count      int
	Weekday    string
	MovingAvg  float64
	Cumulative int
	Delta      float64 // NaN when undefined
	Phase      Phase
}

var weekdayNames = [7]string{"일요일", "월요일", "화요일", "수요일", "목요일", "금요일", "토요일"}

// Classify maps a smoothed delta to a phase. Growth is checked first, so with
// overlapping thresholds growth wins; an undefined delta is a plateau.
func (o Options) Classify(delta float64) Phase {
	switch {
	case delta > o.GrowthThreshold:
		return Growth
	case delta < o.DeclineThreshold:
		return Decline
	default:
		return Plateau
	}
}

// Analyze buckets post timestamps by calendar date (in each timestamp's own
// location) and computes the smoothed curve. Only dates with posts appear;
// rolling windows run over those rows, oldest first.
func Analyze(times []time.Time, opts Options) []Day {
	counts := make(map[time.Time]int)
	for _, t := range times {
		y, m, d := t.Date()
		counts[time.Date(y, m, d, 0, 0, 0, 0, time.UTC)]++
	}
	dates := make([]time.Time, 0, len(counts))
	for d := range counts {
		dates = append(dates, d)
	}
	slices.SortFunc(dates, func(a, b time.Time) int { return a.Compare(b) })

	days := make([]Day, len(dates))
	series := make([]float64, len(dates))
	cum := 0
	for i, d := range dates {
		cum += counts[d]
		series[i] = float64(counts[d])
		days[i] = Day{Date: d, Count: counts[d], Weekday: weekdayNames[d.Weekday()], Cumulative: cum}
	}

	avg := rollingMean(series, opts.MovingAvgWindow)
	diff := make([]float64, len(avg))
	for i := range avg {
		if i == 0 {
			diff[i] = math.NaN()
			continue
		}
		diff[i] = avg[i] - avg[i-1]
	}
	delta := rollingMean(diff, opts.DeltaWindow)

	for i := range days {
		days[i].MovingAvg = avg[i]
		days[i].Delta = delta[i]
		days[i].Phase = opts.Classify(delta[i])
	}
	return days
}

// rollingMean is a trailing mean over up to window values, skipping NaN.
// A window holding only NaN yields NaN.
func rollingMean(xs []float64, window int) []float64 {
	window = max(window, 1)
	out := make([]float64, len(xs))
	for i := range xs {
		sum, n := 0.0, 0
		for _, x := range xs[max(0, i-window+1) : i+1] {
			if math.IsNaN(x) {
				continue
			}
			sum += x
			n++
		}
		if n == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(n)
	}
	return out
}

// Columns is the lifecycle table header.
var Columns = []string{"date", "count", "weekday", "moving_avg", "cumulative", "delta", "phase"}

// Write writes the lifecycle table; an undefined delta is an empty cell.
func Write(w io.Writer, days []Day) error {
	rows := make([][]string, len(days))
	for i, d := range days {
		rows[i] = []string{
			d.Date.Format(time.DateOnly),
			strconv.Itoa(d.Count),
			d.Weekday,
			csvio.FormatFloat(d.MovingAvg),
			strconv.Itoa(d.Cumulative),
			csvio.FormatFloat(d.Delta),
			string(d.Phase),
		}
	}
	return csvio.WriteTable(w, Columns, rows)
}
