package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/example/memetrend/internal/config"
	"github.com/example/memetrend/internal/dataset"
	"github.com/example/memetrend/internal/engagement"
	"github.com/example/memetrend/internal/keywords"
	"github.com/example/memetrend/internal/lifecycle"
	"github.com/example/memetrend/internal/tokenizer"
)

func newEncoder(cfg config.Config) *tokenizer.Encoder {
	return tokenizer.NewEncoder(tokenizer.WithCompose(cfg.Codec.NFC))
}

// writeOutput creates path (and its directory) and hands it to write.
func writeOutput(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func loadRecords(cfg config.Config) ([]dataset.Record, error) {
	path := cfg.Paths.Preprocessed()
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open preprocessed table (run preprocess first): %w", err)
	}
	defer f.Close()

	records, err := dataset.ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

func runPreprocess(ctx context.Context, cfg config.Config) error {
	start := time.Now()
	in := cfg.Paths.RawPosts()
	f, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("open raw posts: %w", err)
	}
	posts, err := dataset.ReadPosts(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("read %s: %w", in, err)
	}

	records, stats, err := dataset.Preprocess(ctx, posts, dataset.Options{
		Tokenizer: newEncoder(cfg),
		Workers:   cfg.Codec.Workers,
		Logger:    slog.Default(),
	})
	if err != nil {
		return err
	}

	out := cfg.Paths.Preprocessed()
	if err := writeOutput(out, func(w io.Writer) error { return dataset.WriteRecords(w, records) }); err != nil {
		return err
	}

	slog.Info("preprocess complete",
		"meme", cfg.Paths.Meme,
		"posts", stats.Posts,
		"kept", stats.Kept,
		"dropped_no_likes", stats.NoLikes,
		"dropped_bad_time", stats.BadTime,
		"tokens", stats.Tokens,
		"output", out,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func runKeywords(cfg config.Config, stdout io.Writer) error {
	records, err := loadRecords(cfg)
	if err != nil {
		return err
	}

	corpus := make([][]tokenizer.Token, len(records))
	for i, rec := range records {
		corpus[i] = rec.Tokens
	}
	tbl, err := keywords.Build(corpus)
	if err != nil {
		return fmt.Errorf("count keywords: %w", err)
	}
	entries := tbl.Entries()

	out := cfg.Paths.Keywords()
	if err := writeOutput(out, func(w io.Writer) error { return keywords.Write(w, entries) }); err != nil {
		return err
	}
	if cfg.Keywords.Top > 0 {
		keywords.FormatTable(entries, cfg.Keywords.Top, stdout)
	}

	slog.Info("keywords complete", "meme", cfg.Paths.Meme, "captions", len(records), "words", len(entries), "output", out)
	return nil
}

func runEngagement(cfg config.Config) error {
	records, err := loadRecords(cfg)
	if err != nil {
		return err
	}
	rows, err := engagement.Clean(records)
	if err != nil {
		return fmt.Errorf("clean likes: %w", err)
	}

	p := cfg.Paths
	outputs := []struct {
		table string
		write func(io.Writer) error
	}{
		{"likes_cleaned", func(w io.Writer) error { return engagement.WriteCleaned(w, rows) }},
		{"weekly_likes", func(w io.Writer) error { return engagement.WriteWeekly(w, engagement.WeeklyLikes(rows)) }},
		{"weekday_likes", func(w io.Writer) error { return engagement.WriteWeekday(w, engagement.WeekdayAverages(rows)) }},
	}
	for _, o := range outputs {
		if err := writeOutput(p.Engagement(o.table), o.write); err != nil {
			return err
		}
	}

	slog.Info("engagement complete", "meme", p.Meme, "rows", len(rows), "output", p.AnalysisDir(config.KindEngagement))
	return nil
}

func runLifecycle(cfg config.Config) error {
	records, err := loadRecords(cfg)
	if err != nil {
		return err
	}
	times := make([]time.Time, len(records))
	for i, rec := range records {
		times[i] = rec.UploadTime
	}

	lc := cfg.Lifecycle
	days := lifecycle.Analyze(times, lifecycle.Options{
		MovingAvgWindow:  lc.MovingAvgWindow,
		DeltaWindow:      lc.DeltaWindow,
		GrowthThreshold:  lc.GrowthThreshold,
		DeclineThreshold: lc.DeclineThreshold,
	})

	out := cfg.Paths.Lifecycle()
	if err := writeOutput(out, func(w io.Writer) error { return lifecycle.Write(w, days) }); err != nil {
		return err
	}

	slog.Info("lifecycle complete", "meme", cfg.Paths.Meme, "days", len(days), "output", out)
	return nil
}
