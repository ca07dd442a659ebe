package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ParseLogLevel converts a case-insensitive level string to slog.Level.
// An empty string returns slog.LevelInfo. Unknown strings return an error.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}

// Validate normalizes the meme name and rejects settings no stage can run with.
func (c *Config) Validate() error {
	meme, err := MemeName(c.Paths.Meme)
	if err != nil {
		return err
	}
	c.Paths.Meme = meme

	var errs []error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		errs = append(errs, errors.New("paths.data_dir must not be empty"))
	}
	if c.Codec.Workers < 1 {
		errs = append(errs, fmt.Errorf("codec.workers must be >= 1, got %d", c.Codec.Workers))
	}
	if c.Keywords.Top < 0 {
		errs = append(errs, fmt.Errorf("keywords.top must be >= 0, got %d", c.Keywords.Top))
	}
	if c.Lifecycle.MovingAvgWindow < 1 {
		errs = append(errs, fmt.Errorf("lifecycle.moving_avg_window must be >= 1, got %d", c.Lifecycle.MovingAvgWindow))
	}
	if c.Lifecycle.DeltaWindow < 1 {
		errs = append(errs, fmt.Errorf("lifecycle.delta_window must be >= 1, got %d", c.Lifecycle.DeltaWindow))
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
