package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func newPreprocessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preprocess",
		Short: "Tokenize collected posts into the preprocessed table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			return runPreprocess(cmd.Context(), cfg)
		},
	}
}

func newKeywordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keywords",
		Short: "Count recombined caption words and write the frequency table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			return runKeywords(cfg, cmd.OutOrStdout())
		},
	}
}

func newEngagementCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "engagement",
		Short: "Write weekly and per-weekday like statistics",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			return runEngagement(cfg)
		},
	}
}

func newLifecycleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lifecycle",
		Short: "Write the daily posting curve with lifecycle phases",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			return runLifecycle(cfg)
		},
	}
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run preprocess, keywords, engagement and lifecycle in order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			_, statErr := os.Stat(cfg.Paths.RawPosts())
			if errors.Is(statErr, fs.ErrNotExist) {
				slog.Warn("no raw posts, reusing preprocessed table", "path", cfg.Paths.RawPosts())
			} else if err := runPreprocess(cmd.Context(), cfg); err != nil {
				return err
			}

			if err := runKeywords(cfg, cmd.OutOrStdout()); err != nil {
				return err
			}
			if err := runEngagement(cfg); err != nil {
				return err
			}
			return runLifecycle(cfg)
		},
	}
}
