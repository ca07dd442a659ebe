package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/example/memetrend/internal/config"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	activeCfg config.Config
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "memetrend",
		Short:         "Meme caption tokenizer and trend analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			if err := loaded.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			activeCfg = loaded
			setupLogger(os.Stderr, loaded.LogLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newPreprocessCmd())
	cmd.AddCommand(newKeywordsCmd())
	cmd.AddCommand(newEngagementCmd())
	cmd.AddCommand(newLifecycleCmd())
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newEncodeCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// setupLogger configures the process-wide slog default logger. Every record
// carries the run_id of this invocation.
func setupLogger(w io.Writer, levelStr string) {
	lvl, err := config.ParseLogLevel(levelStr)
	if err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h).With("run_id", uuid.NewString()))
}

func requireConfig() (config.Config, error) {
	if activeCfg.Paths.DataDir == "" {
		return config.Config{}, fmt.Errorf("configuration not loaded")
	}
	return activeCfg, nil
}
