package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/example/memetrend/internal/config"
	"github.com/example/memetrend/internal/doctor"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the data directory, inputs and output directories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "meme: %s\n", cfg.Paths.Meme)

			result := doctor.Run(doctor.Config{
				Paths: cfg.Paths,
				Kinds: []string{config.KindKeywords, config.KindEngagement, config.KindLifecycle},
			}, out)

			if result.Failed() {
				for _, f := range result.Failures() {
					fmt.Fprintf(os.Stderr, "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(out, "doctor checks passed")

			return nil
		},
	}

	return cmd
}
