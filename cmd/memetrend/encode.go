package main

import (
	"fmt"
	"io"
	"strings"

	textpkg "github.com/example/memetrend/internal/text"
	"github.com/example/memetrend/internal/tokenizer"
	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	var text string
	var decode bool

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a caption to tokens, or decode tokens back to words",
		Long: "Encode reads a caption from --text or stdin and prints its tokens as JSON.\n" +
			"With --decode the input is a token list and each recombined word is printed on its own line.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			input, err := readInput(text, cmd.InOrStdin())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if decode {
				return decodeTokens(input, out)
			}

			s, err := tokenizer.FormatTokens(newEncoder(cfg).Encode(input))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, s)
			return err
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Input text (reads stdin when empty)")
	cmd.Flags().BoolVar(&decode, "decode", false, "Treat the input as a token list and print the recombined words")

	return cmd
}

// readInput prefers the flag value and falls back to stdin.
func readInput(flagText string, stdin io.Reader) (string, error) {
	if strings.TrimSpace(flagText) != "" {
		return textpkg.Normalize(flagText)
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}

	s, err := textpkg.Normalize(string(data))
	if err != nil {
		return "", fmt.Errorf("no input: pass --text or pipe text on stdin: %w", err)
	}
	return s, nil
}

func decodeTokens(input string, w io.Writer) error {
	tokens, err := tokenizer.ParseTokens(input)
	if err != nil {
		return err
	}
	words, err := tokenizer.RecombineAll(tokens)
	if err != nil {
		return err
	}
	for _, word := range words {
		if _, err := fmt.Fprintln(w, word); err != nil {
			return err
		}
	}
	return nil
}
