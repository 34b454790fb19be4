package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sbf.lopezb.com/internal/bloom"
)

type config struct {
	logLevel string
	source   string
	seed     uint64
	hash     string
}

type application struct {
	config config
	logger *slog.Logger

	// logOutput is where the logger writes; stderr unless a test swaps it.
	logOutput io.Writer
}

func newApp() *application {
	return &application{logOutput: os.Stderr}
}

func (app *application) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bloom-eval",
		Short:         "Measure Bloom filter accuracy against a word list",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLevel(app.config.logLevel)
			if err != nil {
				return err
			}
			app.logger = slog.New(slog.NewTextHandler(app.logOutput, &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&app.config.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	root.AddCommand(app.epochsCmd(), app.scalableCmd(), app.demoCmd())
	return root
}

// addSourceFlags registers the flags shared by commands that read a word list.
func (app *application) addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&app.config.source, "source", "", "Word list: file path, http(s) URL, or - for stdin (.zst is decompressed)")
	cmd.Flags().Uint64Var(&app.config.seed, "seed", 1, "Shuffle seed")
	cmd.Flags().StringVar(&app.config.hash, "hash", "murmur3", "Hash function (murmur3, xxhash)")
	_ = cmd.MarkFlagRequired("source")
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func parseHash(name string) (bloom.HashFunc, error) {
	switch strings.ToLower(name) {
	case "murmur3":
		return bloom.Murmur3, nil
	case "xxhash":
		return bloom.XXHash, nil
	default:
		return nil, fmt.Errorf("unknown hash function %q (want murmur3 or xxhash)", name)
	}
}
