package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"sbf.lopezb.com/internal/bloom"
	"sbf.lopezb.com/internal/eval"
	"sbf.lopezb.com/internal/wordlist"
)

// loadWords reads, shuffles and splits the configured word list.
func (app *application) loadWords(cmd *cobra.Command) (present, absent []string, err error) {
	start := time.Now()
	words, err := wordlist.Load(cmd.Context(), app.config.source)
	if err != nil {
		return nil, nil, err
	}
	app.logger.Info("word list loaded", "source", app.config.source, "words", len(words), "elapsed", time.Since(start))

	wordlist.Shuffle(words, app.config.seed)
	present, absent = wordlist.Split(words)
	wordlist.Shuffle(present, app.config.seed)
	wordlist.Shuffle(absent, app.config.seed)
	return present, absent, nil
}

func (app *application) hashScheme() (bloom.HashScheme, error) {
	fn, err := parseHash(app.config.hash)
	if err != nil {
		return bloom.HashScheme{}, err
	}
	return bloom.HashScheme{Func: fn}, nil
}

func (app *application) epochsCmd() *cobra.Command {
	opts := eval.DefaultEpochOptions()

	cmd := &cobra.Command{
		Use:   "epochs",
		Short: "Evaluate fixed filters sized for growing batches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hs, err := app.hashScheme()
			if err != nil {
				return err
			}
			opts.Hash = hs

			present, absent, err := app.loadWords(cmd)
			if err != nil {
				return err
			}

			results, err := eval.Epochs(present, absent, opts)
			if err != nil {
				return fmt.Errorf("epochs: %w", err)
			}
			if len(results) < opts.Epochs {
				app.logger.Warn("word list too short for all epochs", "requested", opts.Epochs, "ran", len(results))
			}

			return writeEpochs(cmd.OutOrStdout(), results)
		},
	}

	app.addSourceFlags(cmd)
	cmd.Flags().IntVar(&opts.Epochs, "epochs", opts.Epochs, "Number of batches")
	cmd.Flags().IntVar(&opts.Step, "step", opts.Step, "Batch size increment")
	cmd.Flags().Float64Var(&opts.ErrorRate, "error-rate", opts.ErrorRate, "Target false positive rate")
	return cmd
}

func (app *application) scalableCmd() *cobra.Command {
	cfg := bloom.DefaultConfig()
	var growth string

	cmd := &cobra.Command{
		Use:   "scalable",
		Short: "Evaluate a scalable filter fed with half the word list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := bloom.ParseGrowthMode(growth)
			if err != nil {
				return err
			}
			cfg.Growth = g

			if cfg.Hash, err = app.hashScheme(); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			present, absent, err := app.loadWords(cmd)
			if err != nil {
				return err
			}

			res, err := eval.Scalable(present, absent, cfg)
			if err != nil {
				return fmt.Errorf("scalable: %w", err)
			}
			app.logger.Debug("scalable filter built", "tiers", len(res.Tiers), "items", res.Items)

			return writeScalable(cmd.OutOrStdout(), res)
		},
	}

	app.addSourceFlags(cmd)
	cmd.Flags().IntVar(&cfg.InitialCapacity, "initial-capacity", cfg.InitialCapacity, "Capacity of the first tier")
	cmd.Flags().Float64Var(&cfg.ErrorRate, "error-rate", cfg.ErrorRate, "Target false positive rate of the first tier")
	cmd.Flags().StringVar(&growth, "growth", cfg.Growth.String(), "Tier growth mode (slow = x2, fast = x4)")
	cmd.Flags().Float64Var(&cfg.TighteningRatio, "ratio", cfg.TighteningRatio, "Error rate tightening ratio per tier")
	return cmd
}

func (app *application) demoCmd() *cobra.Command {
	capacity := len(eval.DemoPresent)
	errorRate := 0.05
	var seed uint64 = 1

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the built-in word set through a small filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, stats, err := eval.Demo(capacity, errorRate, seed)
			if err != nil {
				return fmt.Errorf("demo: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Capacity: %d\n", stats.Capacity)
			fmt.Fprintf(out, "False positive rate: %v\n", stats.ErrorRate)
			fmt.Fprintf(out, "Number of bits in bit array: %d\n", stats.NumBits)
			fmt.Fprintf(out, "Number of hash functions: %d\n", stats.NumHashes)
			for _, l := range lines {
				fmt.Fprintf(out, "'%s' is %s!\n", l.Word, l.Verdict)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&capacity, "capacity", capacity, "Filter capacity")
	cmd.Flags().Float64Var(&errorRate, "error-rate", errorRate, "Target false positive rate")
	cmd.Flags().Uint64Var(&seed, "seed", seed, "Shuffle seed")
	return cmd
}

func writeEpochs(w io.Writer, results []eval.EpochResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BATCH\tBITS\tHASHES\tTP\tFP\tTN\tFN\tFPR")
	for _, r := range results {
		c := r.Confusion
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%d\t%d\t%.4f\n",
			r.Batch, r.Filter.NumBits, r.Filter.NumHashes,
			c.TruePositive, c.FalsePositive, c.TrueNegative, c.FalseNegative,
			c.FalsePositiveRate())
	}
	return tw.Flush()
}

func writeScalable(w io.Writer, res eval.ScalableResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIER\tCAPACITY\tCOUNT\tERROR\tBITS\tHASHES\tFILL")
	for i, s := range res.Tiers {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%.6f\t%d\t%d\t%.3f\n",
			i, s.Capacity, s.Count, s.ErrorRate, s.NumBits, s.NumHashes, s.FillRatio)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	c := res.Confusion
	_, err := fmt.Fprintf(w, "\nitems=%d %s\nobserved FPR=%.4f estimated FPR=%.4f bound=%.4f\n",
		res.Items, c, c.FalsePositiveRate(), res.EstimatedFPR, res.ErrorBound)
	return err
}
