// Command kittyswipe is a terminal card-swiping game: drag right to like a
// cat, left to nope it, and see the ones you liked at the end.
package main

import (
	"fmt"
	"os"

	"github.com/abelbrown/kittyswipe/internal/config"
	"github.com/abelbrown/kittyswipe/internal/logging"
	"github.com/spf13/cobra"
)

type flags struct {
	configPath     string
	count          int
	endpoint       string
	seed           int64
	summaryTimeout string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "kittyswipe",
		Short: "Swipe through a deck of cats",
		Long: `kittyswipe fetches a batch of cat pictures and shows them one card at a time.
Drag a card (or use the arrow keys) right to like it and left to pass.
After the last card you get a summary of the cats you liked.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}

			if err := logging.Init(config.DataDir()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
			}
			defer logging.Close()

			return run(cmd.Context(), cfg, f.seed)
		},
	}

	cmd.Flags().StringVar(&f.configPath, "config", config.ConfigPath(), "path to config file")
	cmd.Flags().IntVarP(&f.count, "count", "n", 0, "number of cards per session")
	cmd.Flags().StringVar(&f.endpoint, "endpoint", "", "batch endpoint URL")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed for reproducible decks (0 picks one)")
	cmd.Flags().StringVar(&f.summaryTimeout, "summary-timeout", "", `how long the summary waits for images, e.g. "5s" ("0" waits forever)`)

	return cmd
}

// loadConfig reads the config file and applies any flags the user set.
func loadConfig(cmd *cobra.Command, f flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("count") {
		cfg.Deck.Size = f.count
	}
	if cmd.Flags().Changed("endpoint") {
		cfg.Source.Endpoint = f.endpoint
	}
	if cmd.Flags().Changed("summary-timeout") {
		if err := cfg.Summary.Timeout.UnmarshalText([]byte(f.summaryTimeout)); err != nil {
			return nil, fmt.Errorf("--summary-timeout: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
