package main

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"time"

	"github.com/abelbrown/kittyswipe/internal/config"
	"github.com/abelbrown/kittyswipe/internal/fetch"
	"github.com/abelbrown/kittyswipe/internal/logging"
	"github.com/abelbrown/kittyswipe/internal/model"
	"github.com/abelbrown/kittyswipe/internal/preload"
	"github.com/abelbrown/kittyswipe/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// run wires the fetcher and preloader into the TUI and blocks until the
// user quits.
func run(ctx context.Context, cfg *config.Config, seed int64) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("kittyswipe needs an interactive terminal")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logging.Info("starting", "seed", seed, "endpoint", cfg.Source.Endpoint, "count", cfg.Deck.Size)

	fetcher := fetch.NewFetcher(cfg.Source.Timeout.Duration, fetch.Source{
		Endpoint:    cfg.Source.Endpoint,
		ImageURL:    cfg.Source.ImageURL,
		FallbackURL: cfg.Source.FallbackURL,
		Width:       cfg.Source.Width,
		Height:      cfg.Source.Height,
	},
		fetch.WithRand(rand.New(rand.NewSource(seed))),
		fetch.WithMinInterval(cfg.Source.MinInterval.Duration),
	)

	loader := preload.NewLoader(preload.Options{
		Workers:     cfg.Preload.Workers,
		MinInterval: cfg.Preload.MinInterval.Duration,
		ArtWidth:    cfg.Preload.ArtWidth,
		ArtHeight:   cfg.Preload.ArtHeight,
		Timeout:     cfg.Source.Timeout.Duration,
	})
	defer loader.Close()

	app := ui.NewApp(appConfig(ctx, cfg, fetcher, loader))

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logging.Error("program exited", "err", err)
		return err
	}
	return nil
}

// appConfig builds the commands the UI uses to reach the network.
func appConfig(ctx context.Context, cfg *config.Config, fetcher *fetch.Fetcher, loader *preload.Loader) ui.AppConfig {
	size := cfg.Deck.Size
	summaryTimeout := cfg.Summary.Timeout.Duration

	return ui.AppConfig{
		LoadDeck: func() tea.Cmd {
			return func() tea.Msg {
				items := fetcher.FetchBatch(ctx, size)
				// The first card is shown as soon as its image settles,
				// successfully or not.
				if err := loader.Preload(ctx, items); err != nil {
					return ui.DeckLoaded{Err: err}
				}
				return ui.DeckLoaded{Items: items}
			}
		},
		AwaitArt: func(items []model.Item) tea.Cmd {
			return func() tea.Msg {
				wctx := ctx
				if summaryTimeout > 0 {
					var cancel context.CancelFunc
					wctx, cancel = context.WithTimeout(ctx, summaryTimeout)
					defer cancel()
				}
				return ui.ArtSettled{Err: loader.WaitAll(wctx, items)}
			}
		},
		ArtFor: loader.Art,
		Reset:  loader.Reset,

		CellWidth: cfg.Gesture.CellWidth,
		ArtWidth:  cfg.Preload.ArtWidth,
		ArtHeight: cfg.Preload.ArtHeight,
	}
}
