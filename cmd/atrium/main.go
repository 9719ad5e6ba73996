// cmd/atrium/main.go
//
// This is the entry point for the atrium viewer.
// Run `atrium` from a directory holding a portfolio.yaml (one is seeded on
// first run) and the page opens in the terminal.
//
// Flow:
// 1. Initialize the .atrium folder next to the content file
// 2. Start the local form sink when the config enables it
// 3. Launch the TUI

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"atrium/internal/config"
	"atrium/internal/formsink"
	"atrium/internal/logbook"
	"atrium/internal/tui"
)

func main() {
	// The current working directory is the project we render.
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}

	if err := config.InitAtriumDir(cwd); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .atrium directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.NewConfig(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// The in-process sink gives the contact form a working endpoint without
	// any hosted service. Failure to start is not fatal; the form simply
	// reports errors until the endpoint exists.
	sink := startSink(cfg)
	if sink != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = sink.Shutdown(ctx)
		}()
	}

	app, err := tui.NewApp(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading page: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func startSink(cfg *config.Config) *formsink.Server {
	settings := formsink.SettingsFromConfig(cfg)
	if !settings.Enabled {
		return nil
	}
	lb, err := logbook.New(cfg.LogsDir() + "/sink.log")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: sink log unavailable: %v\n", err)
		lb = nil
	}
	opts := []formsink.Option{}
	if lb != nil {
		opts = append(opts,
			formsink.WithLogger(lb),
			formsink.WithProcessor(formsink.ProcessorFunc(func(sub formsink.Submission) error {
				lb.Info("Submission %s (%d fields)", sub.ID, len(sub.Fields))
				return nil
			})),
		)
	}
	srv := formsink.NewServer(settings, opts...)
	if err := srv.Start(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: form sink not started: %v\n", err)
		return nil
	}
	return srv
}
