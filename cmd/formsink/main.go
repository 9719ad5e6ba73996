// cmd/formsink/main.go
//
// Standalone form sink. Useful when the viewer runs with the in-process sink
// disabled, or when several projects share one local endpoint.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"atrium/internal/config"
	"atrium/internal/formsink"
	"atrium/internal/logbook"
)

func main() {
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

	lb, err := logbook.New(filepath.Join(cfg.LogsDir(), "sink.log"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening sink log: %v\n", err)
		os.Exit(1)
	}
	defer lb.Close()

	settings := formsink.SettingsFromConfig(cfg)
	// The standalone binary exists to run the sink, so a disabled config is
	// overridden rather than obeyed.
	settings.Enabled = true

	srv := formsink.NewServer(settings,
		formsink.WithLogger(lb),
		formsink.WithProcessor(formsink.ProcessorFunc(func(sub formsink.Submission) error {
			lb.Info("Submission %s (%d fields)", sub.ID, len(sub.Fields))
			return nil
		})),
	)
	if err := srv.Start(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting form sink: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Form sink listening on %s (POST %s)\n", srv.Addr(), srv.SubmitURL())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	fmt.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
		os.Exit(1)
	}
}
