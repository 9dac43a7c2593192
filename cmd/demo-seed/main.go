package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/livescores/internal/demoseed"
	"github.com/okian/livescores/pkg/logger"
)

// Default configuration constants.
const (
	defaultTimeout    = 10 * time.Second
	defaultRunTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9080", "Base URL of the service")
		leagues = flag.String("leagues", "", "Comma separated league codes (default: all)")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "Log every binding")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		demoseed.ShowHelp(os.Stdout)
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	parsed, err := demoseed.ParseLeagues(*leagues)
	if err != nil {
		os.Stderr.WriteString("invalid -leagues: " + err.Error() + "\n")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	config := &demoseed.Config{
		BaseURL: *baseURL,
		Leagues: parsed,
		Timeout: *timeout,
		Workers: runtime.NumCPU(),
		Verbose: *verbose,
	}

	if _, err := demoseed.Run(ctx, config, os.Stdout); err != nil {
		os.Stderr.WriteString("demo seed failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
