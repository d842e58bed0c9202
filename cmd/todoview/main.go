package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/nhle/todoview/internal/app"
	"github.com/nhle/todoview/internal/fetch"
	"github.com/nhle/todoview/internal/logging"
	"github.com/nhle/todoview/internal/model"
	"github.com/nhle/todoview/internal/source/placeholder"
	"github.com/nhle/todoview/internal/store"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "todoview: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("todoview", pflag.ContinueOnError)
	configPath := fs.String("config", model.DefaultConfigPath(), "path to the config file")
	endpoint := fs.String("endpoint", model.DefaultTodosEndpoint, "todos endpoint to fetch from")
	logLevel := fs.String("log-level", "info", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if fs.Changed("endpoint") {
		cfg.Source.Endpoint = *endpoint
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = *logLevel
	}

	logger, logFile, err := logging.OpenFile(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logFile.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if cfg.Metrics.Addr != "" {
		srv := serveMetrics(cfg.Metrics.Addr, registry, logger)
		defer srv.Close()
	}

	fetcher := fetch.New(
		placeholder.NewAdapter(cfg.Source.Endpoint),
		fetch.WithLogger(logger),
		fetch.WithMetrics(fetch.NewMetrics(registry)),
	)

	deps := app.Deps{
		Config:     cfg,
		ConfigPath: *configPath,
		Fetcher:    fetcher,
		Logger:     logger,
	}

	if cfg.Journal.Enabled {
		journal, err := openJournal(cfg.Journal.Path)
		if err != nil {
			logger.Warn().Err(err).Str("path", cfg.Journal.Path).Msg("running without fetch journal")
		} else {
			defer journal.Close()
			deps.Journal = journal
		}
	}

	logger.Info().Str("endpoint", cfg.Source.Endpoint).Msg("starting")

	p := tea.NewProgram(app.New(deps), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func openJournal(path string) (*store.SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}
	return store.NewSQLiteStore(path)
}

// serveMetrics exposes the registry on addr until the returned server is
// closed.
func serveMetrics(addr string, registry *prometheus.Registry, logger zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Str("addr", addr).Msg("metrics listener stopped")
		}
	}()

	return srv
}
