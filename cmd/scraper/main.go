package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookscrape/config"
	"bookscrape/pipeline"
	"bookscrape/scraper"
	"bookscrape/store"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.DefaultConfig()

	configPath := flag.String("config", "scraper.json5", "Configuration file (json5; a sibling .local file overrides it)")
	baseURL := flag.String("base-url", "", "Catalog listing URL to scrape")
	databasePath := flag.String("db", "", "SQLite database path")
	timeout := flag.Duration("timeout", 0, "Upper bound on the catalog fetch")
	metricsAddr := flag.String("metrics-addr", "", "Prometheus metrics listen address (e.g. :9090)")
	exportCSV := flag.String("export-csv", "", "Write the table to a CSV file after the run")
	exportJSON := flag.String("export-json", "", "Write the table to a JSONL file after the run")
	verbose := flag.Bool("v", false, "Enable verbose logging")
	flag.Parse()

	// defaults < config file < environment < flags
	if file, err := config.ReadConfig[config.File](*configPath); err == nil {
		cfg.ApplyFile(file)
	} else if !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "read config %s: %v\n", *configPath, err)
		os.Exit(1)
	}

	if value, ok := config.EnvString("SCRAPER_BASE_URL"); ok {
		cfg.BaseURL = value
	}
	if value, ok := config.EnvString("SCRAPER_DB"); ok {
		cfg.DatabasePath = value
	}
	if value, ok := config.EnvString("SCRAPER_METRICS_ADDR"); ok {
		cfg.MetricsAddr = value
	}
	if value, ok, err := config.EnvDuration("SCRAPER_TIMEOUT"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid SCRAPER_TIMEOUT: %v\n", err)
		os.Exit(1)
	} else if ok {
		cfg.Timeout = value
	}

	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if *databasePath != "" {
		cfg.DatabasePath = *databasePath
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}
	if *verbose {
		cfg.Verbose = true
	}

	logger, level := newLogger(cfg.Verbose)
	slog.SetDefault(logger)
	setLogLoggerLevel(level.Level())

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("starting run",
		slog.String("base_url", cfg.BaseURL),
		slog.String("database", cfg.DatabasePath),
	)

	s, err := scraper.NewScraper(cfg)
	if err != nil {
		slog.Error("initialising scraper", slog.Any("error", err))
		os.Exit(1)
	}

	st, err := store.Open(store.Config{Path: cfg.DatabasePath})
	if err != nil {
		slog.Error("opening store", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("close store", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received, stopping after the current phase")
	}()

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" && s.Metrics != nil {
		metricsServer = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: promhttp.HandlerFor(s.Metrics.Registry, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		slog.Info("metrics server enabled", slog.String("addr", cfg.MetricsAddr))
	}

	startTime := time.Now()
	result, err := pipeline.New(s, st).Run(ctx)
	if err != nil {
		slog.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
	duration := time.Since(startTime)

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown failed", slog.Any("error", err))
		}
		cancel()
	}

	total, err := st.Count(context.Background())
	if err != nil {
		slog.Error("counting rows", slog.Any("error", err))
		os.Exit(1)
	}

	if *exportCSV != "" || *exportJSON != "" {
		rows, err := st.List(context.Background())
		if err != nil {
			slog.Error("listing rows", slog.Any("error", err))
			os.Exit(1)
		}
		if *exportCSV != "" {
			if err := store.ExportCSV(*exportCSV, rows); err != nil {
				slog.Error("csv export failed", slog.Any("error", err))
				os.Exit(1)
			}
			slog.Info("exported csv", slog.String("path", *exportCSV), slog.Int("rows", len(rows)))
		}
		if *exportJSON != "" {
			if err := store.ExportJSON(*exportJSON, rows); err != nil {
				slog.Error("json export failed", slog.Any("error", err))
				os.Exit(1)
			}
			slog.Info("exported json", slog.String("path", *exportJSON), slog.Int("rows", len(rows)))
		}
	}

	printSummary(result, total, duration, cfg.DatabasePath)
}

func printSummary(result pipeline.Result, total int64, duration time.Duration, databasePath string) {
	separator := "--------------------------------------------------"
	fmt.Println("\n" + separator)
	if result.Extracted == 0 {
		fmt.Println("Nothing to save")
	} else {
		fmt.Println("Scrape complete")
	}
	fmt.Printf("  Extracted:     %d\n", result.Extracted)
	fmt.Printf("  Saved:         %d\n", result.Saved)
	fmt.Printf("  Rows in table: %d\n", total)
	fmt.Printf("  Duration:      %v\n", duration)
	fmt.Printf("  Database:      %s\n", databasePath)
	fmt.Println(separator)
}

func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := &slog.LevelVar{}
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stdout) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler), level
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
