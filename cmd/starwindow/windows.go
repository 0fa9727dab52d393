package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/star/starwindow/internal/metrics"
	"github.com/star/starwindow/internal/tle"
	"github.com/star/starwindow/internal/transform"
	"github.com/star/starwindow/internal/visibility"
)

func newWindowsCmd() *cobra.Command {
	var flags windowsConfig

	cmd := &cobra.Command{
		Use:   "windows",
		Short: "Compute satellite visibility windows for a ground observer",
		Example: `  starwindow windows --group stations --lat 40.7128 --lon -74.006 --hours 48
  starwindow windows --tle-file iss.txt --lat 51.5 --lon -0.12 --mode discrete --gaps`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd, os.Getenv)
			cfg := loadWindowsConfig(logger, os.Getenv)
			cfg.applyFlags(cmd.Flags(), &flags)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runWindows(ctx, cmd, logger, cfg)
		},
	}
	bindWindowsFlags(cmd.Flags(), &flags)
	return cmd
}

func runWindows(ctx context.Context, cmd *cobra.Command, logger *slog.Logger, cfg windowsConfig) error {
	mode, err := visibility.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}
	if cfg.Lat < -90 || cfg.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", cfg.Lat)
	}
	if cfg.Hours <= 0 {
		return fmt.Errorf("hours must be positive, got %v", cfg.Hours)
	}

	start := time.Now().UTC()
	if cfg.Start != "" {
		start, err = time.Parse(time.RFC3339, cfg.Start)
		if err != nil {
			return fmt.Errorf("parsing start time: %w", err)
		}
	}

	entries, err := loadEntries(ctx, logger, cfg)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return errors.New("no valid TLE entries found")
	}
	logger.Info("loaded TLE data", "count", len(entries))

	var m *metrics.Metrics
	if cfg.Metrics || cfg.MetricsAddr != "" {
		m = metrics.New()
	}
	if cfg.MetricsAddr != "" {
		addr, stop, err := serveMetrics(cfg.MetricsAddr, m, logger)
		if err != nil {
			return err
		}
		defer stop()
		logger.Info("serving metrics", "addr", addr.String())
	}

	finder := visibility.NewFinder(logger, m)
	results, err := finder.Windows(ctx, visibility.Request{
		Observer:     transform.NewObserver(cfg.Lat, cfg.Lon, cfg.Alt),
		Entries:      entries,
		Start:        start,
		End:          start.Add(time.Duration(cfg.Hours * float64(time.Hour))),
		Step:         cfg.Step,
		MinElevation: cfg.MinElevation,
		MinDuration:  cfg.MinDuration,
		Mode:         mode,
		Workers:      cfg.Workers,
		Gaps:         cfg.Gaps,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	if cfg.Metrics {
		if err := m.WriteText(cmd.ErrOrStderr()); err != nil {
			return err
		}
	}
	return nil
}

// loadEntries reads TLEs from the configured file, or from the cache with a
// fetch on miss.
func loadEntries(ctx context.Context, logger *slog.Logger, cfg windowsConfig) ([]tle.Entry, error) {
	if cfg.TLEFile != "" {
		f, err := os.Open(cfg.TLEFile)
		if err != nil {
			return nil, fmt.Errorf("opening TLE file: %w", err)
		}
		defer f.Close()
		return tle.Parse(f, logger)
	}

	var name string
	var fetch func(*tle.Fetcher) ([]byte, error)
	switch {
	case cfg.Group != "":
		name = "group-" + cfg.Group
		fetch = func(f *tle.Fetcher) ([]byte, error) { return f.FetchGroup(ctx, cfg.Group) }
	case cfg.CatNr > 0:
		name = "catnr-" + strconv.Itoa(cfg.CatNr)
		fetch = func(f *tle.Fetcher) ([]byte, error) { return f.FetchCatalog(ctx, cfg.CatNr) }
	default:
		return nil, errors.New("one of --tle-file, --group or --catnr is required")
	}

	cache := tle.NewCache(cfg.CacheDir, cfg.CacheMaxAge)
	data, ts, err := cache.Load(name, time.Now())
	switch {
	case err == nil:
		logger.Info("using cached TLE data", "source", name, "cached_at", ts.Format(time.RFC3339))
	case errors.Is(err, tle.ErrCacheMiss):
		fetcher := tle.NewFetcher(cfg.SourceURL, logger)
		data, err = fetch(fetcher)
		if err != nil {
			return nil, err
		}
		if err := cache.Write(name, data); err != nil {
			logger.Warn("failed to cache TLE data", "source", name, "error", err)
		}
		logger.Info("fetched TLE data", "source", name, "url", fetcher.BaseURL(), "bytes", len(data))
	default:
		return nil, err
	}

	return tle.Parse(bytes.NewReader(data), logger)
}

// serveMetrics exposes m at /metrics on addr. The returned function shuts the
// server down.
func serveMetrics(addr string, m *metrics.Metrics, logger *slog.Logger) (net.Addr, func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("listening for metrics: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", "error", err)
		}
	}()

	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("metrics server shutdown error", "error", err)
		}
		<-done
	}
	return ln.Addr(), stop, nil
}
