package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/spf13/pflag"
)

// windowsConfig holds every setting of the windows command. Values come from
// defaults, then STARWINDOW_* environment variables, then explicitly set flags.
type windowsConfig struct {
	TLEFile     string
	Group       string
	CatNr       int
	SourceURL   string
	CacheDir    string
	CacheMaxAge time.Duration

	Lat float64
	Lon float64
	Alt float64

	Mode         string
	MinElevation float64
	MinDuration  time.Duration
	Start        string // RFC 3339; empty means now
	Hours        float64
	Step         time.Duration
	Workers      int
	Gaps         bool
	Metrics      bool
	MetricsAddr  string // serve /metrics here while the search runs
}

func defaultWindowsConfig() windowsConfig {
	return windowsConfig{
		CacheDir:    filepath.Join(os.TempDir(), "starwindow", "tle"),
		CacheMaxAge: 2 * time.Hour,
		Mode:        "continuous",
		Hours:       24,
		Step:        30 * time.Second,
		Workers:     runtime.NumCPU(),
	}
}

func loadWindowsConfig(logger *slog.Logger, getenv func(string) string) windowsConfig {
	cfg := defaultWindowsConfig()

	if v := getenv("STARWINDOW_TLE_FILE"); v != "" {
		cfg.TLEFile = v
	}
	if v := getenv("STARWINDOW_GROUP"); v != "" {
		cfg.Group = v
	}
	if v := getenv("STARWINDOW_CATNR"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid STARWINDOW_CATNR value, ignoring", "value", v)
		} else {
			cfg.CatNr = n
		}
	}
	if v := getenv("STARWINDOW_TLE_SOURCE_URL"); v != "" {
		cfg.SourceURL = v
	}
	if v := getenv("STARWINDOW_TLE_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := getenv("STARWINDOW_TLE_MAX_AGE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			logger.Warn("invalid STARWINDOW_TLE_MAX_AGE value, using default", "value", v, "default", cfg.CacheMaxAge.Seconds())
		} else {
			cfg.CacheMaxAge = time.Duration(n) * time.Second
		}
	}

	cfg.Lat = envFloat(logger, getenv, "STARWINDOW_LAT", cfg.Lat)
	cfg.Lon = envFloat(logger, getenv, "STARWINDOW_LON", cfg.Lon)
	cfg.Alt = envFloat(logger, getenv, "STARWINDOW_ALT", cfg.Alt)

	if v := getenv("STARWINDOW_MODE"); v != "" {
		cfg.Mode = v
	}
	cfg.MinElevation = envFloat(logger, getenv, "STARWINDOW_MIN_ELEVATION", cfg.MinElevation)
	cfg.Hours = envFloat(logger, getenv, "STARWINDOW_HOURS", cfg.Hours)

	if v := getenv("STARWINDOW_STEP"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid STARWINDOW_STEP value, using default", "value", v, "default", cfg.Step.Seconds())
		} else {
			cfg.Step = time.Duration(n) * time.Second
		}
	}
	if v := getenv("STARWINDOW_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := getenv("STARWINDOW_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid STARWINDOW_WORKERS value, using default", "value", v, "default", cfg.Workers)
		} else {
			cfg.Workers = n
		}
	}

	return cfg
}

func envFloat(logger *slog.Logger, getenv func(string) string, key string, def float64) float64 {
	v := getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logger.Warn("invalid "+key+" value, using default", "value", v, "default", def)
		return def
	}
	return f
}

// bindWindowsFlags registers the windows flags, storing parsed values in f.
func bindWindowsFlags(fs *pflag.FlagSet, f *windowsConfig) {
	d := defaultWindowsConfig()

	fs.StringVar(&f.TLEFile, "tle-file", "", "read TLEs from a local file")
	fs.StringVar(&f.Group, "group", "", "fetch a CelesTrak group such as stations")
	fs.IntVar(&f.CatNr, "catnr", 0, "fetch a single satellite by NORAD catalog number")
	fs.StringVar(&f.SourceURL, "tle-source-url", "", "CelesTrak-compatible GP endpoint")
	fs.StringVar(&f.CacheDir, "tle-cache-dir", d.CacheDir, "directory for downloaded TLEs")
	fs.DurationVar(&f.CacheMaxAge, "tle-max-age", d.CacheMaxAge, "refetch cached TLEs older than this (0 keeps them forever)")

	fs.Float64Var(&f.Lat, "lat", 0, "observer geodetic latitude in degrees")
	fs.Float64Var(&f.Lon, "lon", 0, "observer longitude in degrees, east positive")
	fs.Float64Var(&f.Alt, "alt", 0, "observer altitude in meters above the WGS-84 ellipsoid")

	fs.StringVar(&f.Mode, "mode", d.Mode, "continuous (refined edges) or discrete (grid edges)")
	fs.Float64Var(&f.MinElevation, "min-elevation", 0, "minimum elevation in degrees")
	fs.DurationVar(&f.MinDuration, "min-duration", 0, "drop windows shorter than this")
	fs.StringVar(&f.Start, "start", "", "search start in RFC 3339 (default now)")
	fs.Float64Var(&f.Hours, "hours", d.Hours, "search length in hours")
	fs.DurationVar(&f.Step, "step", d.Step, "coarse sampling step")
	fs.IntVar(&f.Workers, "workers", d.Workers, "satellites searched concurrently")
	fs.BoolVar(&f.Gaps, "gaps", false, "also report the spans between windows")
	fs.BoolVar(&f.Metrics, "metrics", false, "dump Prometheus metrics to stderr when done")
	fs.StringVar(&f.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while the search runs")
}

// applyFlags overrides cfg with every flag the user set explicitly.
func (cfg *windowsConfig) applyFlags(fs *pflag.FlagSet, f *windowsConfig) {
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("tle-file", func() { cfg.TLEFile = f.TLEFile })
	set("group", func() { cfg.Group = f.Group })
	set("catnr", func() { cfg.CatNr = f.CatNr })
	set("tle-source-url", func() { cfg.SourceURL = f.SourceURL })
	set("tle-cache-dir", func() { cfg.CacheDir = f.CacheDir })
	set("tle-max-age", func() { cfg.CacheMaxAge = f.CacheMaxAge })
	set("lat", func() { cfg.Lat = f.Lat })
	set("lon", func() { cfg.Lon = f.Lon })
	set("alt", func() { cfg.Alt = f.Alt })
	set("mode", func() { cfg.Mode = f.Mode })
	set("min-elevation", func() { cfg.MinElevation = f.MinElevation })
	set("min-duration", func() { cfg.MinDuration = f.MinDuration })
	set("start", func() { cfg.Start = f.Start })
	set("hours", func() { cfg.Hours = f.Hours })
	set("step", func() { cfg.Step = f.Step })
	set("workers", func() { cfg.Workers = f.Workers })
	set("gaps", func() { cfg.Gaps = f.Gaps })
	set("metrics", func() { cfg.Metrics = f.Metrics })
	set("metrics-addr", func() { cfg.MetricsAddr = f.MetricsAddr })
}
