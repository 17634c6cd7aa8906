package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/kelseyhightower/envconfig"

	"github.com/codeGROOVE-dev/tztime/pkg/timezone"
)

// config is read from TZTIME_* environment variables, then overridden by flags.
type config struct {
	Timezone  string `envconfig:"TIMEZONE" default:"UTC"`
	Verbose   bool   `envconfig:"VERBOSE"`
	JSON      bool   `envconfig:"JSON"`
	CacheSize int    `envconfig:"CACHE_SIZE"`
	Version   bool   `ignored:"true"`
}

func loadConfig(args []string, stderr io.Writer) (*config, *flag.FlagSet, error) {
	var cfg config
	if err := envconfig.Process("tztime", &cfg); err != nil {
		return nil, nil, fmt.Errorf("reading environment: %w", err)
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = timezone.DefaultCacheSize
	}

	fs := flag.NewFlagSet("tztime", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.Timezone, "timezone", cfg.Timezone, "Default timezone for 'now' (or set TZTIME_TIMEZONE)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Enable verbose logging (or set TZTIME_VERBOSE)")
	fs.BoolVar(&cfg.JSON, "json", cfg.JSON, "Print raw JSON results (or set TZTIME_JSON)")
	fs.IntVar(&cfg.CacheSize, "cache-size", cfg.CacheSize, "Maximum cached timezones (or set TZTIME_CACHE_SIZE)")
	fs.BoolVar(&cfg.Version, "version", false, "Show version")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage:\n")
		fmt.Fprintf(stderr, "  tztime [flags] now [timezone]\n")
		fmt.Fprintf(stderr, "  tztime [flags] convert <source_timezone> <HH:MM> <target_timezone>\n")
		fmt.Fprintf(stderr, "  tztime [flags] tools\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return &cfg, fs, nil
}
