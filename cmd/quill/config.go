package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"quill/internal/driver"
	"quill/internal/observ"
	"quill/internal/project"
)

// settings are the effective options for one command: quill.toml values
// overridden by flags that were set explicitly.
type settings struct {
	format         string
	jobs           int
	cache          bool
	cacheDir       string
	maxDiagnostics int
	timer          *observ.Timer // nil unless --timings
}

func loadManifest(cmd *cobra.Command, target string) (project.Manifest, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return project.Manifest{}, err
	}
	if path != "" {
		return project.Load(path)
	}
	m, _, err := project.Discover(target)
	return m, err
}

func resolveSettings(cmd *cobra.Command, target string) (settings, error) {
	m, err := loadManifest(cmd, target)
	if err != nil {
		return settings{}, err
	}
	s := settings{
		format:         m.Tokenize.Format,
		jobs:           m.Tokenize.Jobs,
		cache:          m.Tokenize.Cache,
		maxDiagnostics: m.Diagnostics.Max,
	}

	flags := cmd.Flags()
	if flags.Lookup("format") != nil && flags.Changed("format") {
		if s.format, err = flags.GetString("format"); err != nil {
			return settings{}, err
		}
	}
	if flags.Lookup("jobs") != nil && flags.Changed("jobs") {
		if s.jobs, err = flags.GetInt("jobs"); err != nil {
			return settings{}, err
		}
	}
	if flags.Lookup("cache") != nil && flags.Changed("cache") {
		if s.cache, err = flags.GetBool("cache"); err != nil {
			return settings{}, err
		}
	}
	if flags.Lookup("cache-dir") != nil {
		if s.cacheDir, err = flags.GetString("cache-dir"); err != nil {
			return settings{}, err
		}
	}
	if flags.Changed("max-diagnostics") {
		if s.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return settings{}, err
		}
	}

	timings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return settings{}, err
	}
	if timings {
		s.timer = observ.NewTimer()
	}

	s.format = strings.ToLower(strings.TrimSpace(s.format))
	switch s.format {
	case "pretty", "json", "yaml":
	default:
		return settings{}, fmt.Errorf("unsupported format %q (must be pretty, json or yaml)", s.format)
	}
	if s.jobs < 0 {
		return settings{}, fmt.Errorf("--jobs must not be negative, got %d", s.jobs)
	}
	if s.maxDiagnostics < 0 {
		return settings{}, fmt.Errorf("--max-diagnostics must not be negative, got %d", s.maxDiagnostics)
	}
	return s, nil
}

func (s settings) driverOptions() (driver.Options, error) {
	opts := driver.Options{
		MaxDiagnostics: s.maxDiagnostics,
		Jobs:           s.jobs,
		Timer:          s.timer,
	}
	if !s.cache {
		return opts, nil
	}
	var (
		cache *driver.TokenCache
		err   error
	)
	if s.cacheDir != "" {
		cache, err = driver.NewTokenCache(s.cacheDir)
	} else {
		cache, err = driver.OpenTokenCache("quill")
	}
	if err != nil {
		return driver.Options{}, fmt.Errorf("open token cache: %w", err)
	}
	opts.Cache = cache
	return opts, nil
}

// printTimings writes the phase summary collected under --timings.
func (s settings) printTimings(w io.Writer) {
	if s.timer == nil {
		return
	}
	fmt.Fprint(w, s.timer.Summary())
}
