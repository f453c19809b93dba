package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Default values used when quill.toml is absent or leaves a key out.
const (
	DefaultFormat         = "pretty"
	DefaultMaxDiagnostics = 100
)

var (
	// ErrInvalidFormat indicates an unknown [tokenize].format value.
	ErrInvalidFormat = errors.New("invalid [tokenize].format")
	// ErrNegativeJobs indicates [tokenize].jobs < 0.
	ErrNegativeJobs = errors.New("[tokenize].jobs must not be negative")
	// ErrNegativeMax indicates [diagnostics].max < 0.
	ErrNegativeMax = errors.New("[diagnostics].max must not be negative")
)

// TokenizeConfig mirrors the [tokenize] section.
type TokenizeConfig struct {
	Format string `toml:"format"`
	Jobs   int    `toml:"jobs"` // 0 — по числу CPU
	Cache  bool   `toml:"cache"`
}

// DiagnosticsConfig mirrors the [diagnostics] section.
type DiagnosticsConfig struct {
	Max int `toml:"max"`
}

type manifestFile struct {
	Tokenize    TokenizeConfig    `toml:"tokenize"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
}

// Manifest is a loaded quill.toml with defaults filled in.
type Manifest struct {
	Path        string // пусто, если файл не найден
	Root        string
	Tokenize    TokenizeConfig
	Diagnostics DiagnosticsConfig
}

// Default returns the configuration used without a manifest.
func Default() Manifest {
	return Manifest{
		Tokenize:    TokenizeConfig{Format: DefaultFormat},
		Diagnostics: DiagnosticsConfig{Max: DefaultMaxDiagnostics},
	}
}

// Load parses the manifest at path. Keys missing from the file keep their defaults.
func Load(path string) (Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	m := Default()
	m.Path = path
	m.Root = filepath.Dir(path)

	if meta.IsDefined("tokenize", "format") {
		format := strings.ToLower(strings.TrimSpace(cfg.Tokenize.Format))
		switch format {
		case "pretty", "json", "yaml":
			m.Tokenize.Format = format
		default:
			return Manifest{}, fmt.Errorf("%s: %w %q", path, ErrInvalidFormat, cfg.Tokenize.Format)
		}
	}
	if meta.IsDefined("tokenize", "jobs") {
		if cfg.Tokenize.Jobs < 0 {
			return Manifest{}, fmt.Errorf("%s: %w", path, ErrNegativeJobs)
		}
		m.Tokenize.Jobs = cfg.Tokenize.Jobs
	}
	if meta.IsDefined("tokenize", "cache") {
		m.Tokenize.Cache = cfg.Tokenize.Cache
	}
	if meta.IsDefined("diagnostics", "max") {
		if cfg.Diagnostics.Max < 0 {
			return Manifest{}, fmt.Errorf("%s: %w", path, ErrNegativeMax)
		}
		m.Diagnostics.Max = cfg.Diagnostics.Max
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Manifest{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return m, nil
}

// Discover finds quill.toml from startDir upwards and loads it.
// Without a manifest it returns Default() and ok=false.
func Discover(startDir string) (m Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return Manifest{}, false, err
	}
	if !ok {
		return Default(), false, nil
	}
	m, err = Load(path)
	if err != nil {
		return Manifest{}, true, err
	}
	return m, true, nil
}
