package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is the prefix for environment variables. A double underscore
	// separates levels: NLCALC_SERVER__RATE_LIMIT sets server.rate_limit.
	EnvPrefix = "NLCALC_"
	Delimiter = "."
)

// defaultFiles are tried in the working directory when no path is given.
var defaultFiles = []string{"nlcalc.yaml", "nlcalc.yml", "nlcalc.json"}

// Loader merges configuration sources in priority order.
type Loader struct {
	k    *koanf.Koanf
	path string
}

func NewLoader() *Loader {
	return &Loader{k: koanf.New(Delimiter)}
}

// Load reads, in increasing priority: defaults, the config file, the
// environment and overrides. An explicit path must exist; the default
// file names are optional.
func (l *Loader) Load(path string, overrides map[string]any) (*Config, error) {
	if err := l.k.Load(confmap.Provider(defaultMap(), Delimiter), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if err := l.loadFile(path); err != nil {
			return nil, err
		}
	} else if err := l.loadDefaultFiles(); err != nil {
		return nil, err
	}

	if err := l.loadEnv(); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	if len(overrides) > 0 {
		if err := l.k.Load(confmap.Provider(overrides, Delimiter), nil); err != nil {
			return nil, fmt.Errorf("applying overrides: %w", err)
		}
	}

	var cfg Config
	if err := l.k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (l *Loader) loadFile(path string) error {
	var parser koanf.Parser
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return fmt.Errorf("unsupported config file format: %q", ext)
	}

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config file: %w", err)
	}
	if err := l.k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	l.path = path
	return nil
}

func (l *Loader) loadDefaultFiles() error {
	for _, name := range defaultFiles {
		_, err := os.Stat(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("config file: %w", err)
		}
		return l.loadFile(name)
	}
	return nil
}

func (l *Loader) loadEnv() error {
	return l.k.Load(env.Provider(EnvPrefix, Delimiter, func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", Delimiter)
	}), nil)
}

// Path returns the config file the last Load read, or "" when none was used.
func (l *Loader) Path() string {
	return l.path
}

// Load is a convenience wrapper around a fresh Loader.
func Load(path string, overrides map[string]any) (*Config, error) {
	return NewLoader().Load(path, overrides)
}
