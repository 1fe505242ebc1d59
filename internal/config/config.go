package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/delaneyj/signalgraph/i18n"
	"gopkg.in/yaml.v3"
)

// FileNames are looked up in order by LoadOptional.
var FileNames = []string{"signalgraph.yaml", "signalgraph.yml", "signalgraph.toml"}

// Config represents the optional signalgraph.yaml configuration.
type Config struct {
	// Resources are resource files or directories, loaded in order.
	Resources []string `yaml:"resources" toml:"resources"`
	Locale    string   `yaml:"locale" toml:"locale"`
	Namespace string   `yaml:"namespace" toml:"namespace"`
	// Plural is "english" (default) or "cldr".
	Plural   string `yaml:"plural" toml:"plural"`
	LogLevel string `yaml:"log_level" toml:"log_level"`
	// MetricsAddr serves Prometheus metrics when set, e.g. ":9090".
	MetricsAddr string `yaml:"metrics_addr" toml:"metrics_addr"`
}

func Default() *Config {
	return &Config{
		Locale:    "en",
		Namespace: i18n.DefaultNamespace,
		Plural:    "english",
		LogLevel:  "info",
	}
}

// Load reads a YAML or TOML config file. Relative resource paths are
// resolved against the directory of the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i, r := range cfg.Resources {
		if !filepath.IsAbs(r) {
			cfg.Resources[i] = filepath.Join(dir, r)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional loads the first of FileNames found in dir, or the defaults
// when there is none.
func LoadOptional(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		return Load(path)
	}
	return Default(), nil
}

func (c *Config) Validate() error {
	if _, err := c.PluralResolver(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Locale) == "" {
		return errors.New("locale must not be empty")
	}
	return nil
}

func (c *Config) PluralResolver() (i18n.PluralResolver, error) {
	switch strings.ToLower(strings.TrimSpace(c.Plural)) {
	case "", "english":
		return i18n.EnglishPlural, nil
	case "cldr":
		return i18n.CLDRPlural, nil
	default:
		return nil, fmt.Errorf("unknown plural rules %q", c.Plural)
	}
}

func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return level, nil
}

// Logger returns a text logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Catalog builds a catalog with the configured plural rules and loads every
// configured resource.
func (c *Config) Catalog(logger *slog.Logger, opts ...i18n.Option) (*i18n.Catalog, error) {
	resolver, err := c.PluralResolver()
	if err != nil {
		return nil, err
	}
	opts = append([]i18n.Option{i18n.WithPluralResolver(resolver), i18n.WithLogger(logger)}, opts...)
	cat := i18n.New(opts...)
	if err := c.LoadResources(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// LoadResources loads the configured files and directories into cat.
func (c *Config) LoadResources(cat *i18n.Catalog) error {
	for _, r := range c.Resources {
		info, err := os.Stat(r)
		if err != nil {
			return fmt.Errorf("resource %s: %w", r, err)
		}
		if info.IsDir() {
			err = cat.LoadDir(r)
		} else {
			err = cat.LoadFile(r)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
