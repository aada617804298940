package session

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Config struct {
	Prompt    string `toml:"prompt" yaml:"prompt"`
	Color     string `toml:"color" yaml:"color"`
	History   int    `toml:"history" yaml:"history"`
	CacheSize int    `toml:"cache_size" yaml:"cache_size"`
	Store     string `toml:"store" yaml:"store"`
	Banner    bool   `toml:"banner" yaml:"banner"`
}

func DefaultConfig() Config {
	return Config{
		Prompt:    "µRust # ",
		Color:     ColorAuto,
		History:   64,
		CacheSize: 256,
		Banner:    true,
	}
}

func parseTOML(r io.Reader, into *Config) error {
	_, err := toml.NewDecoder(r).Decode(into)
	return err
}

func parseYAML(r io.Reader, into *Config) error {
	err := yaml.NewDecoder(r).Decode(into)
	if err == io.EOF {
		return nil
	}
	return err
}

// LoadConfig reads a .toml, .yaml or .yml file on top of the defaults. A
// relative store path is taken relative to the config file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = parseTOML(f, &cfg)
	case ".yaml", ".yml":
		err = parseYAML(f, &cfg)
	default:
		return cfg, fmt.Errorf("config %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Store != "" && cfg.Store != ":memory:" && !filepath.IsAbs(cfg.Store) {
		cfg.Store = filepath.Clean(filepath.Join(filepath.Dir(path), cfg.Store))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	log.Info().Str("path", path).Msg("loaded config")
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be one of auto, always, never; got %q", c.Color)
	}
	if c.History < 0 {
		return fmt.Errorf("history must not be negative")
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative")
	}
	return nil
}

// UseColor decides whether output to w is colored.
func (c Config) UseColor(w io.Writer) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
