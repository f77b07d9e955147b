// Package config loads pydocs settings from a TOML or YAML file.
//
// A [Config] always starts from [Default]; a file only overrides the keys it
// sets. The loaded value is passed explicitly to the components that need it.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/pydocs/pkg/errors"
)

// AppName is used for XDG directory paths and the default User-Agent.
const AppName = "pydocs"

// Default values.
const (
	DefaultDocsURL   = "https://docs.python.org/3/"
	DefaultPEPsURL   = "https://peps.python.org/"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "pydocs/1.0 (+https://github.com/matzehuels/pydocs)"
)

// Config is the complete runtime configuration.
type Config struct {
	URLs  URLs  `toml:"urls" yaml:"urls"`
	Paths Paths `toml:"paths" yaml:"paths"`
	Cache Cache `toml:"cache" yaml:"cache"`
	HTTP  HTTP  `toml:"http" yaml:"http"`
	Log   Log   `toml:"log" yaml:"log"`
}

// URLs are the two crawl roots.
type URLs struct {
	Docs string `toml:"docs" yaml:"docs"`
	PEPs string `toml:"peps" yaml:"peps"`
}

// Paths locate the output tree. Relative Downloads and Results are joined
// onto BaseDir.
type Paths struct {
	BaseDir   string `toml:"base_dir" yaml:"base_dir"`
	Downloads string `toml:"downloads" yaml:"downloads"`
	Results   string `toml:"results" yaml:"results"`
}

// Cache selects the response store.
type Cache struct {
	Backend  string        `toml:"backend" yaml:"backend"`
	Dir      string        `toml:"dir" yaml:"dir"`
	TTL      time.Duration `toml:"ttl" yaml:"ttl"`
	RedisURL string        `toml:"redis_url" yaml:"redis_url"`
}

// HTTP tunes the fetcher.
type HTTP struct {
	Timeout       time.Duration `toml:"timeout" yaml:"timeout"`
	UserAgent     string        `toml:"user_agent" yaml:"user_agent"`
	Retries       int           `toml:"retries" yaml:"retries"`
	RespectRobots bool          `toml:"respect_robots" yaml:"respect_robots"`
}

// Log configures an optional log file alongside stderr.
type Log struct {
	File string `toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		URLs: URLs{
			Docs: DefaultDocsURL,
			PEPs: DefaultPEPsURL,
		},
		Paths: Paths{
			BaseDir:   ".",
			Downloads: "downloads",
			Results:   "results",
		},
		Cache: Cache{
			Backend: "sqlite",
			Dir:     filepath.Join(xdg.CacheHome, AppName),
		},
		HTTP: HTTP{
			Timeout:   DefaultTimeout,
			UserAgent: DefaultUserAgent,
		},
	}
}

// Load reads path over the defaults. An empty path searches the XDG config
// directories for pydocs/config.{toml,yaml,yml} and returns the defaults
// when none exists.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = Find()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format: %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find returns the first config file in the XDG config search path, or "".
func Find() string {
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		if p, err := xdg.SearchConfigFile(filepath.Join(AppName, name)); err == nil {
			return p
		}
	}
	return ""
}

// Validate checks values that would otherwise fail late, mid-crawl.
func (c *Config) Validate() error {
	for _, u := range []string{c.URLs.Docs, c.URLs.PEPs} {
		if err := errors.ValidateURL(u); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "urls")
		}
	}
	for _, p := range []string{c.Paths.BaseDir, c.Paths.Downloads, c.Paths.Results} {
		if err := errors.ValidatePath(p); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "paths")
		}
	}
	if c.HTTP.Timeout <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "http.timeout must be positive")
	}
	if c.HTTP.Retries < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "http.retries cannot be negative")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}
	return nil
}

// DownloadsDir is the resolved downloads directory.
func (c *Config) DownloadsDir() string {
	return c.resolve(c.Paths.Downloads)
}

// ResultsDir is the resolved results directory.
func (c *Config) ResultsDir() string {
	return c.resolve(c.Paths.Results)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Paths.BaseDir, p)
}
