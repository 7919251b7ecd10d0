// Package config loads sheetchain settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/chain"
	"gopkg.in/yaml.v3"
)

// DefaultResultsSheet is the sheet results are written to.
const DefaultResultsSheet = "Chain Results"

// Environment variables that override the file.
const (
	EnvModel       = "SHEETCHAIN_MODEL"
	EnvMaxTokens   = "SHEETCHAIN_MAX_TOKENS"
	EnvTemperature = "SHEETCHAIN_TEMPERATURE"
	EnvTimeout     = "SHEETCHAIN_TIMEOUT"
	EnvRetries     = "SHEETCHAIN_RETRIES"
	EnvBaseURL     = "ANTHROPIC_BASE_URL"
)

// Config holds the user-tunable settings.
type Config struct {
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	// Timeout bounds each completion call; zero disables it.
	Timeout time.Duration `yaml:"timeout"`
	// Retries is the number of extra attempts on transport and 5xx failures.
	Retries       int            `yaml:"retries"`
	BaseURL       string         `yaml:"base_url"`
	CellDelimiter string         `yaml:"cell_delimiter"`
	ResultsSheet  string         `yaml:"results_sheet"`
	Keywords      chain.Keywords `yaml:"keywords"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Model:         chain.DefaultModel,
		MaxTokens:     chain.DefaultMaxTokens,
		Temperature:   chain.DefaultTemperature,
		Timeout:       2 * time.Minute,
		CellDelimiter: chain.DefaultDelimiter,
		ResultsSheet:  DefaultResultsSheet,
		Keywords:      chain.DefaultKeywords(),
	}
}

// DefaultPath returns the config file under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sheetchain", "config.yaml"), nil
}

// Load reads path over the defaults and applies environment overrides. An
// empty path reads the default file, which may be absent.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	cfg.fillKeywords()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvModel)); v != "" {
		c.Model = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		c.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvMaxTokens)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxTokens, err)
		}
		c.MaxTokens = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvTemperature)); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTemperature, err)
		}
		c.Temperature = f
	}
	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v := strings.TrimSpace(os.Getenv(EnvRetries)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRetries, err)
		}
		c.Retries = n
	}
	return nil
}

// fillKeywords restores the default keywords of roles left empty.
func (c *Config) fillKeywords() {
	d := chain.DefaultKeywords()
	fill := func(dst *[]string, def []string) {
		if len(*dst) == 0 {
			*dst = def
		}
	}
	fill(&c.Keywords.Prompt, d.Prompt)
	fill(&c.Keywords.Range, d.Range)
	fill(&c.Keywords.Include, d.Include)
	fill(&c.Keywords.Model, d.Model)
	fill(&c.Keywords.MaxTokens, d.MaxTokens)
	fill(&c.Keywords.Temperature, d.Temperature)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Model) == "":
		return errors.New("config: model must not be empty")
	case c.MaxTokens <= 0:
		return fmt.Errorf("config: max_tokens must be positive, got %d", c.MaxTokens)
	case c.Temperature < 0 || c.Temperature > 1:
		return fmt.Errorf("config: temperature must be between 0 and 1, got %g", c.Temperature)
	case c.Retries < 0:
		return fmt.Errorf("config: retries must not be negative, got %d", c.Retries)
	case c.Timeout < 0:
		return fmt.Errorf("config: timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

// Defaults returns the generation defaults of the executor.
func (c Config) Defaults() chain.Defaults {
	return chain.Defaults{
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: chain.Temperature(c.Temperature),
	}
}
