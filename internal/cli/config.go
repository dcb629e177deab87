package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// fileConfig holds defaults loaded from an optional YAML file. Values set
// explicitly on the command line always take precedence.
type fileConfig struct {
	Timeout        string `yaml:"timeout"`
	MaxRedirects   int    `yaml:"max_redirects"`
	Workers        int    `yaml:"workers"`
	RateLimit      int    `yaml:"rate_limit"`
	Retries        int    `yaml:"retries"`
	KeyringService string `yaml:"keyring_service"`
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "urlup", "config.yaml")
}

// loadConfig reads path, or the default location when path is empty. A
// missing default file is not an error; a missing explicit one is.
func loadConfig(path string) (*fileConfig, error) {
	explicit := path != ""
	if path == "" {
		if path = defaultConfigPath(); path == "" {
			return nil, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if explicit {
			return nil, fmt.Errorf("cannot read config file: %w", err)
		}
		return nil, nil
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// apply folds file defaults into opts for every flag the user left untouched.
func (o *options) apply(flags *pflag.FlagSet, cfg *fileConfig) {
	if cfg == nil {
		return
	}
	if cfg.Timeout != "" && !flags.Changed("timeout") {
		if d, err := time.ParseDuration(cfg.Timeout); err == nil && d > 0 {
			o.timeout = d
		}
	}
	if cfg.MaxRedirects > 0 && !flags.Changed("max-redirects") {
		o.maxChain = cfg.MaxRedirects
	}
	if cfg.Workers > 0 && !flags.Changed("workers") {
		o.workers = cfg.Workers
	}
	if cfg.RateLimit > 0 && !flags.Changed("rate-limit") {
		o.rateLimit = cfg.RateLimit
	}
	if cfg.Retries > 0 && !flags.Changed("retries") {
		o.retries = cfg.Retries
	}
	if cfg.KeyringService != "" {
		o.keyringService = cfg.KeyringService
	}
}
