package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML file form of Config; durations are human-readable
// strings ("10s", "1m30s").
type fileConfig struct {
	NodeURL        string            `yaml:"node_url"`
	RequestTimeout string            `yaml:"request_timeout"`
	TickInterval   string            `yaml:"tick_interval"`
	RetryMax       int               `yaml:"retry_max"`
	WaitReceipt    WaitReceiptConfig `yaml:"wait_receipt"`
	Pagination     PageConfig        `yaml:"pagination"`
	Tx             TxConfig          `yaml:"tx"`
}

// LoadFile reads a YAML configuration file. Absent values stay zero and are
// filled in by Validate.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := Config{
		NodeURL:     fc.NodeURL,
		RetryMax:    fc.RetryMax,
		WaitReceipt: fc.WaitReceipt,
		Pagination:  fc.Pagination,
		Tx:          fc.Tx,
	}
	if cfg.RequestTimeout, err = parseDuration(fc.RequestTimeout); err != nil {
		return Config{}, fmt.Errorf("request_timeout: %w", err)
	}
	if cfg.TickInterval, err = parseDuration(fc.TickInterval); err != nil {
		return Config{}, fmt.Errorf("tick_interval: %w", err)
	}
	return cfg, nil
}

// FromEnv builds a configuration from THOR_* environment variables. Unset
// values stay zero and are filled in by Validate.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return d, nil
}
