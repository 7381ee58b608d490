package config

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vearnfi/wrapped-connex/types"
)

// Config holds all configuration for the client.
type Config struct {
	// NodeURL is the chain node's REST endpoint.
	NodeURL string `yaml:"node_url" env:"THOR_NODE_URL"`

	// Timeouts
	RequestTimeout time.Duration `yaml:"-" env:"THOR_REQUEST_TIMEOUT"`
	TickInterval   time.Duration `yaml:"-" env:"THOR_TICK_INTERVAL"` // best-block polling cadence behind block ticks

	// RetryMax caps transport-level retries inside the REST client.
	RetryMax int `yaml:"retry_max" env:"THOR_RETRY_MAX"`

	// WaitReceipt controls receipt confirmation behaviour.
	WaitReceipt WaitReceiptConfig `yaml:"wait_receipt"`

	// Pagination controls log-filter paging.
	Pagination PageConfig `yaml:"pagination"`

	// Tx controls how submitted transactions are provisioned.
	Tx TxConfig `yaml:"tx"`

	// Logger is optional; when set, SDK operations emit diagnostics.
	Logger *zap.Logger `yaml:"-" env:"-"`
}

// WaitReceiptConfig configures how the SDK waits for transaction receipts.
type WaitReceiptConfig struct {
	// MaxTicks bounds how many block ticks are consumed before the wait
	// fails. The budget is tick-count based, not wall-clock based.
	MaxTicks int `yaml:"max_ticks" env:"THOR_WAIT_MAX_TICKS"`
}

// PageConfig configures log-filter pagination.
type PageConfig struct {
	// PageSize is the offset/limit window applied per pagination step.
	PageSize uint64 `yaml:"page_size" env:"THOR_PAGE_SIZE"`
}

// TxConfig fixes the transaction provisioning values. Gas is a static
// allowance; the SDK performs no gas estimation.
type TxConfig struct {
	Expiration   uint32 `yaml:"expiration" env:"THOR_TX_EXPIRATION"` // blocks past the block ref
	Gas          uint64 `yaml:"gas" env:"THOR_TX_GAS"`
	GasPriceCoef uint8  `yaml:"gas_price_coef" env:"THOR_TX_GAS_PRICE_COEF"`
}

// Validate checks if the configuration is valid and populates defaults.
func (c *Config) Validate() error {
	if c.NodeURL == "" {
		return fmt.Errorf("node_url is required: %w", types.ErrInvalidConfig)
	}

	// Set defaults
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 10 * time.Second
	}
	if c.TickInterval == 0 {
		c.TickInterval = 3 * time.Second
	}
	if c.RetryMax < 0 {
		c.RetryMax = 0
	}
	ApplyWaitReceiptDefaults(&c.WaitReceipt)
	ApplyPageDefaults(&c.Pagination)
	ApplyTxDefaults(&c.Tx)

	return nil
}

// Default returns a configuration with sensible defaults for mainnet.
func Default() Config {
	return Config{
		NodeURL:        "https://mainnet.veblocks.net",
		RequestTimeout: 10 * time.Second,
		TickInterval:   3 * time.Second,
		RetryMax:       2,
		WaitReceipt:    DefaultWaitReceiptConfig(),
		Pagination:     DefaultPageConfig(),
		Tx:             DefaultTxConfig(),
	}
}

// DefaultWaitReceiptConfig returns recommended defaults for receipt waiting.
func DefaultWaitReceiptConfig() WaitReceiptConfig {
	return WaitReceiptConfig{MaxTicks: 5}
}

// DefaultPageConfig returns recommended defaults for log pagination.
func DefaultPageConfig() PageConfig {
	return PageConfig{PageSize: 20}
}

// DefaultTxConfig returns recommended defaults for transaction provisioning.
func DefaultTxConfig() TxConfig {
	return TxConfig{
		Expiration: 720,
		Gas:        200_000,
	}
}

// ApplyWaitReceiptDefaults normalizes zero or negative values using defaults.
func ApplyWaitReceiptDefaults(cfg *WaitReceiptConfig) {
	if cfg == nil {
		return
	}
	if cfg.MaxTicks <= 0 {
		cfg.MaxTicks = DefaultWaitReceiptConfig().MaxTicks
	}
}

// ApplyPageDefaults normalizes a zero page size using defaults.
func ApplyPageDefaults(cfg *PageConfig) {
	if cfg == nil {
		return
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = DefaultPageConfig().PageSize
	}
}

// ApplyTxDefaults normalizes zero provisioning values using defaults.
func ApplyTxDefaults(cfg *TxConfig) {
	if cfg == nil {
		return
	}
	def := DefaultTxConfig()
	if cfg.Expiration == 0 {
		cfg.Expiration = def.Expiration
	}
	if cfg.Gas == 0 {
		cfg.Gas = def.Gas
	}
}
