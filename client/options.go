package client

import (
	"time"

	"go.uber.org/zap"

	"github.com/vearnfi/wrapped-connex/client/config"
)

// Option overrides part of the client configuration at construction time.
type Option func(*config.Config)

// WithLogger attaches a logger; SDK operations then emit diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config.Config) {
		cfg.Logger = logger
	}
}

// WithRequestTimeout bounds every single REST request.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(cfg *config.Config) {
		cfg.RequestTimeout = timeout
	}
}

// WithTickInterval sets the best-block polling cadence behind block ticks.
func WithTickInterval(interval time.Duration) Option {
	return func(cfg *config.Config) {
		cfg.TickInterval = interval
	}
}

// WithRetryMax caps transport-level retries inside the REST client.
func WithRetryMax(n int) Option {
	return func(cfg *config.Config) {
		cfg.RetryMax = n
	}
}

// WithMaxTicks sets the default tick budget for receipt waiting.
func WithMaxTicks(n int) Option {
	return func(cfg *config.Config) {
		cfg.WaitReceipt.MaxTicks = n
	}
}

// WithDefaultPageSize sets the default offset/limit window for log scans.
func WithDefaultPageSize(size uint64) Option {
	return func(cfg *config.Config) {
		cfg.Pagination.PageSize = size
	}
}

// WithTxGas sets the static gas allowance for submitted transactions.
func WithTxGas(gas uint64) Option {
	return func(cfg *config.Config) {
		cfg.Tx.Gas = gas
	}
}

// WithTxExpiration sets how many blocks past the block ref submitted
// transactions stay valid.
func WithTxExpiration(blocks uint32) Option {
	return func(cfg *config.Config) {
		cfg.Tx.Expiration = blocks
	}
}

// WaitOption overrides receipt-waiting behaviour for a single call.
type WaitOption func(*config.WaitReceiptConfig)

// WithTickBudget overrides the tick budget for one wait. Zero makes the wait
// fail immediately without consuming any tick.
func WithTickBudget(n int) WaitOption {
	return func(cfg *config.WaitReceiptConfig) {
		cfg.MaxTicks = n
	}
}

// PageOption overrides pagination behaviour for a single scan.
type PageOption func(*config.PageConfig)

// WithPageSize overrides the offset/limit window size for one scan.
func WithPageSize(size uint64) PageOption {
	return func(cfg *config.PageConfig) {
		cfg.PageSize = size
	}
}
