package client

import "github.com/vearnfi/wrapped-connex/client/config"

// Re-exported configuration types, so most callers only import this package.
type (
	Config            = config.Config
	WaitReceiptConfig = config.WaitReceiptConfig
	PageConfig        = config.PageConfig
	TxConfig          = config.TxConfig
)

// DefaultConfig returns a configuration with sensible defaults for mainnet.
func DefaultConfig() Config {
	return config.Default()
}
