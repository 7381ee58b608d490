package client

import (
	"github.com/vearnfi/wrapped-connex/client/config"
	"github.com/vearnfi/wrapped-connex/wallet"
)

// Factory creates clients sharing one base configuration but bound to
// different signers. Useful for services acting on behalf of many accounts.
type Factory struct {
	baseCfg config.Config
	opts    []Option
}

// NewFactory creates a factory around cfg. opts apply to every client it
// creates.
func NewFactory(cfg config.Config, opts ...Option) *Factory {
	return &Factory{baseCfg: cfg, opts: opts}
}

// WithSigner creates a client bound to signer. extraOpts apply after the
// factory-wide options. A nil signer yields a read-only client.
func (f *Factory) WithSigner(signer *wallet.Signer, extraOpts ...Option) (*Client, error) {
	opts := make([]Option, 0, len(f.opts)+len(extraOpts))
	opts = append(opts, f.opts...)
	opts = append(opts, extraOpts...)
	return New(f.baseCfg, signer, opts...)
}
