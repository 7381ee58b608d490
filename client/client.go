// Package client provides a unified facade over the chain: account queries,
// receipt waiting, log scanning, clause submission, certificate signing and
// contract binding, all behind one configured entry point.
package client

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/vearnfi/wrapped-connex/cert"
	"github.com/vearnfi/wrapped-connex/client/config"
	"github.com/vearnfi/wrapped-connex/contract"
	"github.com/vearnfi/wrapped-connex/internal/pager"
	waitreceipt "github.com/vearnfi/wrapped-connex/internal/wait-receipt"
	"github.com/vearnfi/wrapped-connex/thor"
	"github.com/vearnfi/wrapped-connex/tx"
	"github.com/vearnfi/wrapped-connex/types"
	"github.com/vearnfi/wrapped-connex/wallet"
)

// Client is the unified facade. The embedded module clients remain reachable
// through Thor for callers that need the raw REST surface.
type Client struct {
	// Thor exposes the underlying chain client.
	Thor *thor.Client

	config config.Config
	signer *wallet.Signer
	logger *zap.Logger
}

// New creates a client from cfg. signer may be nil, which leaves the client
// read-only: SendClauses, Transfer and SignCertificate fail with
// types.ErrNoSigner.
func New(cfg config.Config, signer *wallet.Signer, opts ...Option) (*Client, error) {
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	chain, err := thor.New(thor.Config{
		BaseURL:      cfg.NodeURL,
		Timeout:      cfg.RequestTimeout,
		TickInterval: cfg.TickInterval,
		RetryMax:     cfg.RetryMax,
		Logger:       cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create chain client: %w", err)
	}

	return &Client{
		Thor:   chain,
		config: cfg,
		signer: signer,
		logger: cfg.Logger,
	}, nil
}

// Signer returns the attached signer, or nil for a read-only client.
func (c *Client) Signer() *wallet.Signer {
	return c.signer
}

// Balance returns the VET balance of an address.
func (c *Client) Balance(ctx context.Context, addr common.Address) (*big.Int, error) {
	return c.Thor.Accounts.Balance(ctx, addr)
}

// Energy returns the energy (VTHO) balance of an address.
func (c *Client) Energy(ctx context.Context, addr common.Address) (*big.Int, error) {
	return c.Thor.Accounts.Energy(ctx, addr)
}

// WaitForReceipt blocks until the receipt of txID appears, the tick budget is
// exhausted (types.ErrReceiptNotFound), the transaction reverts
// (types.ErrTxReverted), or the context ends. Each tick corresponds to one
// observed block append and costs one receipt probe.
func (c *Client) WaitForReceipt(ctx context.Context, txID common.Hash, opts ...WaitOption) (*thor.Receipt, error) {
	wc := c.config.WaitReceipt
	for _, opt := range opts {
		opt(&wc)
	}
	return waitreceipt.New(c.Thor.Blocks.Ticker(), c.Thor.Transactions, wc.MaxTicks).Wait(ctx, txID)
}

// FetchEvents scans every event row matching filter, invoking onPage per
// non-empty page. The scan walks forward in fixed offset/limit windows and
// stops at the first empty page, or when onPage fails.
func (c *Client) FetchEvents(ctx context.Context, filter *thor.EventFilter, onPage func(ctx context.Context, rows []thor.EventLog) error, opts ...PageOption) error {
	pc := c.config.Pagination
	for _, opt := range opts {
		opt(&pc)
	}
	apply := func(ctx context.Context, offset, limit uint64) ([]thor.EventLog, error) {
		return c.Thor.Logs.FilterEvents(ctx, filter, offset, limit)
	}
	return pager.Scan(ctx, apply, onPage, pc.PageSize)
}

// FetchTransfers scans every VET transfer row matching filter, invoking
// onPage per non-empty page, with the same windowing as FetchEvents.
func (c *Client) FetchTransfers(ctx context.Context, filter *thor.TransferFilter, onPage func(ctx context.Context, rows []thor.TransferLog) error, opts ...PageOption) error {
	pc := c.config.Pagination
	for _, opt := range opts {
		opt(&pc)
	}
	apply := func(ctx context.Context, offset, limit uint64) ([]thor.TransferLog, error) {
		return c.Thor.Logs.FilterTransfers(ctx, filter, offset, limit)
	}
	return pager.Scan(ctx, apply, onPage, pc.PageSize)
}

// SendClauses bundles clauses into one transaction, provisions it from the
// configured tx settings, signs it with the attached signer and submits it.
// The comment tags the operation in diagnostics only; it is not part of the
// transaction.
func (c *Client) SendClauses(ctx context.Context, clauses []*tx.Clause, comment string) (common.Hash, error) {
	if c.signer == nil {
		return common.Hash{}, fmt.Errorf("client is read-only: %w", types.ErrNoSigner)
	}
	if len(clauses) == 0 {
		return common.Hash{}, fmt.Errorf("no clauses to send: %w", types.ErrInvalidConfig)
	}

	chainTag, err := c.Thor.ChainTag(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	best, err := c.Thor.Blocks.Best(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("fetch best block: %w", err)
	}
	nonce, err := randomNonce()
	if err != nil {
		return common.Hash{}, err
	}

	builder := tx.NewBuilder().
		ChainTag(chainTag).
		BlockRef(tx.BlockRef(best.ID)).
		Expiration(c.config.Tx.Expiration).
		GasPriceCoef(c.config.Tx.GasPriceCoef).
		Gas(c.config.Tx.Gas).
		Nonce(nonce)
	for _, clause := range clauses {
		builder.Clause(clause)
	}

	signed, err := c.signer.SignTransaction(builder.Build())
	if err != nil {
		return common.Hash{}, fmt.Errorf("sign transaction: %w", err)
	}
	raw, err := signed.Encode()
	if err != nil {
		return common.Hash{}, err
	}

	id, err := c.Thor.Transactions.Send(ctx, raw)
	if err != nil {
		return common.Hash{}, err
	}
	c.logger.Debug("transaction submitted",
		zap.Stringer("id", id),
		zap.Int("clauses", len(clauses)),
		zap.String("comment", comment),
	)
	return id, nil
}

// Transfer sends VET to an address and returns the transaction id.
func (c *Client) Transfer(ctx context.Context, to common.Address, amount *big.Int) (common.Hash, error) {
	clause := tx.NewClause(&to, amount, nil)
	return c.SendClauses(ctx, []*tx.Clause{clause}, "transfer VET")
}

// SignCertificate signs an identification or agreement certificate with the
// attached signer and returns the signed copy.
func (c *Client) SignCertificate(crt *cert.Certificate) (*cert.Certificate, error) {
	if c.signer == nil {
		return nil, fmt.Errorf("client is read-only: %w", types.ErrNoSigner)
	}
	return c.signer.SignCertificate(crt)
}

// Contract binds abiJSON to the contract deployed at address. The client
// serves its constant calls; Send is wired through SendClauses when a signer
// is attached.
func (c *Client) Contract(abiJSON []byte, address common.Address) (*contract.Contract, error) {
	opts := []contract.Option{}
	if c.signer != nil {
		opts = append(opts, contract.WithSender(c))
	}
	return contract.New(abiJSON, address, c.Thor.Accounts, opts...)
}

// Close releases the resources held by the client.
func (c *Client) Close() error {
	return c.Thor.Close()
}

func randomNonce() (uint64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("generate nonce: %w", err)
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}
