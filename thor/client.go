// Package thor provides typed access to the REST surface of a Thor node:
// account state, blocks, transactions, receipts and filtered logs.
package thor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Config for the chain client.
type Config struct {
	// BaseURL is the node's REST endpoint, e.g. https://mainnet.veblocks.net.
	BaseURL string

	// Timeout bounds every single REST request.
	Timeout time.Duration

	// TickInterval is the best-block polling cadence behind Ticker.
	TickInterval time.Duration

	// RetryMax caps transport-level retries inside the HTTP client.
	RetryMax int

	// Logger is optional; when set, requests emit debug diagnostics.
	Logger *zap.Logger
}

// Client provides access to chain operations.
type Client struct {
	// Module-specific clients
	Accounts     *AccountsClient
	Blocks       *BlocksClient
	Transactions *TransactionsClient
	Logs         *LogsClient

	// Internal
	conn   *conn
	config Config

	mu       sync.Mutex
	chainTag byte
}

// New creates a new chain client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 3 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	conn := newConn(cfg.BaseURL, cfg.Timeout, cfg.RetryMax, cfg.Logger)

	return &Client{
		Accounts:     &AccountsClient{conn: conn},
		Blocks:       &BlocksClient{conn: conn, tickInterval: cfg.TickInterval},
		Transactions: &TransactionsClient{conn: conn},
		Logs:         &LogsClient{conn: conn},
		conn:         conn,
		config:       cfg,
	}, nil
}

// ChainTag returns the chain tag, derived from the genesis block ID and
// cached after the first lookup.
func (c *Client) ChainTag(ctx context.Context) (byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.chainTag != 0 {
		return c.chainTag, nil
	}
	genesis, err := c.Blocks.ByNumber(ctx, 0)
	if err != nil {
		return 0, fmt.Errorf("fetch genesis block: %w", err)
	}
	c.chainTag = genesis.ID[31]
	return c.chainTag, nil
}

// Close releases idle connections held by the REST transport.
func (c *Client) Close() error {
	c.conn.close()
	return nil
}
