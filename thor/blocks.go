package thor

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// BlocksClient provides block queries and tick notifications.
type BlocksClient struct {
	conn         *conn
	tickInterval time.Duration
}

// Best retrieves the current chain head.
func (b *BlocksClient) Best(ctx context.Context) (*Block, error) {
	return b.byRevision(ctx, "best")
}

// ByNumber retrieves a block by height.
func (b *BlocksClient) ByNumber(ctx context.Context, num uint32) (*Block, error) {
	return b.byRevision(ctx, strconv.FormatUint(uint64(num), 10))
}

// ByID retrieves a block by its ID.
func (b *BlocksClient) ByID(ctx context.Context, id common.Hash) (*Block, error) {
	return b.byRevision(ctx, id.Hex())
}

func (b *BlocksClient) byRevision(ctx context.Context, revision string) (*Block, error) {
	var block *Block
	if err := b.conn.get(ctx, "/blocks/"+revision, &block); err != nil {
		return nil, fmt.Errorf("failed to get block: %w", err)
	}
	if block == nil {
		return nil, fmt.Errorf("block %s: not found", revision)
	}
	return block, nil
}

// Ticker returns a fresh ticker observing block appends. Each ticker owns its
// own head baseline; concurrent tickers do not interact.
func (b *BlocksClient) Ticker() *Ticker {
	return &Ticker{blocks: b, interval: b.tickInterval}
}

// Ticker reports the appearance of new blocks. A tick carries no payload
// beyond "the chain advanced by at least one block".
type Ticker struct {
	blocks   *BlocksClient
	interval time.Duration
	head     uint32
	primed   bool
}

// Next suspends until a block newer than the last observed head is appended,
// or the context ends. The first call baselines the head before waiting.
// Query errors propagate unchanged.
func (t *Ticker) Next(ctx context.Context) error {
	for {
		best, err := t.blocks.Best(ctx)
		if err != nil {
			return err
		}
		if !t.primed {
			t.primed = true
			t.head = best.Number
		} else if best.Number > t.head {
			t.head = best.Number
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sleepCtx(ctx, t.interval):
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) <-chan struct{} {
	ch := make(chan struct{})
	if d <= 0 {
		close(ch)
		return ch
	}
	go func() {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
		case <-t.C:
		}
		close(ch)
	}()
	return ch
}
