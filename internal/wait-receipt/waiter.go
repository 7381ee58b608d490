// Package waitreceipt implements tick-budgeted waiting for transaction
// receipts: one read-only receipt probe per observed block, bounded by a
// maximum tick count.
package waitreceipt

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/vearnfi/wrapped-connex/thor"
	"github.com/vearnfi/wrapped-connex/types"
)

// Ticker reports block appends. Next suspends until one happens.
type Ticker interface {
	Next(ctx context.Context) error
}

// Querier looks up the receipt of a transaction. A nil receipt with nil
// error means the transaction has not been mined yet.
type Querier interface {
	Receipt(ctx context.Context, id common.Hash) (*thor.Receipt, error)
}

// Waiter polls for a receipt once per chain tick, bounded by a tick budget.
type Waiter struct {
	ticker   Ticker
	querier  Querier
	maxTicks int
}

// New creates a waiter over the injected ticker and querier. maxTicks bounds
// how many ticks are consumed before giving up; zero means fail immediately.
func New(ticker Ticker, querier Querier, maxTicks int) *Waiter {
	return &Waiter{ticker: ticker, querier: querier, maxTicks: maxTicks}
}

// Wait blocks until the receipt of txID appears, the tick budget is
// exhausted, or the context ends.
//
// The budget is tested before each tick is consumed, so exactly maxTicks
// ticks are consumed in the worst case before failing with
// types.ErrReceiptNotFound. A reverted receipt is terminal and fails with
// types.ErrTxReverted at the tick it is observed. Ticker and querier errors
// propagate unchanged; nothing is retried.
func (w *Waiter) Wait(ctx context.Context, txID common.Hash) (*thor.Receipt, error) {
	for ticks := 0; ; ticks++ {
		if ticks >= w.maxTicks {
			return nil, fmt.Errorf("receipt for %s after %d ticks: %w", txID, ticks, types.ErrReceiptNotFound)
		}

		if err := w.ticker.Next(ctx); err != nil {
			return nil, err
		}

		receipt, err := w.querier.Receipt(ctx, txID)
		if err != nil {
			return nil, err
		}
		if receipt == nil {
			continue
		}
		if receipt.Reverted {
			return nil, fmt.Errorf("transaction %s: %w", txID, types.ErrTxReverted)
		}
		return receipt, nil
	}
}
