package waitreceipt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/vearnfi/wrapped-connex/thor"
	"github.com/vearnfi/wrapped-connex/types"
)

type stubTicker struct {
	ticks int
	err   error
}

func (s *stubTicker) Next(ctx context.Context) error {
	if s.err != nil {
		return s.err
	}
	s.ticks++
	return nil
}

type receiptStep struct {
	receipt *thor.Receipt
	err     error
}

type stubQuerier struct {
	steps []receiptStep
	calls int
}

func (s *stubQuerier) Receipt(ctx context.Context, id common.Hash) (*thor.Receipt, error) {
	idx := s.calls
	if idx >= len(s.steps) {
		idx = len(s.steps) - 1
	}
	s.calls++
	if idx < 0 {
		return nil, nil
	}
	step := s.steps[idx]
	return step.receipt, step.err
}

func TestWaitZeroBudgetFailsWithoutTick(t *testing.T) {
	ticker := &stubTicker{}
	querier := &stubQuerier{}

	w := New(ticker, querier, 0)
	_, err := w.Wait(context.Background(), common.Hash{0x01})
	if !errors.Is(err, types.ErrReceiptNotFound) {
		t.Fatalf("want ErrReceiptNotFound; got %v", err)
	}
	if ticker.ticks != 0 {
		t.Fatalf("no tick should be consumed; got %d", ticker.ticks)
	}
	if querier.calls != 0 {
		t.Fatalf("no receipt query should be made; got %d", querier.calls)
	}
}

func TestWaitExhaustsBudget(t *testing.T) {
	ticker := &stubTicker{}
	querier := &stubQuerier{} // receipt never appears

	w := New(ticker, querier, 5)
	_, err := w.Wait(context.Background(), common.Hash{0x01})
	if !errors.Is(err, types.ErrReceiptNotFound) {
		t.Fatalf("want ErrReceiptNotFound; got %v", err)
	}
	if ticker.ticks != 5 {
		t.Fatalf("exactly 5 ticks should be consumed; got %d", ticker.ticks)
	}
	if querier.calls != 5 {
		t.Fatalf("exactly 5 receipt queries should be made; got %d", querier.calls)
	}
}

func TestWaitRevertedStopsEarly(t *testing.T) {
	ticker := &stubTicker{}
	querier := &stubQuerier{steps: []receiptStep{
		{},
		{receipt: &thor.Receipt{Reverted: true}},
	}}

	w := New(ticker, querier, 5)
	_, err := w.Wait(context.Background(), common.Hash{0x01})
	if !errors.Is(err, types.ErrTxReverted) {
		t.Fatalf("want ErrTxReverted; got %v", err)
	}
	if ticker.ticks != 2 {
		t.Fatalf("reversion on tick 2 should consume 2 ticks; got %d", ticker.ticks)
	}
}

func TestWaitSucceeds(t *testing.T) {
	want := &thor.Receipt{GasUsed: 21000}
	ticker := &stubTicker{}
	querier := &stubQuerier{steps: []receiptStep{
		{},
		{},
		{receipt: want},
	}}

	w := New(ticker, querier, 5)
	got, err := w.Wait(context.Background(), common.Hash{0x01})
	if err != nil {
		t.Fatalf("wait error: %v", err)
	}
	if got != want {
		t.Fatalf("unexpected receipt: %+v", got)
	}
	if ticker.ticks != 3 {
		t.Fatalf("receipt on tick 3 should consume 3 ticks; got %d", ticker.ticks)
	}
}

func TestWaitPropagatesTickerError(t *testing.T) {
	boom := errors.New("node unreachable")
	w := New(&stubTicker{err: boom}, &stubQuerier{}, 5)

	_, err := w.Wait(context.Background(), common.Hash{0x01})
	if !errors.Is(err, boom) {
		t.Fatalf("ticker error should propagate unchanged; got %v", err)
	}
}

func TestWaitPropagatesQuerierError(t *testing.T) {
	boom := errors.New("bad gateway")
	ticker := &stubTicker{}
	querier := &stubQuerier{steps: []receiptStep{{err: boom}}}

	w := New(ticker, querier, 5)
	_, err := w.Wait(context.Background(), common.Hash{0x01})
	if !errors.Is(err, boom) {
		t.Fatalf("querier error should propagate unchanged; got %v", err)
	}
	if ticker.ticks != 1 {
		t.Fatalf("failure on first probe should consume 1 tick; got %d", ticker.ticks)
	}
}

type blockedTicker struct{}

func (blockedTicker) Next(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestWaitHonorsContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	w := New(blockedTicker{}, &stubQuerier{}, 5)
	_, err := w.Wait(ctx, common.Hash{0x01})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want deadline exceeded; got %v", err)
	}
}
