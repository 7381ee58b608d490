// Package pager implements offset/limit windowed scanning of log filters:
// pages are fetched sequentially until the first empty page, with the offset
// advancing by a fixed page size.
package pager

import (
	"context"
	"fmt"

	"github.com/vearnfi/wrapped-connex/types"
)

// ApplyFunc fetches one window of rows, the half-open range
// [offset, offset+limit). The capability behind it decides the exact
// offset/limit semantics.
type ApplyFunc[T any] func(ctx context.Context, offset, limit uint64) ([]T, error)

// OnPage consumes one non-empty page of rows. The next window is not fetched
// until it returns, which gives natural backpressure.
type OnPage[T any] func(ctx context.Context, rows []T) error

// Scan repeatedly applies the filter with an advancing offset/limit window
// until an empty page signals end-of-stream, invoking onPage per non-empty
// page.
//
// The offset starts at 0 and advances by exactly pageSize after each page,
// regardless of how many rows the page actually held; a partial page does not
// terminate the scan, only a strictly empty one does. An onPage error halts
// the scan before the next window is fetched and is returned as is, like any
// apply error. The cursor is not persisted; a re-invocation restarts from
// offset 0.
func Scan[T any](ctx context.Context, apply ApplyFunc[T], onPage OnPage[T], pageSize uint64) error {
	if pageSize == 0 {
		return fmt.Errorf("page size must be positive: %w", types.ErrInvalidConfig)
	}

	for offset := uint64(0); ; offset += pageSize {
		rows, err := apply(ctx, offset, pageSize)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		if err := onPage(ctx, rows); err != nil {
			return err
		}
	}
}
