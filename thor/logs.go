package thor

import (
	"context"
	"fmt"
)

// LogsClient provides filtered access to event and transfer logs.
type LogsClient struct {
	conn *conn
}

// FilterEvents applies filter over the window [offset, offset+limit) and
// returns the matching rows. The node decides the exact ordering semantics of
// the window (block height, then log index).
func (l *LogsClient) FilterEvents(ctx context.Context, filter *EventFilter, offset, limit uint64) ([]EventLog, error) {
	if filter == nil {
		filter = &EventFilter{}
	}
	req := *filter
	req.Options = &FilterOptions{Offset: offset, Limit: limit}

	var rows []EventLog
	if err := l.conn.post(ctx, "/logs/event", &req, &rows); err != nil {
		return nil, fmt.Errorf("failed to filter events: %w", err)
	}
	return rows, nil
}

// FilterTransfers applies filter over the window [offset, offset+limit) and
// returns the matching VET transfers.
func (l *LogsClient) FilterTransfers(ctx context.Context, filter *TransferFilter, offset, limit uint64) ([]TransferLog, error) {
	if filter == nil {
		filter = &TransferFilter{}
	}
	req := *filter
	req.Options = &FilterOptions{Offset: offset, Limit: limit}

	var rows []TransferLog
	if err := l.conn.post(ctx, "/logs/transfer", &req, &rows); err != nil {
		return nil, fmt.Errorf("failed to filter transfers: %w", err)
	}
	return rows, nil
}
