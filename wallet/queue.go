package wallet

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vearnfi/wrapped-connex/tx"
	"github.com/vearnfi/wrapped-connex/types"
)

// Request is a queued transaction signing request awaiting approval. Comment
// carries the human-readable description shown to the approver.
type Request struct {
	ID        uuid.UUID
	Comment   string
	Tx        *tx.Transaction
	CreatedAt time.Time
}

// Queue holds pending signing requests for interactive approval flows, where
// building a transaction and signing it happen on different sides of a user
// decision.
type Queue struct {
	mu      sync.Mutex
	pending map[uuid.UUID]*Request
}

// NewQueue creates an empty signing queue.
func NewQueue() *Queue {
	return &Queue{pending: make(map[uuid.UUID]*Request)}
}

// Enqueue registers a transaction for approval and returns the pending
// request.
func (q *Queue) Enqueue(trx *tx.Transaction, comment string) *Request {
	req := &Request{
		ID:        uuid.New(),
		Comment:   comment,
		Tx:        trx,
		CreatedAt: time.Now(),
	}

	q.mu.Lock()
	q.pending[req.ID] = req
	q.mu.Unlock()

	return req
}

// Approve signs the pending request with signer and removes it from the
// queue.
func (q *Queue) Approve(id uuid.UUID, signer *Signer) (*tx.Transaction, error) {
	q.mu.Lock()
	req, ok := q.pending[id]
	if ok {
		delete(q.pending, id)
	}
	q.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("signing request %s: %w", id, types.ErrNotFound)
	}
	return signer.SignTransaction(req.Tx)
}

// Reject drops the pending request without signing.
func (q *Queue) Reject(id uuid.UUID) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.pending[id]; !ok {
		return fmt.Errorf("signing request %s: %w", id, types.ErrNotFound)
	}
	delete(q.pending, id)
	return nil
}

// Pending returns the currently queued requests, oldest first.
func (q *Queue) Pending() []*Request {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]*Request, 0, len(q.pending))
	for _, req := range q.pending {
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
