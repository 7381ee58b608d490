package thor

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// TransactionsClient provides transaction submission and lookup.
type TransactionsClient struct {
	conn *conn
}

// Send submits a raw signed transaction and returns its id.
func (t *TransactionsClient) Send(ctx context.Context, raw []byte) (common.Hash, error) {
	req := struct {
		Raw hexutil.Bytes `json:"raw"`
	}{Raw: raw}

	var resp struct {
		ID common.Hash `json:"id"`
	}
	if err := t.conn.post(ctx, "/transactions", &req, &resp); err != nil {
		return common.Hash{}, fmt.Errorf("failed to send transaction: %w", err)
	}
	return resp.ID, nil
}

// Get retrieves a transaction by id, or nil while it is still unknown to the
// node.
func (t *TransactionsClient) Get(ctx context.Context, id common.Hash) (*Transaction, error) {
	var trx *Transaction
	if err := t.conn.get(ctx, "/transactions/"+id.Hex(), &trx); err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return trx, nil
}

// Receipt retrieves the receipt of a transaction. A nil receipt with nil
// error means the transaction has not been mined yet.
func (t *TransactionsClient) Receipt(ctx context.Context, id common.Hash) (*Receipt, error) {
	var receipt *Receipt
	if err := t.conn.get(ctx, "/transactions/"+id.Hex()+"/receipt", &receipt); err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}
	return receipt, nil
}
