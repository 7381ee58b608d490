package thor

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
)

// AccountsClient provides account-state queries and read-only clause
// execution.
type AccountsClient struct {
	conn *conn
}

// Get retrieves the state of an address.
func (a *AccountsClient) Get(ctx context.Context, addr common.Address) (*Account, error) {
	var acc Account
	if err := a.conn.get(ctx, "/accounts/"+addr.Hex(), &acc); err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &acc, nil
}

// Balance returns the VET balance of an address.
func (a *AccountsClient) Balance(ctx context.Context, addr common.Address) (*big.Int, error) {
	acc, err := a.Get(ctx, addr)
	if err != nil {
		return nil, err
	}
	return (*big.Int)(acc.Balance), nil
}

// Energy returns the energy (VTHO) balance of an address.
func (a *AccountsClient) Energy(ctx context.Context, addr common.Address) (*big.Int, error) {
	acc, err := a.Get(ctx, addr)
	if err != nil {
		return nil, err
	}
	return (*big.Int)(acc.Energy), nil
}

// Code returns the bytecode deployed at an address, or nil when there is none.
func (a *AccountsClient) Code(ctx context.Context, addr common.Address) ([]byte, error) {
	var out struct {
		Code hexutil.Bytes `json:"code"`
	}
	if err := a.conn.get(ctx, "/accounts/"+addr.Hex()+"/code", &out); err != nil {
		return nil, fmt.Errorf("failed to get code: %w", err)
	}
	return out.Code, nil
}

// Storage returns the value of a storage slot of an address.
func (a *AccountsClient) Storage(ctx context.Context, addr common.Address, key common.Hash) (common.Hash, error) {
	var out struct {
		Value common.Hash `json:"value"`
	}
	if err := a.conn.get(ctx, "/accounts/"+addr.Hex()+"/storage/"+key.Hex(), &out); err != nil {
		return common.Hash{}, fmt.Errorf("failed to get storage: %w", err)
	}
	return out.Value, nil
}

type inspectRequest struct {
	Clauses  []Clause              `json:"clauses"`
	Caller   *common.Address       `json:"caller,omitempty"`
	Gas      uint64                `json:"gas,omitempty"`
	GasPrice *math.HexOrDecimal256 `json:"gasPrice,omitempty"`
}

// InspectOption is a functional option for Inspect.
type InspectOption func(*inspectRequest)

// WithCaller sets the calling address for clause execution.
func WithCaller(addr common.Address) InspectOption {
	return func(req *inspectRequest) {
		req.Caller = &addr
	}
}

// WithGas caps the gas available to clause execution.
func WithGas(gas uint64) InspectOption {
	return func(req *inspectRequest) {
		req.Gas = gas
	}
}

// WithGasPrice sets the gas price assumed during clause execution.
func WithGasPrice(price *big.Int) InspectOption {
	return func(req *inspectRequest) {
		req.GasPrice = (*math.HexOrDecimal256)(price)
	}
}

// Inspect executes clauses against chain state without building a
// transaction and returns one result per clause.
func (a *AccountsClient) Inspect(ctx context.Context, clauses []Clause, opts ...InspectOption) ([]CallResult, error) {
	req := inspectRequest{Clauses: clauses}
	for _, opt := range opts {
		opt(&req)
	}

	var results []CallResult
	if err := a.conn.post(ctx, "/accounts/*", &req, &results); err != nil {
		return nil, fmt.Errorf("failed to inspect clauses: %w", err)
	}
	return results, nil
}
