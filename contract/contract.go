// Package contract binds ABI method descriptors of a deployed contract to
// typed call, clause and filter builders. Constant methods become direct
// read-only calls; mutating methods become signable clauses or
// sign-and-send operations; events become named filter builders.
package contract

import (
	"bytes"
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/vearnfi/wrapped-connex/thor"
	"github.com/vearnfi/wrapped-connex/tx"
	"github.com/vearnfi/wrapped-connex/types"
)

// Caller executes read-only clauses against chain state.
type Caller interface {
	Inspect(ctx context.Context, clauses []thor.Clause, opts ...thor.InspectOption) ([]thor.CallResult, error)
}

// Sender signs and submits clauses bundled into a transaction, tagging the
// signing request with a human-readable comment.
type Sender interface {
	SendClauses(ctx context.Context, clauses []*tx.Clause, comment string) (common.Hash, error)
}

// Option configures a Contract.
type Option func(*Contract)

// WithSender attaches the capability behind Send.
func WithSender(s Sender) Option {
	return func(c *Contract) {
		c.sender = s
	}
}

// Contract wraps a deployed contract address with its ABI.
type Contract struct {
	abi     abi.ABI
	address common.Address
	caller  Caller
	sender  Sender
}

// New parses abiJSON and binds it to the contract at address. caller serves
// constant calls; attach a Sender (WithSender) to enable Send.
func New(abiJSON []byte, address common.Address, caller Caller, opts ...Option) (*Contract, error) {
	parsed, err := abi.JSON(bytes.NewReader(abiJSON))
	if err != nil {
		return nil, fmt.Errorf("parse ABI: %w", err)
	}

	c := &Contract{
		abi:     parsed,
		address: address,
		caller:  caller,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Address returns the bound contract address.
func (c *Contract) Address() common.Address {
	return c.address
}

// Call invokes a constant (view/pure) method and returns its decoded
// outputs.
func (c *Contract) Call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	m, ok := c.abi.Methods[method]
	if !ok {
		return nil, fmt.Errorf("method %q: %w", method, types.ErrNotFound)
	}
	if !m.IsConstant() {
		return nil, fmt.Errorf("method %q is not constant; build a clause instead", method)
	}

	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %q: %w", method, err)
	}

	results, err := c.caller.Inspect(ctx, []thor.Clause{thor.NewClause(&c.address, nil, data)})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("call %q: empty inspection result", method)
	}

	out := results[0]
	if out.Reverted {
		return nil, fmt.Errorf("call %q reverted: %s: %w", method, out.VMError, types.ErrTxReverted)
	}

	decoded, err := c.abi.Unpack(method, out.Data)
	if err != nil {
		return nil, fmt.Errorf("unpack %q outputs: %w", method, err)
	}
	return decoded, nil
}

// Clause builds a signable clause invoking a mutating method with no value
// attached. Use ClauseWithValue for payable methods.
func (c *Contract) Clause(method string, args ...interface{}) (*tx.Clause, error) {
	return c.ClauseWithValue(nil, method, args...)
}

// ClauseWithValue builds a signable clause invoking a mutating method,
// transferring value along with the call.
func (c *Contract) ClauseWithValue(value *big.Int, method string, args ...interface{}) (*tx.Clause, error) {
	m, ok := c.abi.Methods[method]
	if !ok {
		return nil, fmt.Errorf("method %q: %w", method, types.ErrNotFound)
	}
	if m.IsConstant() {
		return nil, fmt.Errorf("method %q is constant; use Call instead", method)
	}
	if value != nil && value.Sign() != 0 && !m.IsPayable() {
		return nil, fmt.Errorf("method %q is not payable", method)
	}

	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %q: %w", method, err)
	}
	addr := c.address
	return tx.NewClause(&addr, value, data), nil
}

// Send builds the clause for a mutating method and immediately submits it
// through the attached Sender, tagging the signing request with comment.
func (c *Contract) Send(ctx context.Context, comment, method string, args ...interface{}) (common.Hash, error) {
	if c.sender == nil {
		return common.Hash{}, fmt.Errorf("contract %s: %w", c.address, types.ErrNoSigner)
	}
	clause, err := c.Clause(method, args...)
	if err != nil {
		return common.Hash{}, err
	}
	return c.sender.SendClauses(ctx, []*tx.Clause{clause}, comment)
}
