package tx

import (
	"github.com/ethereum/go-ethereum/common"
)

// Builder assembles transactions.
type Builder struct {
	body body
}

// NewBuilder creates an empty transaction builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// ChainTag binds the transaction to a chain.
func (b *Builder) ChainTag(tag byte) *Builder {
	b.body.ChainTag = tag
	return b
}

// BlockRef anchors the transaction to a recent block.
func (b *Builder) BlockRef(ref uint64) *Builder {
	b.body.BlockRef = ref
	return b
}

// Expiration sets how many blocks past the block ref the transaction stays
// valid.
func (b *Builder) Expiration(blocks uint32) *Builder {
	b.body.Expiration = blocks
	return b
}

// Clause appends a clause. Clauses execute in order within one transaction.
func (b *Builder) Clause(c *Clause) *Builder {
	b.body.Clauses = append(b.body.Clauses, c)
	return b
}

// GasPriceCoef sets the gas price coefficient (0..255).
func (b *Builder) GasPriceCoef(coef uint8) *Builder {
	b.body.GasPriceCoef = coef
	return b
}

// Gas provisions gas for the transaction.
func (b *Builder) Gas(gas uint64) *Builder {
	b.body.Gas = gas
	return b
}

// DependsOn makes execution conditional on another transaction's success.
func (b *Builder) DependsOn(id *common.Hash) *Builder {
	if id == nil {
		b.body.DependsOn = nil
	} else {
		cpy := *id
		b.body.DependsOn = &cpy
	}
	return b
}

// Nonce sets the transaction nonce.
func (b *Builder) Nonce(nonce uint64) *Builder {
	b.body.Nonce = nonce
	return b
}

// Build returns an unsigned transaction.
func (b *Builder) Build() *Transaction {
	trx := Transaction{body: b.body}
	trx.body.Clauses = make([]*Clause, len(b.body.Clauses))
	copy(trx.body.Clauses, b.body.Clauses)
	return &trx
}
