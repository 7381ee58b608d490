// Package tx models chain transactions: clause bundling, RLP encoding,
// signing hashes and id derivation. Gas values are caller-supplied; the
// package performs no estimation.
package tx

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vearnfi/wrapped-connex/internal/hash"
	"github.com/vearnfi/wrapped-connex/thor"
	"github.com/vearnfi/wrapped-connex/types"
)

// Clause is a single unit of on-chain instruction: call target (nil creates
// a contract), transferred value and payload.
type Clause struct {
	To    *common.Address `rlp:"nil"`
	Value *big.Int
	Data  []byte
}

// NewClause builds a clause. A nil value is normalized to zero.
func NewClause(to *common.Address, value *big.Int, data []byte) *Clause {
	if value == nil {
		value = new(big.Int)
	}
	return &Clause{To: to, Value: value, Data: data}
}

// AsCall converts the clause to its wire form for read-only inspection.
func (c *Clause) AsCall() thor.Clause {
	return thor.NewClause(c.To, c.Value, c.Data)
}

type body struct {
	ChainTag     byte
	BlockRef     uint64
	Expiration   uint32
	Clauses      []*Clause
	GasPriceCoef uint8
	Gas          uint64
	DependsOn    *common.Hash `rlp:"nil"`
	Nonce        uint64
}

// Transaction is an immutable transaction. Build one with Builder, attach a
// signature with WithSignature.
type Transaction struct {
	body      body
	signature []byte
}

// BlockRef derives a transaction block reference from a block ID: its first
// eight bytes.
func BlockRef(id common.Hash) uint64 {
	return binary.BigEndian.Uint64(id[:8])
}

// ChainTag returns the chain tag the transaction is bound to.
func (t *Transaction) ChainTag() byte { return t.body.ChainTag }

// Clauses returns a copy of the transaction's clauses.
func (t *Transaction) Clauses() []*Clause {
	out := make([]*Clause, len(t.body.Clauses))
	copy(out, t.body.Clauses)
	return out
}

// Gas returns the gas provisioned for the transaction.
func (t *Transaction) Gas() uint64 { return t.body.Gas }

// Nonce returns the transaction nonce.
func (t *Transaction) Nonce() uint64 { return t.body.Nonce }

// SigningHash is the digest a signer commits to: the 256-bit blake2b hash of
// the RLP-encoded body.
func (t *Transaction) SigningHash() (common.Hash, error) {
	encoded, err := rlp.EncodeToBytes(&t.body)
	if err != nil {
		return common.Hash{}, fmt.Errorf("encode tx body: %w", err)
	}
	return common.Hash(hash.Blake2b(encoded)), nil
}

// WithSignature returns a copy of the transaction carrying sig, a 65-byte
// [R || S || V] secp256k1 signature over the signing hash.
func (t *Transaction) WithSignature(sig []byte) (*Transaction, error) {
	if len(sig) != crypto.SignatureLength {
		return nil, fmt.Errorf("signature must be %d bytes: %w", crypto.SignatureLength, types.ErrInvalidSignature)
	}
	signed := &Transaction{body: t.body}
	signed.signature = append([]byte(nil), sig...)
	return signed, nil
}

// Signature returns the attached signature, or nil for an unsigned
// transaction.
func (t *Transaction) Signature() []byte {
	return append([]byte(nil), t.signature...)
}

// Origin recovers the signer address from the signature.
func (t *Transaction) Origin() (common.Address, error) {
	if len(t.signature) == 0 {
		return common.Address{}, fmt.Errorf("transaction is unsigned: %w", types.ErrInvalidSignature)
	}
	signingHash, err := t.SigningHash()
	if err != nil {
		return common.Address{}, err
	}
	pub, err := crypto.SigToPub(signingHash[:], t.signature)
	if err != nil {
		return common.Address{}, fmt.Errorf("recover origin: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// ID computes the transaction id: the 256-bit blake2b hash of the signing
// hash concatenated with the origin address.
func (t *Transaction) ID() (common.Hash, error) {
	signingHash, err := t.SigningHash()
	if err != nil {
		return common.Hash{}, err
	}
	origin, err := t.Origin()
	if err != nil {
		return common.Hash{}, err
	}
	return common.Hash(hash.Blake2b(signingHash[:], origin[:])), nil
}

// Encode produces the raw RLP form accepted by the node: the body fields
// followed by the signature.
func (t *Transaction) Encode() ([]byte, error) {
	if len(t.signature) == 0 {
		return nil, fmt.Errorf("refusing to encode unsigned transaction: %w", types.ErrInvalidSignature)
	}
	wire := struct {
		ChainTag     byte
		BlockRef     uint64
		Expiration   uint32
		Clauses      []*Clause
		GasPriceCoef uint8
		Gas          uint64
		DependsOn    *common.Hash `rlp:"nil"`
		Nonce        uint64
		Signature    []byte
	}{
		ChainTag:     t.body.ChainTag,
		BlockRef:     t.body.BlockRef,
		Expiration:   t.body.Expiration,
		Clauses:      t.body.Clauses,
		GasPriceCoef: t.body.GasPriceCoef,
		Gas:          t.body.Gas,
		DependsOn:    t.body.DependsOn,
		Nonce:        t.body.Nonce,
		Signature:    t.signature,
	}
	encoded, err := rlp.EncodeToBytes(&wire)
	if err != nil {
		return nil, fmt.Errorf("encode tx: %w", err)
	}
	return encoded, nil
}
