// Package cert implements certificates: signed attestations of account
// ownership over an application-chosen message, independent of any
// transaction.
package cert

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/vearnfi/wrapped-connex/internal/hash"
	"github.com/vearnfi/wrapped-connex/types"
)

// Recognized certificate purposes.
const (
	PurposeIdentification = "identification"
	PurposeAgreement      = "agreement"
)

// Payload is the application-chosen message being attested.
type Payload struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Certificate is a signed attestation. Signer is the 0x-prefixed address of
// the attesting account; Signature is the 0x-prefixed 65-byte secp256k1
// signature over the certificate's signing hash.
type Certificate struct {
	Purpose   string  `json:"purpose"`
	Payload   Payload `json:"payload"`
	Domain    string  `json:"domain"`
	Timestamp uint64  `json:"timestamp"`
	Signer    string  `json:"signer"`
	Signature string  `json:"signature,omitempty"`
}

// Encode produces the deterministic JSON the signature commits to: fixed
// field order, lowercased signer, signature omitted.
func (c *Certificate) Encode() ([]byte, error) {
	normalized := Certificate{
		Purpose:   c.Purpose,
		Payload:   c.Payload,
		Domain:    c.Domain,
		Timestamp: c.Timestamp,
		Signer:    strings.ToLower(c.Signer),
	}
	encoded, err := json.Marshal(&normalized)
	if err != nil {
		return nil, fmt.Errorf("encode certificate: %w", err)
	}
	return encoded, nil
}

// SigningHash is the digest a signer commits to: the 256-bit blake2b hash of
// the deterministic encoding.
func (c *Certificate) SigningHash() (common.Hash, error) {
	encoded, err := c.Encode()
	if err != nil {
		return common.Hash{}, err
	}
	return common.Hash(hash.Blake2b(encoded)), nil
}

// Verify checks that the certificate's signature was produced by its
// declared signer.
func (c *Certificate) Verify() error {
	if c.Signature == "" {
		return fmt.Errorf("certificate is unsigned: %w", types.ErrInvalidSignature)
	}
	sig, err := hexutil.Decode(c.Signature)
	if err != nil {
		return fmt.Errorf("decode signature: %w", types.ErrInvalidSignature)
	}
	if len(sig) != crypto.SignatureLength {
		return fmt.Errorf("signature must be %d bytes: %w", crypto.SignatureLength, types.ErrInvalidSignature)
	}

	signingHash, err := c.SigningHash()
	if err != nil {
		return err
	}
	pub, err := crypto.SigToPub(signingHash[:], sig)
	if err != nil {
		return fmt.Errorf("recover signer: %w", types.ErrInvalidSignature)
	}

	recovered := crypto.PubkeyToAddress(*pub)
	if !strings.EqualFold(recovered.Hex(), c.Signer) {
		return fmt.Errorf("signer mismatch: declared %s, recovered %s: %w", c.Signer, recovered.Hex(), types.ErrInvalidSignature)
	}
	return nil
}
