// Package wallet provides in-process transaction and certificate signing.
package wallet

import (
	"crypto/ecdsa"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/vearnfi/wrapped-connex/cert"
	"github.com/vearnfi/wrapped-connex/tx"
)

// Signer holds a secp256k1 private key and signs transactions, certificates
// and raw digests with it.
type Signer struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewSigner wraps an existing private key.
func NewSigner(key *ecdsa.PrivateKey) *Signer {
	return &Signer{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}
}

// FromHex creates a signer from a hex-encoded private key, with or without
// the 0x prefix.
func FromHex(hexKey string) (*Signer, error) {
	if len(hexKey) >= 2 && hexKey[:2] == "0x" {
		hexKey = hexKey[2:]
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return NewSigner(key), nil
}

// Generate creates a signer with a fresh random key.
func Generate() (*Signer, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return NewSigner(key), nil
}

// Address returns the account controlled by this signer.
func (s *Signer) Address() common.Address {
	return s.address
}

// SignHash signs a 32-byte digest, returning a 65-byte [R || S || V]
// signature.
func (s *Signer) SignHash(digest common.Hash) ([]byte, error) {
	sig, err := crypto.Sign(digest[:], s.key)
	if err != nil {
		return nil, fmt.Errorf("sign digest: %w", err)
	}
	return sig, nil
}

// SignTransaction signs trx and returns the signed copy; trx itself is not
// modified.
func (s *Signer) SignTransaction(trx *tx.Transaction) (*tx.Transaction, error) {
	signingHash, err := trx.SigningHash()
	if err != nil {
		return nil, err
	}
	sig, err := s.SignHash(signingHash)
	if err != nil {
		return nil, err
	}
	return trx.WithSignature(sig)
}

// SignCertificate stamps the certificate with this signer's address (and the
// current time when no timestamp is set), signs it, and returns the signed
// copy.
func (s *Signer) SignCertificate(c *cert.Certificate) (*cert.Certificate, error) {
	signed := *c
	signed.Signer = s.address.Hex()
	if signed.Timestamp == 0 {
		signed.Timestamp = uint64(time.Now().Unix())
	}

	signingHash, err := signed.SigningHash()
	if err != nil {
		return nil, err
	}
	sig, err := s.SignHash(signingHash)
	if err != nil {
		return nil, err
	}
	signed.Signature = hexutil.Encode(sig)
	return &signed, nil
}
